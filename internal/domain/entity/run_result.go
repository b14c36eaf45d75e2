package entity

// DeviceRunResult reports what one device produced during a run.
type DeviceRunResult struct {
	DeviceID string   `json:"deviceId"`
	Sent     []string `json:"sent"`

	Pending           int    `json:"pending"`
	TargetInvalidated bool   `json:"targetInvalidated,omitempty"`
	Error             string `json:"error,omitempty"`
}

// RunResult aggregates one reminder run.
type RunResult struct {
	RunID   string            `json:"runId"`
	Today   CalendarDate      `json:"today"`
	Results []DeviceRunResult `json:"results"`

	DevicesVisited       int `json:"devicesVisited"`
	NotificationsPending int `json:"notificationsPending"`
	NotificationsSent    int `json:"notificationsSent"`
	DevicesFailed        int `json:"devicesFailed"`
}

// Skipped is the number of pending notifications that were not delivered.
func (r *RunResult) Skipped() int {
	return r.NotificationsPending - r.NotificationsSent
}

// Add folds a device result into the totals.
func (r *RunResult) Add(device DeviceRunResult) {
	if device.Sent == nil {
		device.Sent = []string{}
	}
	r.Results = append(r.Results, device)
	r.DevicesVisited++
	r.NotificationsPending += device.Pending
	r.NotificationsSent += len(device.Sent)
	if device.Error != "" {
		r.DevicesFailed++
	}
}
