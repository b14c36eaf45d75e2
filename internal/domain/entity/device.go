// Package entity contains the core business objects of the project.
package entity

import (
	"encoding/json"
	"slices"
)

// MaxFollowUpReminders caps how many times one follow-up is ever nudged.
const MaxFollowUpReminders = 3

// DailyStatusEntry records whether the daily post was done on Date.
type DailyStatusEntry struct {
	Date   CalendarDate `json:"date"`
	Posted bool         `json:"checked"`
}

// BroadcastEntry records a broadcast performed on Date.
type BroadcastEntry struct {
	Date CalendarDate `json:"date"`
	Sent bool         `json:"checked"`
}

// FollowUpEntry is an outstanding customer follow-up.
type FollowUpEntry struct {
	ID           string `json:"id"`
	CustomerName string `json:"customerName"`
	// DateAdded is an ISO-8601 timestamp as mirrored from the client
	DateAdded string `json:"dateAdded"`
}

// PushKeys are the Web Push encryption keys of a subscription.
type PushKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// PushTarget is the delivery target of a device: a Web Push subscription or an FCM token.
type PushTarget struct {
	Endpoint       string    `json:"endpoint,omitempty"`
	ExpirationTime *int64    `json:"expirationTime,omitempty"`
	Keys           *PushKeys `json:"keys,omitempty"`
	FCMToken       string    `json:"fcmToken,omitempty"`
}

// TargetKind identifies the transport a PushTarget is addressed through.
type TargetKind string

const (
	TargetKindWebPush TargetKind = "webpush"
	TargetKindFCM     TargetKind = "fcm"
)

// Kind returns the transport kind of the target.
func (t PushTarget) Kind() TargetKind {
	if t.FCMToken != "" {
		return TargetKindFCM
	}

	return TargetKindWebPush
}

// ReminderHistory is the list of dates a follow-up reminder was sent, in send order.
type ReminderHistory []CalendarDate

// UnmarshalJSON accepts both the list form and the legacy single-date string.
func (h *ReminderHistory) UnmarshalJSON(data []byte) error {
	var list []CalendarDate
	if err := json.Unmarshal(data, &list); err == nil {
		*h = list

		return nil
	}

	var single CalendarDate
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single.IsZero() {
		*h = nil

		return nil
	}
	*h = ReminderHistory{single}

	return nil
}

// Contains reports whether date is already recorded.
func (h ReminderHistory) Contains(date CalendarDate) bool {
	return slices.Contains(h, date)
}

// DeviceRecord is one device's mirrored data plus notification bookkeeping.
type DeviceRecord struct {
	DeliveryTarget *PushTarget        `json:"subscription,omitempty"`
	DailyStatus    []DailyStatusEntry `json:"dailyStatus"`
	Broadcasts     []BroadcastEntry   `json:"broadcasts"`
	FollowUps      []FollowUpEntry    `json:"followUps"`
	// ScheduledPosts is mirrored verbatim; no reminder reads it
	ScheduledPosts json.RawMessage `json:"scheduledPosts,omitempty"`

	LastDailyStatusReminderDate CalendarDate               `json:"lastDailyStatusReminderDate,omitempty"`
	LastBroadcastReminderDate   CalendarDate               `json:"lastBroadcastReminderDate,omitempty"`
	FollowUpReminderSentDates   map[string]ReminderHistory `json:"followUpReminderMap,omitempty"`
}

// Clone returns a deep copy of the record.
func (r *DeviceRecord) Clone() *DeviceRecord {
	if r == nil {
		return nil
	}

	out := &DeviceRecord{
		DailyStatus:                 slices.Clone(r.DailyStatus),
		Broadcasts:                  slices.Clone(r.Broadcasts),
		FollowUps:                   slices.Clone(r.FollowUps),
		ScheduledPosts:              slices.Clone(r.ScheduledPosts),
		LastDailyStatusReminderDate: r.LastDailyStatusReminderDate,
		LastBroadcastReminderDate:   r.LastBroadcastReminderDate,
		FollowUpReminderSentDates:   CloneReminderHistories(r.FollowUpReminderSentDates),
	}
	if r.DeliveryTarget != nil {
		out.DeliveryTarget = r.DeliveryTarget.Clone()
	}

	return out
}

// Clone returns a deep copy of the target.
func (t *PushTarget) Clone() *PushTarget {
	if t == nil {
		return nil
	}

	out := *t
	if t.ExpirationTime != nil {
		exp := *t.ExpirationTime
		out.ExpirationTime = &exp
	}
	if t.Keys != nil {
		keys := *t.Keys
		out.Keys = &keys
	}

	return &out
}

// CloneReminderHistories deep-copies a follow-up history map.
func CloneReminderHistories(in map[string]ReminderHistory) map[string]ReminderHistory {
	if in == nil {
		return nil
	}

	out := make(map[string]ReminderHistory, len(in))
	for id, history := range in {
		out[id] = slices.Clone(history)
	}

	return out
}

// Device pairs a record with its client-generated id.
type Device struct {
	ID     string        `json:"deviceId"`
	Record *DeviceRecord `json:"record"`
}

// DevicePatch is a shallow merge: every non-nil field replaces the stored value wholesale.
// ClearDeliveryTarget removes the target and takes precedence over DeliveryTarget.
type DevicePatch struct {
	DeliveryTarget      *PushTarget
	ClearDeliveryTarget bool

	DailyStatus *[]DailyStatusEntry
	Broadcasts  *[]BroadcastEntry
	FollowUps   *[]FollowUpEntry
	// ScheduledPosts replaces the stored JSON when non-nil.
	ScheduledPosts json.RawMessage

	LastDailyStatusReminderDate *CalendarDate
	LastBroadcastReminderDate   *CalendarDate
	FollowUpReminderSentDates   map[string]ReminderHistory
}

// IsEmpty reports whether the patch changes nothing.
func (p *DevicePatch) IsEmpty() bool {
	return p == nil || (p.DeliveryTarget == nil && !p.ClearDeliveryTarget &&
		p.DailyStatus == nil && p.Broadcasts == nil && p.FollowUps == nil &&
		p.ScheduledPosts == nil &&
		p.LastDailyStatusReminderDate == nil && p.LastBroadcastReminderDate == nil &&
		p.FollowUpReminderSentDates == nil)
}

// Apply merges the patch into record in place. A nil record starts empty.
func (p *DevicePatch) Apply(record *DeviceRecord) *DeviceRecord {
	if record == nil {
		record = &DeviceRecord{}
	}
	if p == nil {
		return record
	}

	switch {
	case p.ClearDeliveryTarget:
		record.DeliveryTarget = nil
	case p.DeliveryTarget != nil:
		record.DeliveryTarget = p.DeliveryTarget.Clone()
	}

	if p.DailyStatus != nil {
		record.DailyStatus = slices.Clone(*p.DailyStatus)
	}
	if p.Broadcasts != nil {
		record.Broadcasts = slices.Clone(*p.Broadcasts)
	}
	if p.FollowUps != nil {
		record.FollowUps = slices.Clone(*p.FollowUps)
	}
	if p.ScheduledPosts != nil {
		record.ScheduledPosts = slices.Clone(p.ScheduledPosts)
	}
	if p.LastDailyStatusReminderDate != nil {
		record.LastDailyStatusReminderDate = *p.LastDailyStatusReminderDate
	}
	if p.LastBroadcastReminderDate != nil {
		record.LastBroadcastReminderDate = *p.LastBroadcastReminderDate
	}
	if p.FollowUpReminderSentDates != nil {
		record.FollowUpReminderSentDates = CloneReminderHistories(p.FollowUpReminderSentDates)
	}

	return record
}
