package entity

// ReminderCategory is one of the three reminder rules.
type ReminderCategory string

const (
	CategoryDailyStatus ReminderCategory = "daily-status"
	CategoryBroadcast   ReminderCategory = "broadcast"
	CategoryFollowUp    ReminderCategory = "follow-up"
)

// Dedupe tags of the fixed categories. Follow-ups use FollowUpTag.
const (
	TagDailyStatus = "daily-status"
	TagBroadcast   = "broadcast-day"
	followUpPrefix = "followup-"
)

// FollowUpTag returns the dedupe tag of a follow-up reminder.
func FollowUpTag(followUpID string) string {
	return followUpPrefix + followUpID
}

// PendingNotification is a reminder the evaluator decided should fire.
type PendingNotification struct {
	Category   ReminderCategory `json:"category"`
	Title      string           `json:"title"`
	Body       string           `json:"body"`
	DedupeTag  string           `json:"tag"`
	FollowUpID string           `json:"followUpId,omitempty"`
}

// Message converts the pending notification into a transport payload.
func (n PendingNotification) Message() PushMessage {
	return PushMessage{
		Title: n.Title,
		Body:  n.Body,
		Tag:   n.DedupeTag,
		URL:   "/",
	}
}

// PushMessage is what a transport delivers.
type PushMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag,omitempty"`
	URL   string `json:"url,omitempty"`
}
