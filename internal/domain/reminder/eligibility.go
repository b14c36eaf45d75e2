// Package reminder decides which reminders a device is due and words them.
// Everything here is pure: callers supply the record and the evaluation instant.
package reminder

import (
	"math"
	"strings"
	"time"

	"nudge/internal/domain/entity"

	"github.com/pkg/errors"
)

const (
	// broadcastCadence is the length of a broadcast cycle in daily-status days.
	broadcastCadence = 6

	followUpWindowStart = 7
	followUpWindowEnd   = 9

	day = 24 * time.Hour
)

// dateAdded layouts without an explicit offset, interpreted in the evaluation zone.
var localTimestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// EvaluationTime is the single notion of "now" shared by every device in a run.
type EvaluationTime struct {
	Today    entity.CalendarDate
	Now      time.Time
	Location *time.Location
}

// NewEvaluationTime anchors Now at noon of today in loc.
func NewEvaluationTime(today entity.CalendarDate, loc *time.Location) (EvaluationTime, error) {
	if loc == nil {
		loc = time.UTC
	}

	now, err := today.Noon(loc)
	if err != nil {
		return EvaluationTime{}, err
	}

	return EvaluationTime{Today: today, Now: now, Location: loc}, nil
}

// Evaluation is the outcome of evaluating one device.
type Evaluation struct {
	Pending []entity.PendingNotification
	// FollowUpHistories is the device's follow-up history with today appended for
	// every follow-up that fired. Nil when the record had no history and nothing fired.
	FollowUpHistories map[string]entity.ReminderHistory
	// FollowUpsChanged reports whether FollowUpHistories differs from the record.
	FollowUpsChanged bool
}

// Has reports whether a notification with the tag is pending.
func (e Evaluation) Has(tag string) bool {
	for _, n := range e.Pending {
		if n.DedupeTag == tag {
			return true
		}
	}

	return false
}

// Evaluator applies the three reminder rules.
type Evaluator struct {
	messages *MessageSelector
}

// NewEvaluator creates an evaluator. A nil selector uses the default pools.
func NewEvaluator(messages *MessageSelector) *Evaluator {
	if messages == nil {
		messages = NewMessageSelector(DefaultMessagePools())
	}

	return &Evaluator{messages: messages}
}

// Evaluate returns the reminders due for a device, in daily-status, broadcast, follow-up order.
// The record is not modified.
func (e *Evaluator) Evaluate(deviceID string, record *entity.DeviceRecord, at EvaluationTime) Evaluation {
	var result Evaluation
	if record == nil {
		return result
	}

	result.FollowUpHistories = entity.CloneReminderHistories(record.FollowUpReminderSentDates)
	if !at.Today.Valid() {
		return result
	}

	if DailyStatusDue(record, at.Today) {
		result.Pending = append(result.Pending, entity.PendingNotification{
			Category:  entity.CategoryDailyStatus,
			Title:     TitleDailyStatus,
			Body:      e.messages.DailyStatus(deviceID, at.Today),
			DedupeTag: entity.TagDailyStatus,
		})
	}

	if BroadcastDue(record, at.Today) {
		result.Pending = append(result.Pending, entity.PendingNotification{
			Category:  entity.CategoryBroadcast,
			Title:     TitleBroadcast,
			Body:      e.messages.Broadcast(deviceID, at.Today),
			DedupeTag: entity.TagBroadcast,
		})
	}

	for _, followUp := range record.FollowUps {
		if !FollowUpDue(followUp, result.FollowUpHistories[followUp.ID], at) {
			continue
		}

		if result.FollowUpHistories == nil {
			result.FollowUpHistories = make(map[string]entity.ReminderHistory)
		}
		result.FollowUpHistories[followUp.ID] = append(result.FollowUpHistories[followUp.ID], at.Today)
		result.FollowUpsChanged = true

		result.Pending = append(result.Pending, entity.PendingNotification{
			Category:   entity.CategoryFollowUp,
			Title:      TitleFollowUp,
			Body:       followUp.CustomerName + ": " + e.messages.FollowUp(deviceID, followUp.ID),
			DedupeTag:  entity.FollowUpTag(followUp.ID),
			FollowUpID: followUp.ID,
		})
	}

	return result
}

// DailyStatusDue reports whether today's daily post is still outstanding and not yet nudged.
func DailyStatusDue(record *entity.DeviceRecord, today entity.CalendarDate) bool {
	if record.LastDailyStatusReminderDate.Equal(today) {
		return false
	}

	index := dailyStatusIndex(record.DailyStatus, today)
	if index < 0 {
		return false
	}

	return !record.DailyStatus[index].Posted
}

// BroadcastDue reports whether today closes a six-day cycle with no broadcast yet.
func BroadcastDue(record *entity.DeviceRecord, today entity.CalendarDate) bool {
	if record.LastBroadcastReminderDate.Equal(today) {
		return false
	}

	index := dailyStatusIndex(record.DailyStatus, today)
	if index < broadcastCadence-1 || (index+1)%broadcastCadence != 0 {
		return false
	}

	for _, b := range record.Broadcasts {
		if b.Sent && b.Date.Equal(today) {
			return false
		}
	}

	return true
}

// FollowUpDue reports whether a follow-up is inside its nudge window and under its cap.
func FollowUpDue(followUp entity.FollowUpEntry, history entity.ReminderHistory, at EvaluationTime) bool {
	if followUp.ID == "" || strings.TrimSpace(followUp.DateAdded) == "" {
		return false
	}

	added, err := ParseTimestamp(followUp.DateAdded, at.Location)
	if err != nil {
		return false
	}

	pending := DaysPending(added, at.Now)
	if pending < followUpWindowStart || pending > followUpWindowEnd {
		return false
	}

	if history.Contains(at.Today) || len(history) >= entity.MaxFollowUpReminders {
		return false
	}

	return true
}

// DaysPending is the whole number of 24-hour periods between added and now, floored.
func DaysPending(added, now time.Time) int {
	return int(math.Floor(float64(now.Sub(added)) / float64(day)))
}

// ParseTimestamp parses an ISO-8601 timestamp. Values without an offset are read in loc.
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}

	for _, layout := range localTimestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.Errorf("invalid timestamp %q", value)
}

// dailyStatusIndex returns the position of the first entry dated today, or -1.
func dailyStatusIndex(entries []entity.DailyStatusEntry, today entity.CalendarDate) int {
	for i, entry := range entries {
		if entry.Date.Equal(today) {
			return i
		}
	}

	return -1
}
