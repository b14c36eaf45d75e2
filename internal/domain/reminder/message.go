package reminder

import (
	"unicode/utf16"

	"nudge/internal/domain/entity"
)

// Notification titles per category.
const (
	TitleDailyStatus = "Daily status reminder"
	TitleBroadcast   = "Broadcast reminder"
	TitleFollowUp    = "Follow-up reminder"
)

// MessagePools holds the candidate lines per category. Every pool must be non-empty
// for its category to produce a body.
type MessagePools struct {
	DailyStatus []string
	Broadcast   []string
	FollowUp    []string
}

// DefaultMessagePools returns the built-in reminder lines.
func DefaultMessagePools() MessagePools {
	return MessagePools{
		DailyStatus: []string{
			"Consistency matters. Post today.",
			"Show up today. It compounds.",
			"Visibility builds trust. Post now.",
			"Small step today. Big momentum.",
			"No zero days. Post now.",
			"Ship it today. Done beats perfect.",
		},
		Broadcast: []string{
			"Broadcast day. Be seen.",
			"Visibility creates opportunity. Send it.",
			"Be consistent. Stay visible today.",
			"Momentum beats mood. Broadcast now.",
			"Action wins. Send the broadcast.",
			"Execution beats ideas. Broadcast today.",
		},
		FollowUp: []string{
			"Follow up today. It changes outcomes.",
			"Send the message. It matters.",
			"One follow-up can change everything.",
			"Conversations create revenue. Reach out.",
			"You are one message away. Send it.",
			"Just press send. Keep momentum.",
		},
	}
}

// MessageSelector picks reminder lines deterministically from seeds.
type MessageSelector struct {
	pools MessagePools
}

// NewMessageSelector creates a selector over pools.
func NewMessageSelector(pools MessagePools) *MessageSelector {
	return &MessageSelector{pools: pools}
}

// DailyStatus returns the daily-status line for a device on a day.
func (s *MessageSelector) DailyStatus(deviceID string, today entity.CalendarDate) string {
	return PickLine(s.pools.DailyStatus, deviceID+"-"+today.String()+"-daily")
}

// Broadcast returns the broadcast line for a device on a day.
func (s *MessageSelector) Broadcast(deviceID string, today entity.CalendarDate) string {
	return PickLine(s.pools.Broadcast, deviceID+"-"+today.String()+"-broadcast")
}

// FollowUp returns the follow-up line for a device and follow-up. It does not vary by day.
func (s *MessageSelector) FollowUp(deviceID, followUpID string) string {
	return PickLine(s.pools.FollowUp, deviceID+"-"+followUpID)
}

// PickLine returns lines[hash(seed) mod len(lines)], or "" for an empty pool.
func PickLine(lines []string, seed string) string {
	if len(lines) == 0 {
		return ""
	}

	return lines[HashSeed(seed)%int64(len(lines))]
}

// HashSeed is a 31-multiplier rolling hash over the UTF-16 code units of seed with
// 32-bit wraparound, returned as an absolute value. Values match the web client's hash.
func HashSeed(seed string) int64 {
	var hash int32
	for _, unit := range utf16.Encode([]rune(seed)) {
		hash = (hash << 5) - hash + int32(unit)
	}

	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}

	return abs
}
