package reminder

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashSeed(t *testing.T) {
	tests := []struct {
		seed string
		want int64
	}{
		{seed: "", want: 0},
		{seed: "a", want: 97},
		{seed: "hello", want: 99162322},
		{seed: "device-1-2024-01-06-daily", want: 703673220},
		{seed: "device-1-2024-01-06-broadcast", want: 2039115604},
		{seed: "device-1-f1", want: 1591114562},
		// non-BMP runes hash as surrogate pairs
		{seed: "héllo☃", want: 1099020811},
		{seed: "😀x", want: 54959989},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			assert.Equal(t, tt.want, HashSeed(tt.seed))
		})
	}
}

func TestPickLine_EmptyPool(t *testing.T) {
	assert.Equal(t, "", PickLine(nil, "seed"))
}

func TestPickLine_Deterministic(t *testing.T) {
	pool := DefaultMessagePools().DailyStatus

	first := PickLine(pool, "device-9-2024-03-01-daily")
	for range 5 {
		assert.Equal(t, first, PickLine(pool, "device-9-2024-03-01-daily"))
	}
}

func TestPickLine_CoversPool(t *testing.T) {
	pool := DefaultMessagePools().FollowUp
	seen := make(map[string]bool)

	for i := range 200 {
		seen[PickLine(pool, fmt.Sprintf("device-%d-followup", i))] = true
	}

	assert.Len(t, seen, len(pool))
}

func TestMessageSelector(t *testing.T) {
	selector := NewMessageSelector(DefaultMessagePools())

	assert.Equal(t, "Consistency matters. Post today.", selector.DailyStatus("device-1", "2024-01-06"))
	assert.Equal(t, "Action wins. Send the broadcast.", selector.Broadcast("device-1", "2024-01-06"))
	assert.Equal(t, "One follow-up can change everything.", selector.FollowUp("device-1", "f1"))
}
