package postgres

import (
	"encoding/json"
	"testing"

	"nudge/internal/domain/entity"
	"nudge/internal/domain/repository"
	"nudge/internal/infra/persistence/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestDeviceMappers_RoundTrip(t *testing.T) {
	record := &entity.DeviceRecord{
		DeliveryTarget: &entity.PushTarget{
			Endpoint: "https://push.example.com/abc",
			Keys:     &entity.PushKeys{P256dh: "p256", Auth: "auth"},
		},
		DailyStatus: []entity.DailyStatusEntry{{Date: "2024-01-06", Posted: true}},
		Broadcasts:  []entity.BroadcastEntry{{Date: "2024-01-01", Sent: true}},
		FollowUps:   []entity.FollowUpEntry{{ID: "f1", CustomerName: "Ada", DateAdded: "2024-01-01T09:00:00Z"}},

		ScheduledPosts: json.RawMessage(`[{"id":"p1","time":"09:00"}]`),

		LastDailyStatusReminderDate: "2024-01-05",
		FollowUpReminderSentDates: map[string]entity.ReminderHistory{
			"f1": {"2024-01-08"},
		},
	}

	deviceM, err := fromDeviceDomain("device-1", record)
	require.NoError(t, err)
	assert.Equal(t, "device-1", deviceM.DeviceID)
	assert.Equal(t, "2024-01-05", deviceM.LastDailyStatusReminderDate)
	assert.Empty(t, deviceM.LastBroadcastReminderDate)
	assert.JSONEq(t, `[{"id":"p1","time":"09:00"}]`, string(deviceM.ScheduledPosts))

	decoded, err := toDeviceDomain(deviceM)
	require.NoError(t, err)
	assert.Equal(t, record, decoded)
}

func TestFromDeviceDomain_NoTargetLeavesColumnNull(t *testing.T) {
	deviceM, err := fromDeviceDomain("device-1", &entity.DeviceRecord{})
	require.NoError(t, err)

	assert.Nil(t, deviceM.Subscription)
	assert.Nil(t, deviceM.FollowUpReminderMap)
	assert.Nil(t, deviceM.ScheduledPosts)
}

func TestToDeviceDomain_LegacyHistoryString(t *testing.T) {
	deviceM := &model.DeviceModel{
		DeviceID:            "device-1",
		FollowUpReminderMap: datatypes.JSON(`{"f1":"2024-01-08","f2":["2024-01-08","2024-01-09"]}`),
	}

	record, err := toDeviceDomain(deviceM)
	require.NoError(t, err)
	assert.Equal(t, entity.ReminderHistory{"2024-01-08"}, record.FollowUpReminderSentDates["f1"])
	assert.Len(t, record.FollowUpReminderSentDates["f2"], 2)
}

func TestToDeviceDomain_CorruptColumn(t *testing.T) {
	deviceM := &model.DeviceModel{
		DeviceID:  "device-1",
		FollowUps: datatypes.JSON(`{"not":"an array"}`),
	}

	_, err := toDeviceDomain(deviceM)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrCorruptRecord)
}
