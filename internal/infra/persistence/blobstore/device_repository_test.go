package blobstore

import (
	"context"
	"testing"

	"nudge/internal/domain/entity"
	"nudge/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

const testKey = "push-store.json"

func newTestStore(t *testing.T) (*Store, context.Context) {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	return NewStore(bucket, testKey), context.Background()
}

func TestStore_EmptyBucket(t *testing.T) {
	store, ctx := newTestStore(t)

	ids, err := store.ListDeviceIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = store.Get(ctx, "d1")
	assert.ErrorIs(t, err, repository.ErrDeviceNotFound)
}

func TestStore_MergePersistsDocument(t *testing.T) {
	store, ctx := newTestStore(t)

	target := &entity.PushTarget{Endpoint: "https://push.example/1", Keys: &entity.PushKeys{P256dh: "p", Auth: "a"}}
	_, err := store.Merge(ctx, "d1", &entity.DevicePatch{DeliveryTarget: target})
	require.NoError(t, err)

	status := []entity.DailyStatusEntry{{Date: "2024-01-01", Posted: true}}
	_, err = store.Merge(ctx, "d1", &entity.DevicePatch{DailyStatus: &status})
	require.NoError(t, err)

	record, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, target, record.DeliveryTarget)
	assert.Equal(t, status, record.DailyStatus)

	data, err := store.bucket.ReadAll(ctx, testKey)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"subscription"`)
	assert.Contains(t, string(data), `"checked": true`)
}

func TestStore_ReadsLegacyDocument(t *testing.T) {
	store, ctx := newTestStore(t)
	legacy := `{
  "devices": {
    "d1": {
      "subscription": {"endpoint": "https://push.example/1", "expirationTime": null, "keys": {"p256dh": "p", "auth": "a"}},
      "dailyStatus": [{"date": "2024-01-06", "checked": false}],
      "followUpReminderMap": {"f1": "2024-01-08"},
      "scheduledPosts": []
    }
  }
}`
	require.NoError(t, store.bucket.WriteAll(ctx, testKey, []byte(legacy), nil))

	record, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Nil(t, record.DeliveryTarget.ExpirationTime)
	assert.Equal(t, entity.ReminderHistory{"2024-01-08"}, record.FollowUpReminderSentDates["f1"])
	assert.False(t, record.DailyStatus[0].Posted)
}

func TestStore_CorruptRecordIsolated(t *testing.T) {
	store, ctx := newTestStore(t)
	doc := `{"devices": {"bad": {"dailyStatus": "nope"}, "good": {"dailyStatus": []}}}`
	require.NoError(t, store.bucket.WriteAll(ctx, testKey, []byte(doc), nil))

	_, err := store.Get(ctx, "bad")
	assert.ErrorIs(t, err, repository.ErrCorruptRecord)

	_, err = store.Get(ctx, "good")
	assert.NoError(t, err)

	ids, err := store.ListDeviceIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bad", "good"}, ids)

	// a fresh sync replaces the corrupt record
	status := []entity.DailyStatusEntry{}
	_, err = store.Merge(ctx, "bad", &entity.DevicePatch{DailyStatus: &status})
	require.NoError(t, err)
	_, err = store.Get(ctx, "bad")
	assert.NoError(t, err)
}

func TestStore_ExecuteWritesOnceOrNotAtAll(t *testing.T) {
	store, ctx := newTestStore(t)
	_, err := store.Merge(ctx, "d1", &entity.DevicePatch{DeliveryTarget: &entity.PushTarget{Endpoint: "e"}})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.Execute(ctx, func(f repository.RepositoryFactory) error {
		if _, err := f.NewDeviceRepository().Merge(ctx, "d1", &entity.DevicePatch{ClearDeliveryTarget: true}); err != nil {
			return err
		}

		return boom
	})
	assert.ErrorIs(t, err, boom)

	record, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.NotNil(t, record.DeliveryTarget)

	today := entity.CalendarDate("2024-01-06")
	err = store.Execute(ctx, func(f repository.RepositoryFactory) error {
		repo := f.NewDeviceRepository()
		if _, err := repo.Get(ctx, "d1"); err != nil {
			return err
		}
		_, err := repo.Merge(ctx, "d1", &entity.DevicePatch{LastDailyStatusReminderDate: &today, ClearDeliveryTarget: true})

		return err
	})
	require.NoError(t, err)

	record, err = store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Nil(t, record.DeliveryTarget)
	assert.Equal(t, today, record.LastDailyStatusReminderDate)
}

func TestStore_MergeKeepsScheduledPosts(t *testing.T) {
	store, ctx := newTestStore(t)
	legacy := `{"devices": {"d1": {"dailyStatus": [], "scheduledPosts": [{"id": "p1", "time": "09:00"}]}}}`
	require.NoError(t, store.bucket.WriteAll(ctx, testKey, []byte(legacy), nil))

	today := entity.CalendarDate("2024-01-06")
	_, err := store.Merge(ctx, "d1", &entity.DevicePatch{LastBroadcastReminderDate: &today})
	require.NoError(t, err)

	record, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id": "p1", "time": "09:00"}]`, string(record.ScheduledPosts))

	_, err = store.Merge(ctx, "d1", &entity.DevicePatch{ScheduledPosts: []byte(`[]`)})
	require.NoError(t, err)

	record, err = store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(record.ScheduledPosts))
}

func TestStore_ReusesDocumentUntilObjectChanges(t *testing.T) {
	store, ctx := newTestStore(t)
	_, err := store.Merge(ctx, "d1", &entity.DevicePatch{DeliveryTarget: &entity.PushTarget{Endpoint: "e"}})
	require.NoError(t, err)

	first, err := store.current(ctx)
	require.NoError(t, err)
	second, err := store.current(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)

	external := `{"devices": {"d1": {"dailyStatus": []}, "d2": {"dailyStatus": [], "broadcasts": []}}}`
	require.NoError(t, store.bucket.WriteAll(ctx, testKey, []byte(external), nil))

	ids, err := store.ListDeviceIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "d2"}, ids)

	third, err := store.current(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestStore_FailedExecuteLeavesCacheIntact(t *testing.T) {
	store, ctx := newTestStore(t)
	_, err := store.Merge(ctx, "d1", &entity.DevicePatch{DeliveryTarget: &entity.PushTarget{Endpoint: "e"}})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.Execute(ctx, func(f repository.RepositoryFactory) error {
		if _, err := f.NewDeviceRepository().Merge(ctx, "d2", &entity.DevicePatch{ClearDeliveryTarget: true}); err != nil {
			return err
		}

		return boom
	})
	require.ErrorIs(t, err, boom)

	ids, err := store.ListDeviceIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, ids)
}
