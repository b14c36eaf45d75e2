package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"nudge/config"
	"nudge/internal/domain/constants"
	"nudge/internal/domain/entity"
	domainerrors "nudge/internal/domain/errors"
	"nudge/internal/domain/reminder"
	"nudge/internal/domain/repository"
	"nudge/internal/domain/service"
	"nudge/internal/infra/persistence/memory"
	mockSvc "nudge/internal/mocks/service"
	"nudge/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

// corruptingRepository fails Get for selected ids.
type corruptingRepository struct {
	repository.DeviceRepository
	corrupt map[string]bool
}

func (r *corruptingRepository) Get(ctx context.Context, deviceID string) (*entity.DeviceRecord, error) {
	if r.corrupt[deviceID] {
		return nil, errors.Wrap(repository.ErrCorruptRecord, deviceID)
	}

	return r.DeviceRepository.Get(ctx, deviceID)
}

type reminderServiceFixtures struct {
	service usecase.ReminderUsecase
	store   *memory.Store
	sender  *mockSvc.MockPushSender
	locker  *mockSvc.MockRunLocker
}

func createTestReminderService(t *testing.T, opts ...func(*ReminderServiceParams)) reminderServiceFixtures {
	t.Helper()

	cfg := &config.Config{Reminders: &config.RemindersConfig{TimeZone: "Africa/Lagos", Workers: 3}}
	require.NoError(t, cfg.Reminders.ApplyDefaults())

	store := memory.NewStore()
	sender := mockSvc.NewMockPushSender(t)
	locker := mockSvc.NewMockRunLocker(t)

	params := ReminderServiceParams{
		DeviceRepo: store,
		TxManager:  store,
		Sender:     sender,
		Locker:     locker,
		Clock:      fixedClock(time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC)),
		Config:     cfg,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&params)
	}

	return reminderServiceFixtures{
		service: NewReminderService(params),
		store:   store,
		sender:  sender,
		locker:  locker,
	}
}

func webPushTarget(id string) *entity.PushTarget {
	return &entity.PushTarget{
		Endpoint: "https://push.example/" + id,
		Keys:     &entity.PushKeys{P256dh: "p256dh", Auth: "auth"},
	}
}

func sixDays(posted bool) []entity.DailyStatusEntry {
	entries := make([]entity.DailyStatusEntry, 6)
	for i := range entries {
		entries[i] = entity.DailyStatusEntry{Date: entity.CalendarDate(fmt.Sprintf("2024-01-%02d", i+1)), Posted: posted}
	}

	return entries
}

func seed(t *testing.T, store *memory.Store, deviceID string, patch *entity.DevicePatch) {
	t.Helper()

	_, err := store.Merge(context.Background(), deviceID, patch)
	require.NoError(t, err)
}

func mustGet(t *testing.T, store *memory.Store, deviceID string) *entity.DeviceRecord {
	t.Helper()

	record, err := store.Get(context.Background(), deviceID)
	require.NoError(t, err)

	return record
}

func TestReminderService_RunOnce_BroadcastScenario(t *testing.T) {
	fx := createTestReminderService(t)
	ctx := context.Background()
	status := sixDays(true)
	seed(t, fx.store, "d1", &entity.DevicePatch{DeliveryTarget: webPushTarget("d1"), DailyStatus: &status})

	fx.sender.EXPECT().Validate().Return(nil)
	fx.sender.EXPECT().
		Send(mock.Anything, mock.Anything, mock.MatchedBy(func(msg entity.PushMessage) bool {
			return msg.Tag == entity.TagBroadcast && msg.Title == "Broadcast reminder"
		})).
		Return(nil).
		Once()

	result, err := fx.service.RunOnce(ctx, "2024-01-06")

	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, []string{entity.TagBroadcast}, result.Results[0].Sent)
	assert.Equal(t, 1, result.NotificationsSent)
	assert.Equal(t, entity.CalendarDate("2024-01-06"), mustGet(t, fx.store, "d1").LastBroadcastReminderDate)
}

func TestReminderService_RunOnce_IdempotentWithinDay(t *testing.T) {
	fx := createTestReminderService(t)
	ctx := context.Background()
	status := sixDays(false)
	seed(t, fx.store, "d1", &entity.DevicePatch{DeliveryTarget: webPushTarget("d1"), DailyStatus: &status})

	fx.sender.EXPECT().Validate().Return(nil)
	fx.sender.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(2)

	first, err := fx.service.RunOnce(ctx, "2024-01-06")
	require.NoError(t, err)
	assert.Equal(t, []string{entity.TagDailyStatus, entity.TagBroadcast}, first.Results[0].Sent)

	second, err := fx.service.RunOnce(ctx, "2024-01-06")
	require.NoError(t, err)
	assert.Empty(t, second.Results[0].Sent)
	assert.Equal(t, 0, second.NotificationsPending)
}

func TestReminderService_RunOnce_TransientFailureRetriedNextRun(t *testing.T) {
	fx := createTestReminderService(t)
	ctx := context.Background()
	status := []entity.DailyStatusEntry{
		{Date: "2024-01-04", Posted: true},
		{Date: "2024-01-05", Posted: true},
		{Date: "2024-01-06"},
	}
	seed(t, fx.store, "d1", &entity.DevicePatch{DeliveryTarget: webPushTarget("d1"), DailyStatus: &status})

	fx.sender.EXPECT().Validate().Return(nil)
	fx.sender.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything).Return(errors.New("503 from push service")).Once()
	fx.sender.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	first, err := fx.service.RunOnce(ctx, "2024-01-06")
	require.NoError(t, err)
	assert.Empty(t, first.Results[0].Sent)
	assert.Equal(t, 1, first.Skipped())
	assert.True(t, mustGet(t, fx.store, "d1").LastDailyStatusReminderDate.IsZero())

	second, err := fx.service.RunOnce(ctx, "2024-01-06")
	require.NoError(t, err)
	assert.Equal(t, []string{entity.TagDailyStatus}, second.Results[0].Sent)
	assert.NotNil(t, mustGet(t, fx.store, "d1").DeliveryTarget)
}

func TestReminderService_RunOnce_PermanentFailureClearsTarget(t *testing.T) {
	fx := createTestReminderService(t)
	ctx := context.Background()
	status := sixDays(false)
	followUps := []entity.FollowUpEntry{{ID: "f1", CustomerName: "Ada", DateAdded: "2023-12-29T08:00:00Z"}}
	seed(t, fx.store, "d1", &entity.DevicePatch{
		DeliveryTarget: webPushTarget("d1"),
		DailyStatus:    &status,
		FollowUps:      &followUps,
	})

	fx.sender.EXPECT().Validate().Return(nil)
	fx.sender.EXPECT().
		Send(mock.Anything, mock.Anything, mock.Anything).
		Return(errors.Wrap(service.ErrTargetGone, "410 Gone")).
		Times(3)

	result, err := fx.service.RunOnce(ctx, "2024-01-06")
	require.NoError(t, err)

	device := result.Results[0]
	assert.Empty(t, device.Sent)
	assert.Equal(t, 3, device.Pending)
	assert.True(t, device.TargetInvalidated)

	record := mustGet(t, fx.store, "d1")
	assert.Nil(t, record.DeliveryTarget)
	assert.True(t, record.LastDailyStatusReminderDate.IsZero())
	// follow-up history is kept even though nothing was delivered
	assert.Equal(t, entity.ReminderHistory{"2024-01-06"}, record.FollowUpReminderSentDates["f1"])
	assert.Equal(t, status, record.DailyStatus)

	// no target: visited, nothing attempted
	next, err := fx.service.RunOnce(ctx, "2024-01-07")
	require.NoError(t, err)
	require.Len(t, next.Results, 1)
	assert.Empty(t, next.Results[0].Sent)
}

func TestReminderService_RunOnce_PermanentFailureStillAttemptsRemaining(t *testing.T) {
	fx := createTestReminderService(t)
	ctx := context.Background()
	status := sixDays(false)
	seed(t, fx.store, "d1", &entity.DevicePatch{DeliveryTarget: webPushTarget("d1"), DailyStatus: &status})

	fx.sender.EXPECT().Validate().Return(nil)
	fx.sender.EXPECT().
		Send(mock.Anything, mock.Anything, mock.MatchedBy(func(msg entity.PushMessage) bool {
			return msg.Tag == entity.TagDailyStatus
		})).
		Return(errors.Wrap(service.ErrTargetGone, "410 Gone")).
		Once()
	fx.sender.EXPECT().
		Send(mock.Anything, mock.Anything, mock.MatchedBy(func(msg entity.PushMessage) bool {
			return msg.Tag == entity.TagBroadcast
		})).
		Return(nil).
		Once()

	result, err := fx.service.RunOnce(ctx, "2024-01-06")
	require.NoError(t, err)

	device := result.Results[0]
	assert.Equal(t, 2, device.Pending)
	assert.Equal(t, []string{entity.TagBroadcast}, device.Sent)
	assert.True(t, device.TargetInvalidated)

	record := mustGet(t, fx.store, "d1")
	assert.Nil(t, record.DeliveryTarget)
	assert.True(t, record.LastDailyStatusReminderDate.IsZero())
	assert.Equal(t, entity.CalendarDate("2024-01-06"), record.LastBroadcastReminderDate)
}

func TestReminderService_RunOnce_FollowUpHistoryPersistedOnTransientFailure(t *testing.T) {
	fx := createTestReminderService(t)
	ctx := context.Background()
	followUps := []entity.FollowUpEntry{{ID: "f1", CustomerName: "Ada", DateAdded: "2023-12-30T08:00:00Z"}}
	seed(t, fx.store, "d1", &entity.DevicePatch{DeliveryTarget: webPushTarget("d1"), FollowUps: &followUps})

	fx.sender.EXPECT().Validate().Return(nil)
	fx.sender.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything).Return(context.DeadlineExceeded)

	result, err := fx.service.RunOnce(ctx, "2024-01-06")
	require.NoError(t, err)
	assert.Empty(t, result.Results[0].Sent)
	assert.Equal(t, entity.ReminderHistory{"2024-01-06"}, mustGet(t, fx.store, "d1").FollowUpReminderSentDates["f1"])

	// same day: history already holds today, nothing is retried
	again, err := fx.service.RunOnce(ctx, "2024-01-06")
	require.NoError(t, err)
	assert.Equal(t, 0, again.NotificationsPending)
}

func TestReminderService_RunOnce_FollowUpCapAcrossRuns(t *testing.T) {
	fx := createTestReminderService(t)
	ctx := context.Background()
	followUps := []entity.FollowUpEntry{{ID: "f1", CustomerName: "Ada", DateAdded: "2024-01-01T00:00:00Z"}}
	seed(t, fx.store, "d1", &entity.DevicePatch{DeliveryTarget: webPushTarget("d1"), FollowUps: &followUps})

	fx.sender.EXPECT().Validate().Return(nil)
	fx.sender.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(3)

	for day := 1; day <= 20; day++ {
		_, err := fx.service.RunOnce(ctx, entity.CalendarDate(fmt.Sprintf("2024-01-%02d", day)))
		require.NoError(t, err)
	}

	assert.Equal(t,
		entity.ReminderHistory{"2024-01-08", "2024-01-09", "2024-01-10"},
		mustGet(t, fx.store, "d1").FollowUpReminderSentDates["f1"],
	)
}

func TestReminderService_RunOnce_ConfigurationErrorAborts(t *testing.T) {
	fx := createTestReminderService(t)
	status := sixDays(false)
	seed(t, fx.store, "d1", &entity.DevicePatch{DeliveryTarget: webPushTarget("d1"), DailyStatus: &status})

	fx.sender.EXPECT().Validate().Return(domainerrors.ErrTransportNotConfigured.WrapMessage("missing VAPID keys"))

	result, err := fx.service.RunOnce(context.Background(), "2024-01-06")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrTransportNotConfigured)
	assert.True(t, mustGet(t, fx.store, "d1").LastDailyStatusReminderDate.IsZero())
}

func TestReminderService_RunOnce_CorruptDeviceDoesNotAbortRun(t *testing.T) {
	var store *memory.Store
	fx := createTestReminderService(t, func(p *ReminderServiceParams) {
		store = p.DeviceRepo.(*memory.Store)
		p.DeviceRepo = &corruptingRepository{DeviceRepository: store, corrupt: map[string]bool{"bad": true}}
	})
	status := sixDays(false)
	seed(t, store, "bad", &entity.DevicePatch{DeliveryTarget: webPushTarget("bad"), DailyStatus: &status})
	seed(t, store, "good", &entity.DevicePatch{DeliveryTarget: webPushTarget("good"), DailyStatus: &status})

	fx.sender.EXPECT().Validate().Return(nil)
	fx.sender.EXPECT().Send(mock.Anything, webPushTarget("good"), mock.Anything).Return(nil).Times(2)

	result, err := fx.service.RunOnce(context.Background(), "2024-01-06")

	require.NoError(t, err)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "bad", result.Results[0].DeviceID)
	assert.NotEmpty(t, result.Results[0].Error)
	assert.Equal(t, 1, result.DevicesFailed)
	assert.Len(t, result.Results[1].Sent, 2)
}

func TestReminderService_RunOnce_NoTargetVisitedWithoutSideEffects(t *testing.T) {
	fx := createTestReminderService(t)
	status := sixDays(false)
	seed(t, fx.store, "d1", &entity.DevicePatch{DailyStatus: &status})

	fx.sender.EXPECT().Validate().Return(nil)

	result, err := fx.service.RunOnce(context.Background(), "2024-01-06")

	require.NoError(t, err)
	assert.Equal(t, []entity.DeviceRunResult{{DeviceID: "d1", Sent: []string{}}}, result.Results)
	assert.Equal(t, 1, result.DevicesVisited)
	assert.True(t, mustGet(t, fx.store, "d1").LastDailyStatusReminderDate.IsZero())
}

func TestReminderService_RunOnce_NeverRewindsDates(t *testing.T) {
	fx := createTestReminderService(t)
	status := sixDays(false)
	later := entity.CalendarDate("2024-01-09")
	seed(t, fx.store, "d1", &entity.DevicePatch{
		DeliveryTarget:              webPushTarget("d1"),
		DailyStatus:                 &status,
		LastDailyStatusReminderDate: &later,
	})

	fx.sender.EXPECT().Validate().Return(nil)
	fx.sender.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := fx.service.RunOnce(context.Background(), "2024-01-06")
	require.NoError(t, err)

	record := mustGet(t, fx.store, "d1")
	assert.Equal(t, later, record.LastDailyStatusReminderDate)
	assert.Equal(t, entity.CalendarDate("2024-01-06"), record.LastBroadcastReminderDate)
}

func TestReminderService_RunOnce_InvalidToday(t *testing.T) {
	fx := createTestReminderService(t)
	fx.sender.EXPECT().Validate().Return(nil)

	_, err := fx.service.RunOnce(context.Background(), "06/01/2024")

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestReminderService_RunOnce_ManyDevicesKeepOrder(t *testing.T) {
	fx := createTestReminderService(t)
	status := sixDays(false)

	var ids []string
	for i := range 25 {
		id := fmt.Sprintf("device-%02d", i)
		ids = append(ids, id)
		seed(t, fx.store, id, &entity.DevicePatch{DeliveryTarget: webPushTarget(id), DailyStatus: &status})
	}

	var mu sync.Mutex
	sends := make(map[string]int)
	fx.sender.EXPECT().Validate().Return(nil)
	fx.sender.EXPECT().
		Send(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, target *entity.PushTarget, _ entity.PushMessage) error {
			mu.Lock()
			defer mu.Unlock()
			sends[target.Endpoint]++

			return nil
		})

	result, err := fx.service.RunOnce(context.Background(), "2024-01-06")
	require.NoError(t, err)

	got := make([]string, 0, len(result.Results))
	for _, device := range result.Results {
		got = append(got, device.DeviceID)
	}
	assert.Equal(t, ids, got)
	assert.Equal(t, 50, result.NotificationsSent)
	for _, count := range sends {
		assert.Equal(t, 2, count)
	}
}

func TestReminderService_Run_ComputesTodayInZone(t *testing.T) {
	// 23:30 UTC on Jan 5 is already Jan 6 in Lagos
	fx := createTestReminderService(t, func(p *ReminderServiceParams) {
		p.Clock = fixedClock(time.Date(2024, 1, 5, 23, 30, 0, 0, time.UTC))
	})
	status := sixDays(true)
	seed(t, fx.store, "d1", &entity.DevicePatch{DeliveryTarget: webPushTarget("d1"), DailyStatus: &status})

	released := false
	fx.locker.EXPECT().
		Acquire(mock.Anything, constants.RunLockName, 10*time.Minute).
		Return(func(context.Context) error { released = true; return nil }, nil)
	fx.sender.EXPECT().Validate().Return(nil)
	fx.sender.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	result, err := fx.service.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entity.CalendarDate("2024-01-06"), result.Today)
	assert.Equal(t, []string{entity.TagBroadcast}, result.Results[0].Sent)
	assert.True(t, released)
}

func TestReminderService_Run_LockHeld(t *testing.T) {
	fx := createTestReminderService(t)

	fx.locker.EXPECT().
		Acquire(mock.Anything, constants.RunLockName, mock.Anything).
		Return(nil, service.ErrLockHeld)

	_, err := fx.service.Run(context.Background())

	assert.ErrorIs(t, err, domainerrors.ErrRunInProgress)
}

func TestBookkeepingPatch_KeepsReRegisteredTarget(t *testing.T) {
	old := webPushTarget("old")
	current := &entity.DeviceRecord{DeliveryTarget: webPushTarget("new")}

	patch := bookkeepingPatch(current, "2024-01-06", old, reminder.Evaluation{}, dispatchOutcome{targetGone: true})

	assert.False(t, patch.ClearDeliveryTarget)
	assert.True(t, patch.IsEmpty())
}
