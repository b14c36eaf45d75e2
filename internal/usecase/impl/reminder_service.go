package impl

import (
	"context"
	"log/slog"
	"time"

	"nudge/config"
	deliverycontext "nudge/internal/delivery/context"
	"nudge/internal/domain/constants"
	"nudge/internal/domain/entity"
	domainerrors "nudge/internal/domain/errors"
	"nudge/internal/domain/reminder"
	"nudge/internal/domain/repository"
	"nudge/internal/domain/service"
	"nudge/internal/errors"
	"nudge/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

// reminderService implements the ReminderUsecase interface.
type reminderService struct {
	deviceRepo repository.DeviceRepository
	txManager  repository.TransactionManager
	sender     service.PushSender
	locker     service.RunLocker
	clock      service.Clock
	evaluator  *reminder.Evaluator
	cfg        *config.RemindersConfig
	logger     *slog.Logger
}

// ReminderServiceParams holds dependencies for ReminderService, injected by Fx.
type ReminderServiceParams struct {
	fx.In

	DeviceRepo repository.DeviceRepository
	TxManager  repository.TransactionManager
	Sender     service.PushSender
	Locker     service.RunLocker
	Clock      service.Clock
	Evaluator  *reminder.Evaluator `optional:"true"`
	Config     *config.Config
	Logger     *slog.Logger
}

// NewReminderService is the constructor for reminderService.
func NewReminderService(params ReminderServiceParams) usecase.ReminderUsecase {
	cfg := params.Config.Reminders
	if cfg == nil {
		cfg = &config.RemindersConfig{}
	}

	evaluator := params.Evaluator
	if evaluator == nil {
		evaluator = reminder.NewEvaluator(nil)
	}

	clock := params.Clock
	if clock == nil {
		clock = service.NewSystemClock()
	}

	return &reminderService{
		deviceRepo: params.DeviceRepo,
		txManager:  params.TxManager,
		sender:     params.Sender,
		locker:     params.Locker,
		clock:      clock,
		evaluator:  evaluator,
		cfg:        cfg,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *reminderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

// Run holds the run lock for the duration of one run over "today" in the configured zone.
func (srv *reminderService) Run(ctx context.Context) (*entity.RunResult, error) {
	release, err := srv.locker.Acquire(ctx, constants.RunLockName, srv.cfg.LockTTL)
	if err != nil {
		if errors.Is(err, service.ErrLockHeld) {
			return nil, domainerrors.ErrRunInProgress.WrapMessage(err.Error())
		}

		return nil, errors.Wrap(err, "failed to acquire run lock")
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			srv.log(ctx).Warn("Failed to release run lock", slog.Any("error", err))
		}
	}()

	today := entity.TodayIn(srv.cfg.Location(), srv.clock.Now())

	return srv.RunOnce(ctx, today)
}

// RunOnce evaluates every device against today and dispatches what is due.
func (srv *reminderService) RunOnce(ctx context.Context, today entity.CalendarDate) (*entity.RunResult, error) {
	logger := srv.log(ctx)

	// configuration problems abort before any device is touched
	if err := srv.sender.Validate(); err != nil {
		logger.Error("Reminder run aborted: transport misconfigured", slog.Any("error", err))

		return nil, errors.Wrap(err, "push transport configuration")
	}

	at, err := reminder.NewEvaluationTime(today, srv.cfg.Location())
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	ids, err := srv.deviceRepo.ListDeviceIDs(ctx)
	if err != nil {
		return nil, domainerrors.ErrStoreUnavailable.WrapMessage(err.Error())
	}

	runID := uuid.NewString()
	logger = logger.With(slog.String("run_id", runID), slog.String("today", today.String()))
	ctx = deliverycontext.WithLogger(ctx, logger)

	start := time.Now()
	results := make([]*entity.DeviceRunResult, len(ids))

	var g errgroup.Group
	g.SetLimit(max(srv.cfg.Workers, 1))

	for i, deviceID := range ids {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			device := srv.processDevice(ctx, deviceID, at)
			results[i] = &device

			return nil
		})
	}
	_ = g.Wait()

	result := &entity.RunResult{RunID: runID, Today: today, Results: make([]entity.DeviceRunResult, 0, len(ids))}
	for _, device := range results {
		if device != nil {
			result.Add(*device)
		}
	}

	logger.Info("Reminder run finished",
		slog.Int("devices", result.DevicesVisited),
		slog.Int("pending", result.NotificationsPending),
		slog.Int("sent", result.NotificationsSent),
		slog.Int("failed_devices", result.DevicesFailed),
		slog.Duration("duration", time.Since(start)),
	)

	if err := ctx.Err(); err != nil {
		return result, errors.Wrap(err, "reminder run interrupted")
	}

	return result, nil
}

// processDevice runs load, evaluate, send and commit for one device. Failures are
// recorded in the result, never returned.
func (srv *reminderService) processDevice(ctx context.Context, deviceID string, at reminder.EvaluationTime) entity.DeviceRunResult {
	logger := srv.log(ctx).With(slog.String("device_id", deviceID))
	result := entity.DeviceRunResult{DeviceID: deviceID, Sent: []string{}}

	record, err := srv.deviceRepo.Get(ctx, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return result
		}
		logger.Warn("Skipping unreadable device", slog.Any("error", err))
		result.Error = err.Error()

		return result
	}

	if record.DeliveryTarget == nil {
		return result
	}

	evaluation := srv.evaluator.Evaluate(deviceID, record, at)
	result.Pending = len(evaluation.Pending)
	if result.Pending == 0 {
		return result
	}

	outcome := srv.dispatch(ctx, logger, record.DeliveryTarget, evaluation.Pending)
	result.Sent = outcome.sent
	result.TargetInvalidated = outcome.targetGone

	if err := srv.commit(ctx, deviceID, at.Today, record.DeliveryTarget, evaluation, outcome); err != nil {
		logger.Error("Failed to commit reminder bookkeeping", slog.Any("error", err))
		result.Error = err.Error()
	}

	logger.Info("Device reminders dispatched",
		slog.Int("pending", result.Pending),
		slog.Any("sent", result.Sent),
		slog.Bool("target_invalidated", result.TargetInvalidated),
	)

	return result
}

type dispatchOutcome struct {
	sent       []string
	targetGone bool
}

func (o dispatchOutcome) has(tag string) bool {
	for _, sent := range o.sent {
		if sent == tag {
			return true
		}
	}

	return false
}

// dispatch sends pending notifications in order. A target reported gone is cleared at
// commit, but the remaining notifications of this run are still attempted.
func (srv *reminderService) dispatch(
	ctx context.Context,
	logger *slog.Logger,
	target *entity.PushTarget,
	pending []entity.PendingNotification,
) dispatchOutcome {
	outcome := dispatchOutcome{sent: []string{}}

	for _, notification := range pending {
		err := srv.sender.Send(ctx, target, notification.Message())
		switch {
		case err == nil:
			outcome.sent = append(outcome.sent, notification.DedupeTag)
		case service.IsPermanentFailure(err):
			outcome.targetGone = true
			logger.Info("Delivery target is gone, clearing it",
				slog.String("tag", notification.DedupeTag),
				slog.Any("error", err),
			)
		default:
			logger.Warn("Transient push failure",
				slog.String("tag", notification.DedupeTag),
				slog.Any("error", err),
			)
		}
	}

	return outcome
}

// commit writes the device's bookkeeping as one merge. It re-reads the record inside the
// transaction so dates never move backwards and a target re-registered mid-run survives.
func (srv *reminderService) commit(
	ctx context.Context,
	deviceID string,
	today entity.CalendarDate,
	target *entity.PushTarget,
	evaluation reminder.Evaluation,
	outcome dispatchOutcome,
) error {
	// the commit outlives run cancellation so sends are not left unrecorded
	commitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), srv.cfg.CommitTimeout)
	defer cancel()

	err := srv.txManager.Execute(commitCtx, func(txRepoFactory repository.RepositoryFactory) error {
		repo := txRepoFactory.NewDeviceRepository()

		current, err := repo.Get(commitCtx, deviceID)
		if err != nil {
			return errors.Wrap(err, "failed to reload device")
		}

		patch := bookkeepingPatch(current, today, target, evaluation, outcome)
		if patch.IsEmpty() {
			return nil
		}

		if _, err := repo.Merge(commitCtx, deviceID, patch); err != nil {
			return errors.Wrap(err, "failed to merge bookkeeping")
		}

		return nil
	})

	return errors.WithStack(err)
}

// bookkeepingPatch computes the single merge-update of a device after dispatch.
func bookkeepingPatch(
	current *entity.DeviceRecord,
	today entity.CalendarDate,
	target *entity.PushTarget,
	evaluation reminder.Evaluation,
	outcome dispatchOutcome,
) *entity.DevicePatch {
	patch := &entity.DevicePatch{}

	if outcome.has(entity.TagDailyStatus) && advances(current.LastDailyStatusReminderDate, today) {
		patch.LastDailyStatusReminderDate = &today
	}
	if outcome.has(entity.TagBroadcast) && advances(current.LastBroadcastReminderDate, today) {
		patch.LastBroadcastReminderDate = &today
	}

	// follow-up history is persisted whether or not the send succeeded
	if evaluation.FollowUpsChanged {
		histories := entity.CloneReminderHistories(current.FollowUpReminderSentDates)
		if histories == nil {
			histories = make(map[string]entity.ReminderHistory)
		}
		for _, notification := range evaluation.Pending {
			if notification.Category != entity.CategoryFollowUp {
				continue
			}
			if !histories[notification.FollowUpID].Contains(today) {
				histories[notification.FollowUpID] = append(histories[notification.FollowUpID], today)
			}
		}
		patch.FollowUpReminderSentDates = histories
	}

	if outcome.targetGone && sameTarget(current.DeliveryTarget, target) {
		patch.ClearDeliveryTarget = true
	}

	return patch
}

// advances reports whether setting a last-sent date to today moves it forward.
func advances(last, today entity.CalendarDate) bool {
	return !last.Valid() || last.Before(today)
}

func sameTarget(a, b *entity.PushTarget) bool {
	if a == nil || b == nil {
		return false
	}

	return a.Endpoint == b.Endpoint && a.FCMToken == b.FCMToken
}
