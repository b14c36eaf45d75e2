// Package scheduler triggers reminder runs on a cron schedule.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"nudge/config"
	"nudge/internal/delivery"
	deliverycontext "nudge/internal/delivery/context"
	"nudge/internal/domain/lifecycle"
	"nudge/internal/domain/service"
	"nudge/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

// SourceScheduler marks run requests raised by the scheduler.
const SourceScheduler = "scheduler"

type scheduler struct {
	cron       *cron.Cron
	spec       string
	publish    bool
	reminderUC usecase.ReminderUsecase
	publisher  service.EventPublisher
	clock      service.Clock
	logger     *slog.Logger
}

// SchedulerParams holds dependencies for the scheduler, injected by Fx
type SchedulerParams struct {
	fx.In

	Lc         fx.Lifecycle
	Cfg        *config.Config
	Logger     *slog.Logger
	ReminderUC usecase.ReminderUsecase
	Publisher  service.EventPublisher
	Clock      service.Clock
}

// NewScheduler registers reminders.schedule, evaluated in the reminder time zone.
// With Pub/Sub configured a tick publishes a run request; otherwise it runs inline.
func NewScheduler(params SchedulerParams) (delivery.Delivery, error) {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(params.Logger.Handler(), slog.LevelInfo))

	s := &scheduler{
		cron: cron.New(
			cron.WithLocation(params.Cfg.Reminders.Location()),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		spec:       params.Cfg.Reminders.Schedule,
		publish:    params.Cfg.PubSub != nil && params.Cfg.PubSub.Provider != "",
		reminderUC: params.ReminderUC,
		publisher:  params.Publisher,
		clock:      params.Clock,
		logger:     params.Logger,
	}

	if s.spec != "" {
		if _, err := s.cron.AddFunc(s.spec, s.tick); err != nil {
			return nil, errors.Wrapf(err, "invalid reminders.schedule %q", s.spec)
		}
	}

	params.Lc.Append(fx.Hook{
		OnStop: s.stop,
	})

	return s, nil
}

func (s *scheduler) Serve(_ context.Context) error {
	if s.spec == "" {
		s.logger.Info("Reminder scheduler disabled")

		return nil
	}

	s.cron.Start()
	s.logger.Info("Reminder scheduler started",
		slog.String("schedule", s.spec),
		slog.Bool("publish", s.publish),
	)

	return nil
}

func (s *scheduler) stop(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-waitCtx.Done():
		return errors.Wrap(waitCtx.Err(), "scheduler did not stop in time")
	}
}

func (s *scheduler) tick() {
	triggerID := uuid.NewString()
	ctx, logger := deliverycontext.Scope(context.Background(), s.logger, triggerID)

	if s.publish {
		event := &service.ReminderRunEvent{
			RequestID:   triggerID,
			RunID:       triggerID,
			RequestedAt: s.clock.Now().UTC(),
			Source:      SourceScheduler,
		}
		if err := s.publisher.PublishReminderRun(ctx, event); err != nil {
			logger.Error("Failed to publish reminder run", slog.Any("error", err))
		}

		return
	}

	start := time.Now()
	result, err := s.reminderUC.Run(ctx)
	if err != nil {
		logger.Error("Scheduled reminder run failed", slog.Any("error", err))

		return
	}

	logger.Info("Scheduled reminder run finished",
		slog.String("run_id", result.RunID),
		slog.Int("sent", result.NotificationsSent),
		slog.Duration("elapsed", time.Since(start)),
	)
}
