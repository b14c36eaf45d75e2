package scheduler

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"nudge/config"
	"nudge/internal/domain/entity"
	"nudge/internal/domain/service"
	servicemocks "nudge/internal/mocks/service"
	usecasemocks "nudge/internal/mocks/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixture struct {
	scheduler  *scheduler
	reminderUC *usecasemocks.MockReminderUsecase
	publisher  *servicemocks.MockEventPublisher
}

func newFixture(t *testing.T, cfg *config.Config) fixture {
	t.Helper()

	if cfg.Reminders == nil {
		cfg.Reminders = &config.RemindersConfig{}
	}
	require.NoError(t, cfg.Reminders.ApplyDefaults())

	reminderUC := usecasemocks.NewMockReminderUsecase(t)
	publisher := servicemocks.NewMockEventPublisher(t)

	d, err := NewScheduler(SchedulerParams{
		Lc:         fxtest.NewLifecycle(t),
		Cfg:        cfg,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		ReminderUC: reminderUC,
		Publisher:  publisher,
		Clock:      fixedClock{now: time.Date(2024, 1, 6, 17, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)

	return fixture{scheduler: d.(*scheduler), reminderUC: reminderUC, publisher: publisher}
}

func TestScheduler_TickRunsInlineWithoutPubSub(t *testing.T) {
	f := newFixture(t, &config.Config{Reminders: &config.RemindersConfig{Schedule: "0 18 * * *"}})

	f.reminderUC.EXPECT().Run(mock.Anything).Return(&entity.RunResult{RunID: "run-1"}, nil).Once()

	f.scheduler.tick()
}

func TestScheduler_TickPublishesWithPubSub(t *testing.T) {
	f := newFixture(t, &config.Config{
		Reminders: &config.RemindersConfig{Schedule: "0 18 * * *"},
		PubSub:    &config.PubSubConfig{Provider: "local", LocalEndpoint: "http://localhost:8081/push"},
	})

	f.publisher.EXPECT().
		PublishReminderRun(mock.Anything, mock.MatchedBy(func(event *service.ReminderRunEvent) bool {
			return event.Source == SourceScheduler && event.RunID != "" && event.RunID == event.RequestID &&
				event.RequestedAt.Equal(time.Date(2024, 1, 6, 17, 0, 0, 0, time.UTC))
		})).
		Return(nil).Once()

	f.scheduler.tick()
}

func TestScheduler_ScheduleUsesReminderZone(t *testing.T) {
	f := newFixture(t, &config.Config{Reminders: &config.RemindersConfig{
		Schedule: "0 18 * * *",
		TimeZone: "Africa/Lagos",
	}})

	entries := f.scheduler.cron.Entries()
	require.Len(t, entries, 1)

	lagos, err := time.LoadLocation("Africa/Lagos")
	require.NoError(t, err)

	next := entries[0].Schedule.Next(time.Date(2024, 1, 6, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 1, 6, 18, 0, 0, 0, lagos), next.In(lagos))
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	cfg := &config.Config{Reminders: &config.RemindersConfig{Schedule: "every day please"}}
	require.NoError(t, cfg.Reminders.ApplyDefaults())

	_, err := NewScheduler(SchedulerParams{
		Lc:     fxtest.NewLifecycle(t),
		Cfg:    cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:  service.NewSystemClock(),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid reminders.schedule")
}

func TestScheduler_DisabledWithoutSpec(t *testing.T) {
	f := newFixture(t, &config.Config{})

	require.NoError(t, f.scheduler.Serve(t.Context()))
	assert.Empty(t, f.scheduler.cron.Entries())
}
