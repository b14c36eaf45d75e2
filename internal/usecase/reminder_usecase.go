package usecase

import (
	"context"

	"nudge/internal/domain/entity"
)

// ReminderUsecase evaluates and dispatches reminders for every stored device.
type ReminderUsecase interface {
	// RunOnce performs one run for the given calendar day. It takes no lock: callers
	// must not run it concurrently over the same devices.
	RunOnce(ctx context.Context, today entity.CalendarDate) (*entity.RunResult, error)

	// Run holds the run lock, computes today once in the configured zone, and calls RunOnce.
	Run(ctx context.Context) (*entity.RunResult, error)
}
