package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrLockHeld is returned when another holder owns the lock.
var ErrLockHeld = errors.New("lock is held by another run")

// ReleaseFunc gives a lock back. Releasing an expired or stolen lock is a no-op.
type ReleaseFunc func(ctx context.Context) error

// RunLocker serialises reminder runs across processes.
type RunLocker interface {
	// Acquire takes the named lock for at most ttl, or returns ErrLockHeld.
	Acquire(ctx context.Context, name string, ttl time.Duration) (ReleaseFunc, error)
}
