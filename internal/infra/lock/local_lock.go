package lock

import (
	"context"
	"sync"
	"time"

	"nudge/internal/domain/service"

	"github.com/google/uuid"
)

type localHold struct {
	token     string
	expiresAt time.Time
}

// localLocker serialises runs within one process only.
type localLocker struct {
	mu    sync.Mutex
	held  map[string]localHold
	nowFn func() time.Time
}

// NewLocalLocker creates an in-process RunLocker.
func NewLocalLocker() service.RunLocker {
	return &localLocker{
		held:  make(map[string]localHold),
		nowFn: time.Now,
	}
}

func (l *localLocker) Acquire(_ context.Context, name string, ttl time.Duration) (service.ReleaseFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFn()
	if hold, ok := l.held[name]; ok && now.Before(hold.expiresAt) {
		return nil, service.ErrLockHeld
	}

	token := uuid.NewString()
	l.held[name] = localHold{token: token, expiresAt: now.Add(ttl)}

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()

		if hold, ok := l.held[name]; ok && hold.token == token {
			delete(l.held, name)
		}

		return nil
	}, nil
}
