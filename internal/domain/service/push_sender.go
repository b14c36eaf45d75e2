// Package service declares the external collaborators the use cases depend on.
package service

import (
	"context"

	"nudge/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrTargetGone is the permanent-failure signal: the delivery target will never accept
// another notification (unsubscribed, expired, unregistered).
var ErrTargetGone = errors.New("push target is no longer valid")

// PushSender delivers a notification to one delivery target.
//
// Send returns nil on success, an error wrapping ErrTargetGone on permanent failure,
// and any other error on transient failure. Implementations bound every call in time.
type PushSender interface {
	Send(ctx context.Context, target *entity.PushTarget, msg entity.PushMessage) error

	// Validate reports configuration problems that would make every Send fail.
	Validate() error
}

// IsPermanentFailure reports whether err means the target must be discarded.
func IsPermanentFailure(err error) bool {
	return errors.Is(err, ErrTargetGone)
}
