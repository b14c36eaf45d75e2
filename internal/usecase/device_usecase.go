package usecase

import (
	"context"
	"encoding/json"

	"nudge/internal/domain/entity"
)

// SyncDataInput carries the domain data a device mirrors to the server.
// Nil slices are stored as empty.
type SyncDataInput struct {
	DeviceID    string
	FollowUps   []entity.FollowUpEntry
	DailyStatus []entity.DailyStatusEntry
	Broadcasts  []entity.BroadcastEntry
	// ScheduledPosts is an opaque JSON array
	ScheduledPosts json.RawMessage
}

// TestPushInput addresses an ad-hoc notification either to a stored device or to a raw subscription.
type TestPushInput struct {
	DeviceID string
	Target   *entity.PushTarget
	Message  entity.PushMessage
}

// DeviceUsecase defines the device mirroring use cases
type DeviceUsecase interface {
	// Subscribe stores a Web Push subscription as the device's delivery target
	Subscribe(ctx context.Context, deviceID string, subscription *entity.PushTarget) (*entity.DeviceRecord, error)

	// RegisterFCMToken stores an FCM registration token as the device's delivery target
	RegisterFCMToken(ctx context.Context, deviceID, token string) (*entity.DeviceRecord, error)

	// SyncData replaces the device's mirrored domain data, leaving target and bookkeeping untouched
	SyncData(ctx context.Context, input *SyncDataInput) (*entity.DeviceRecord, error)

	// GetDevice returns the stored record of a device
	GetDevice(ctx context.Context, deviceID string) (*entity.DeviceRecord, error)

	// SendTestPush delivers one notification immediately
	SendTestPush(ctx context.Context, input *TestPushInput) error

	// PublicKey returns the VAPID public key clients subscribe with
	PublicKey() (string, error)
}
