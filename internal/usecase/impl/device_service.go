package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"nudge/config"
	deliverycontext "nudge/internal/delivery/context"
	"nudge/internal/domain/entity"
	domainerrors "nudge/internal/domain/errors"
	"nudge/internal/domain/repository"
	"nudge/internal/domain/service"
	"nudge/internal/errors"
	"nudge/internal/usecase"

	"go.uber.org/fx"
)

type deviceService struct {
	deviceRepo repository.DeviceRepository
	sender     service.PushSender
	publicKey  string
	logger     *slog.Logger
}

// DeviceServiceParams holds dependencies for DeviceService, injected by Fx.
type DeviceServiceParams struct {
	fx.In

	DeviceRepo repository.DeviceRepository
	Sender     service.PushSender
	Config     *config.Config
	Logger     *slog.Logger
}

// NewDeviceService creates a new device service instance
func NewDeviceService(params DeviceServiceParams) usecase.DeviceUsecase {
	var publicKey string
	if params.Config != nil && params.Config.Push != nil && params.Config.Push.WebPush != nil {
		publicKey = params.Config.Push.WebPush.PublicKey
	}

	return &deviceService{
		deviceRepo: params.DeviceRepo,
		sender:     params.Sender,
		publicKey:  publicKey,
		logger:     params.Logger,
	}
}

func (s *deviceService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, s.logger)
}

// Subscribe stores a Web Push subscription as the device's delivery target
func (s *deviceService) Subscribe(ctx context.Context, deviceID string, subscription *entity.PushTarget) (*entity.DeviceRecord, error) {
	if strings.TrimSpace(deviceID) == "" || subscription == nil || subscription.Endpoint == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("missing deviceId or subscription")
	}
	if subscription.Keys == nil || subscription.Keys.P256dh == "" || subscription.Keys.Auth == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("subscription is missing keys")
	}

	target := subscription.Clone()
	target.FCMToken = ""

	record, err := s.deviceRepo.Merge(ctx, deviceID, &entity.DevicePatch{DeliveryTarget: target})
	if err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	s.log(ctx).Info("Device subscribed", slog.String("device_id", deviceID))

	return record, nil
}

// RegisterFCMToken stores an FCM registration token as the device's delivery target
func (s *deviceService) RegisterFCMToken(ctx context.Context, deviceID, token string) (*entity.DeviceRecord, error) {
	token = strings.TrimSpace(token)
	if strings.TrimSpace(deviceID) == "" || token == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("missing deviceId or token")
	}

	record, err := s.deviceRepo.Merge(ctx, deviceID, &entity.DevicePatch{
		DeliveryTarget: &entity.PushTarget{FCMToken: token},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save FCM token: %w", err)
	}

	s.log(ctx).Info("FCM token registered", slog.String("device_id", deviceID))

	return record, nil
}

// SyncData replaces the device's mirrored domain data
func (s *deviceService) SyncData(ctx context.Context, input *usecase.SyncDataInput) (*entity.DeviceRecord, error) {
	if input == nil || strings.TrimSpace(input.DeviceID) == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("missing deviceId")
	}

	followUps := nonNil(input.FollowUps)
	dailyStatus := nonNil(input.DailyStatus)
	broadcasts := nonNil(input.Broadcasts)
	scheduledPosts := input.ScheduledPosts
	if scheduledPosts == nil {
		scheduledPosts = json.RawMessage("[]")
	}

	record, err := s.deviceRepo.Merge(ctx, input.DeviceID, &entity.DevicePatch{
		FollowUps:      &followUps,
		DailyStatus:    &dailyStatus,
		Broadcasts:     &broadcasts,
		ScheduledPosts: scheduledPosts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save data: %w", err)
	}

	return record, nil
}

// GetDevice returns the stored record of a device
func (s *deviceService) GetDevice(ctx context.Context, deviceID string) (*entity.DeviceRecord, error) {
	record, err := s.deviceRepo.Get(ctx, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return nil, domainerrors.ErrDeviceNotFound
		}

		return nil, fmt.Errorf("failed to find device: %w", err)
	}

	return record, nil
}

// SendTestPush delivers one notification immediately. A stored target reported gone is cleared.
func (s *deviceService) SendTestPush(ctx context.Context, input *usecase.TestPushInput) error {
	if input == nil || (input.Target == nil && strings.TrimSpace(input.DeviceID) == "") {
		return domainerrors.ErrValidationFailed.WrapMessage("missing deviceId or subscription")
	}

	if err := s.sender.Validate(); err != nil {
		return errors.Wrap(err, "push transport configuration")
	}

	target := input.Target
	if target == nil {
		record, err := s.GetDevice(ctx, input.DeviceID)
		if err != nil {
			return err
		}
		if record.DeliveryTarget == nil {
			return domainerrors.ErrDeviceTargetMissing
		}
		target = record.DeliveryTarget
	}

	err := s.sender.Send(ctx, target, input.Message)
	if err == nil {
		return nil
	}

	if !service.IsPermanentFailure(err) {
		return domainerrors.ErrPushFailed.WrapMessage(err.Error())
	}

	if input.Target == nil {
		if _, mergeErr := s.deviceRepo.Merge(ctx, input.DeviceID, &entity.DevicePatch{ClearDeliveryTarget: true}); mergeErr != nil {
			s.log(ctx).Error("Failed to clear gone delivery target",
				slog.String("device_id", input.DeviceID),
				slog.Any("error", mergeErr),
			)
		}
	}

	return domainerrors.ErrDeviceTargetGone.WrapMessage(err.Error())
}

// PublicKey returns the VAPID public key clients subscribe with
func (s *deviceService) PublicKey() (string, error) {
	if s.publicKey == "" {
		return "", domainerrors.ErrTransportNotConfigured.WrapMessage("missing VAPID public key")
	}

	return s.publicKey, nil
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}

	return in
}
