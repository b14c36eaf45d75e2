package notification

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"nudge/config"
	"nudge/internal/domain/entity"
	domainerrors "nudge/internal/domain/errors"
	"nudge/internal/domain/service"
	servicemocks "nudge/internal/mocks/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutingSender_RoutesByTargetKind(t *testing.T) {
	webPush := servicemocks.NewMockPushSender(t)
	fcm := servicemocks.NewMockPushSender(t)
	sender := NewRoutingSender(map[entity.TargetKind]service.PushSender{
		entity.TargetKindWebPush: webPush,
		entity.TargetKindFCM:     fcm,
	})

	ctx := context.Background()
	msg := entity.PushMessage{Title: "t"}
	subscription := &entity.PushTarget{Endpoint: "https://push.example.com/x"}
	token := &entity.PushTarget{FCMToken: "token-1"}

	webPush.EXPECT().Send(ctx, subscription, msg).Return(nil).Once()
	fcm.EXPECT().Send(ctx, token, msg).Return(nil).Once()

	require.NoError(t, sender.Send(ctx, subscription, msg))
	require.NoError(t, sender.Send(ctx, token, msg))
}

func TestRoutingSender_MissingTransportIsTransient(t *testing.T) {
	sender := NewRoutingSender(map[entity.TargetKind]service.PushSender{
		entity.TargetKindWebPush: servicemocks.NewMockPushSender(t),
	})

	err := sender.Send(context.Background(), &entity.PushTarget{FCMToken: "token-1"}, entity.PushMessage{})

	require.Error(t, err)
	assert.False(t, service.IsPermanentFailure(err))
}

func TestRoutingSender_NilTargetIsPermanent(t *testing.T) {
	sender := NewRoutingSender(map[entity.TargetKind]service.PushSender{})

	assert.True(t, service.IsPermanentFailure(sender.Send(context.Background(), nil, entity.PushMessage{})))
}

func TestRoutingSender_Validate(t *testing.T) {
	t.Run("no transports", func(t *testing.T) {
		err := NewRoutingSender(nil).Validate()
		assert.ErrorIs(t, err, domainerrors.ErrTransportNotConfigured)
	})

	t.Run("broken transport", func(t *testing.T) {
		webPush := servicemocks.NewMockPushSender(t)
		webPush.EXPECT().Validate().Return(errors.Wrap(domainerrors.ErrTransportNotConfigured, "missing VAPID keys"))

		err := NewRoutingSender(map[entity.TargetKind]service.PushSender{
			entity.TargetKindWebPush: webPush,
		}).Validate()
		assert.ErrorIs(t, err, domainerrors.ErrTransportNotConfigured)
	})

	t.Run("healthy", func(t *testing.T) {
		webPush := servicemocks.NewMockPushSender(t)
		webPush.EXPECT().Validate().Return(nil)

		assert.NoError(t, NewRoutingSender(map[entity.TargetKind]service.PushSender{
			entity.TargetKindWebPush: webPush,
		}).Validate())
	})
}

func TestNewPushSender_WebPushOnly(t *testing.T) {
	cfg := &config.Config{Push: &config.PushConfig{WebPush: newTestWebPushConfig(t)}}

	sender, err := NewPushSender(SenderParams{
		Ctx:    context.Background(),
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	require.NoError(t, sender.Validate())

	routing, ok := sender.(*routingSender)
	require.True(t, ok)
	assert.Contains(t, routing.transports, entity.TargetKindWebPush)
	assert.NotContains(t, routing.transports, entity.TargetKindFCM)
}

func TestNewPushSender_NothingConfigured(t *testing.T) {
	sender, err := NewPushSender(SenderParams{
		Ctx:    context.Background(),
		Config: &config.Config{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, sender.Validate(), domainerrors.ErrTransportNotConfigured)
}
