package notification

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"nudge/config"
	"nudge/internal/domain/entity"
	domainerrors "nudge/internal/domain/errors"
	"nudge/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// routingSender picks the transport by the kind of the delivery target.
type routingSender struct {
	transports map[entity.TargetKind]service.PushSender
}

// NewRoutingSender combines per-kind transports into one PushSender.
func NewRoutingSender(transports map[entity.TargetKind]service.PushSender) service.PushSender {
	return &routingSender{transports: transports}
}

// Validate fails when no transport exists or a configured one is incomplete.
func (r *routingSender) Validate() error {
	if len(r.transports) == 0 {
		return domainerrors.ErrTransportNotConfigured.WrapMessage("no push transport configured")
	}

	for _, kind := range slices.Sorted(maps.Keys(r.transports)) {
		if err := r.transports[kind].Validate(); err != nil {
			return errors.Wrapf(err, "%s transport", kind)
		}
	}

	return nil
}

func (r *routingSender) Send(ctx context.Context, target *entity.PushTarget, msg entity.PushMessage) error {
	if target == nil {
		return errors.Wrap(service.ErrTargetGone, "no delivery target")
	}

	transport, ok := r.transports[target.Kind()]
	if !ok {
		// the target may become deliverable once the transport is configured
		return errors.Errorf("no transport configured for %s targets", target.Kind())
	}

	return transport.Send(ctx, target, msg)
}

// SenderParams holds dependencies for the push sender, injected by Fx
type SenderParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewPushSender builds the routing sender from the configured transports.
func NewPushSender(params SenderParams) (service.PushSender, error) {
	transports := make(map[entity.TargetKind]service.PushSender)

	push := params.Config.Push
	if push == nil {
		push = &config.PushConfig{}
	}

	if webPush := push.WebPush; webPush != nil && (webPush.PublicKey != "" || webPush.PrivateKey != "") {
		transports[entity.TargetKindWebPush] = NewWebPushSender(webPush, push.SendTimeout, params.Logger)
	}

	if fcm := push.Firebase; fcm != nil && (fcm.CredentialsPath != "" || fcm.ProjectID != "") {
		sender, err := NewFirebaseSender(params.Ctx, fcm, push.SendTimeout)
		if err != nil {
			return nil, err
		}
		transports[entity.TargetKindFCM] = sender
	}

	if len(transports) == 0 {
		params.Logger.Warn("No push transport configured, reminder runs will fail")
	} else {
		params.Logger.Info("Push transports configured",
			slog.Any("kinds", slices.Sorted(maps.Keys(transports))),
		)
	}

	return NewRoutingSender(transports), nil
}

// Module provides the push sender FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewPushSender),
)
