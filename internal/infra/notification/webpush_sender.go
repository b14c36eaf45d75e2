// Package notification contains the push transports behind service.PushSender.
package notification

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"nudge/config"
	"nudge/internal/domain/entity"
	domainerrors "nudge/internal/domain/errors"
	"nudge/internal/domain/service"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/pkg/errors"
)

const maxErrorBodyBytes = 512

// webPushPayload is the JSON the service worker receives.
type webPushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag"`
	URL   string `json:"url"`
}

type webPushSender struct {
	cfg     *config.WebPushConfig
	timeout time.Duration
	client  webpush.HTTPClient
	logger  *slog.Logger
}

// NewWebPushSender creates a VAPID-signed Web Push transport.
func NewWebPushSender(cfg *config.WebPushConfig, timeout time.Duration, logger *slog.Logger) service.PushSender {
	return &webPushSender{
		cfg:     cfg,
		timeout: timeout,
		client:  &http.Client{},
		logger:  logger,
	}
}

func (s *webPushSender) Validate() error {
	if s.cfg == nil || s.cfg.PublicKey == "" || s.cfg.PrivateKey == "" {
		return domainerrors.ErrTransportNotConfigured.WrapMessage("missing VAPID keys")
	}

	return nil
}

func (s *webPushSender) Send(ctx context.Context, target *entity.PushTarget, msg entity.PushMessage) error {
	if err := s.Validate(); err != nil {
		return err
	}

	// a subscription without endpoint or keys can never be delivered to
	if target == nil || target.Endpoint == "" || target.Keys == nil ||
		target.Keys.P256dh == "" || target.Keys.Auth == "" {
		return errors.Wrap(service.ErrTargetGone, "incomplete web push subscription")
	}

	payload, err := json.Marshal(webPushPayload{
		Title: msg.Title,
		Body:  msg.Body,
		Tag:   msg.Tag,
		URL:   msg.URL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: target.Endpoint,
		Keys: webpush.Keys{
			P256dh: target.Keys.P256dh,
			Auth:   target.Keys.Auth,
		},
	}, &webpush.Options{
		HTTPClient:      s.client,
		Subscriber:      s.cfg.Subject,
		VAPIDPublicKey:  s.cfg.PublicKey,
		VAPIDPrivateKey: s.cfg.PrivateKey,
		TTL:             s.cfg.TTL,
		Urgency:         webpush.UrgencyNormal,
	})
	if err != nil {
		return errors.Wrap(err, "web push request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return errors.Wrapf(service.ErrTargetGone, "push service answered %d", resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		s.logger.Debug("Web push rejected",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)

		return errors.Errorf("push service answered %d", resp.StatusCode)
	}
}
