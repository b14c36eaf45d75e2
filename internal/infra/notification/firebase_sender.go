package notification

import (
	"context"
	"fmt"
	"time"

	"nudge/config"
	"nudge/internal/domain/entity"
	"nudge/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// messagingClient is the part of *messaging.Client the sender uses.
type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type firebaseSender struct {
	client  messagingClient
	timeout time.Duration
}

// NewFirebaseSender creates an FCM transport. Without a credentials path the
// application default credentials are used.
func NewFirebaseSender(ctx context.Context, cfg *config.FirebaseConfig, timeout time.Duration) (service.PushSender, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	var appConfig *firebase.Config
	if cfg.ProjectID != "" {
		appConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &firebaseSender{
		client:  client,
		timeout: timeout,
	}, nil
}

func (s *firebaseSender) Validate() error {
	return nil
}

func (s *firebaseSender) Send(ctx context.Context, target *entity.PushTarget, msg entity.PushMessage) error {
	if target == nil || target.FCMToken == "" {
		return errors.Wrap(service.ErrTargetGone, "missing FCM token")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	_, err := s.client.Send(ctx, toFCMMessage(target.FCMToken, msg))
	if err == nil {
		return nil
	}

	if messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err) || messaging.IsSenderIDMismatch(err) {
		return errors.Wrapf(service.ErrTargetGone, "fcm rejected token: %v", err)
	}

	return fmt.Errorf("failed to send notification: %w", err)
}

func toFCMMessage(token string, msg entity.PushMessage) *messaging.Message {
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: map[string]string{
			"tag": msg.Tag,
			"url": msg.URL,
		},
		Android: &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{Tag: msg.Tag},
		},
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{Tag: msg.Tag},
		},
	}
}
