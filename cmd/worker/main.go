package main

import (
	"context"
	"log/slog"
	"os"

	"nudge/config"
	"nudge/internal/delivery"
	"nudge/internal/delivery/worker"
	"nudge/internal/delivery/worker/handler"
	"nudge/internal/domain/service"
	"nudge/internal/infra/lock"
	logs "nudge/internal/infra/log"
	"nudge/internal/infra/notification"
	"nudge/internal/infra/persistence"
	"nudge/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			service.NewSystemClock,
		),
		persistence.Module,
		lock.Module,
		notification.Module,
		fx.Provide(
			impl.NewReminderService,
			handler.NewPushHandler,
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start worker", slog.Any("error", err))

				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
