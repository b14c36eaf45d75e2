package main

import (
	"context"
	"log/slog"
	"os"

	"nudge/config"
	"nudge/internal/delivery"
	"nudge/internal/delivery/api"
	"nudge/internal/delivery/api/router/handler"
	"nudge/internal/delivery/scheduler"
	"nudge/internal/domain/service"
	"nudge/internal/infra/lock"
	logs "nudge/internal/infra/log"
	"nudge/internal/infra/notification"
	"nudge/internal/infra/persistence"
	"nudge/internal/infra/pubsub"
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
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			service.NewSystemClock,
		),
		persistence.Module,
		lock.Module,
	)
}

func injectService() fx.Option {
	return fx.Options(
		notification.Module,
		pubsub.Module,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewReminderService,
		impl.NewDeviceService,
	)
}

func injectHandler() fx.Option {
	return fx.Provide(
		handler.NewPushHandler,
		handler.NewReminderHandler,
	)
}

func injectDelivery() fx.Option {
	return fx.Provide(
		fx.Annotate(
			api.NewServer,
			fx.ResultTags(`group:"deliveries"`),
		),
		fx.Annotate(
			scheduler.NewScheduler,
			fx.ResultTags(`group:"deliveries"`),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// OnStop hooks still run on a graceful shutdown
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
