package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"nudge/config"
	"nudge/internal/domain/lifecycle"
	"nudge/internal/errors"
	"nudge/internal/infra/persistence/model"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolWatchInterval     = 5 * time.Second
	poolWaitWarnThreshold = 50 * time.Millisecond
)

type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the device database. Connectivity is checked on start, where the
// devices table is also migrated when storage.autoMigrate is set.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open device database")
	}
	// Merge opens its own transaction; single statements need none
	db = db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 newGormLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get device database handle")
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "device database unreachable")
			}

			if params.Config.Storage != nil && params.Config.Storage.AutoMigrate {
				if err := db.WithContext(ctx).AutoMigrate(&model.DeviceModel{}); err != nil {
					return errors.Wrap(err, "failed to migrate devices table")
				}
			}

			go watchPool(watchCtx, params.Logger, sqlDB, poolWatchInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			stopWatch()

			return errors.WithStack(sqlDB.Close())
		},
	})

	return db, nil
}

// watchPool logs when callers had to wait for a connection since the last tick.
// A reminder run with many workers is the usual cause.
func watchPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		stats := sqlDB.Stats()
		waits := stats.WaitCount - last.WaitCount
		waited := stats.WaitDuration - last.WaitDuration
		last = stats
		if waits <= 0 {
			continue
		}

		level := slog.LevelDebug
		if waited >= poolWaitWarnThreshold {
			level = slog.LevelWarn
		}
		logger.LogAttrs(ctx, level, "Postgres pool saturated",
			slog.Int64("waits", waits),
			slog.Duration("waited", waited),
			slog.Int("in_use", stats.InUse),
			slog.Int("max_open", stats.MaxOpenConnections),
		)
	}
}
