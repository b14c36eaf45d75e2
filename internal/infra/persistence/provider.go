// Package persistence selects the device store back-end from configuration.
package persistence

import (
	"context"
	"log/slog"

	"nudge/config"
	"nudge/internal/domain/repository"
	"nudge/internal/infra/persistence/blobstore"
	"nudge/internal/infra/persistence/memory"
	"nudge/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for the device store, injected by Fx
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// Result exposes the store under both domain contracts.
type Result struct {
	fx.Out

	DeviceRepo repository.DeviceRepository
	TxManager  repository.TransactionManager
}

// New builds the device store named by storage.driver.
func New(params Params) (Result, error) {
	driver := config.StorageDriverMemory
	if params.Config.Storage != nil && params.Config.Storage.Driver != "" {
		driver = params.Config.Storage.Driver
	}

	logger := params.Logger.With(slog.String("driver", driver))

	switch driver {
	case config.StorageDriverMemory:
		logger.Warn("Using in-memory device store, records are lost on restart")
		store := memory.NewStore()

		return Result{
			DeviceRepo: memory.NewDeviceRepository(store),
			TxManager:  memory.NewTransactionManager(store),
		}, nil

	case config.StorageDriverBlob:
		bucket, err := blobstore.OpenBucket(blobstore.Params{
			Lifecycle: params.Lifecycle,
			Ctx:       params.Ctx,
			Config:    params.Config,
			Logger:    logger,
		})
		if err != nil {
			return Result{}, err
		}
		store := blobstore.NewStore(bucket, params.Config.Storage.BlobKey)

		return Result{DeviceRepo: store, TxManager: store}, nil

	case config.StorageDriverPostgres:
		if params.Config.Postgres == nil {
			return Result{}, errors.New("postgres configuration is required for the postgres driver")
		}
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    logger,
		})
		if err != nil {
			return Result{}, err
		}
		logger.Info("Using PostgreSQL device store")

		return Result{
			DeviceRepo: postgres.NewDeviceRepository(db),
			TxManager:  postgres.NewTransactionManager(db),
		}, nil

	default:
		return Result{}, errors.Errorf("unknown storage driver: %s", driver)
	}
}

// Module provides the device store FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
