// Package postgres stores device records in PostgreSQL through gorm.
package postgres

import (
	"context"

	"nudge/internal/domain/repository"
	"nudge/internal/errors"

	"gorm.io/gorm"
)

type transactionManager struct {
	db *gorm.DB
}

// txFactory hands out repositories bound to one open transaction.
type txFactory struct {
	tx *gorm.DB
}

// NewDeviceRepository returns a repository whose reads lock the row until the
// transaction ends.
func (f *txFactory) NewDeviceRepository() repository.DeviceRepository {
	return newTxDeviceRepository(f.tx)
}

func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &transactionManager{db: db}
}

// Execute commits when fn returns nil and rolls back on error or panic.
// Errors from fn come back unchanged so callers can still match them.
func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	var fnErr error
	err := tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(&txFactory{tx: tx})

		return fnErr
	})

	switch {
	case err == nil:
		return nil
	case fnErr != nil && errors.Is(err, fnErr):
		return fnErr
	default:
		return errors.Wrap(err, "device transaction failed")
	}
}
