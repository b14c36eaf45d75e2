package repository

import "context"

// TransactionManager runs read-modify-write sequences against the device store atomically.
type TransactionManager interface {
	// Execute runs fn in a transaction. If fn returns an error nothing is written.
	// All repository operations within fn observe and produce a consistent state.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the current transaction.
type RepositoryFactory interface {
	// NewDeviceRepository returns a DeviceRepository bound to the current transaction.
	NewDeviceRepository() DeviceRepository
}
