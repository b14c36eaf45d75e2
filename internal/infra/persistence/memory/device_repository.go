// Package memory is a process-local device store, used in development and as the test fake.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"nudge/internal/domain/entity"
	"nudge/internal/domain/repository"
)

// Store keeps device records in a map. Records are copied on the way in and out.
type Store struct {
	mu      sync.RWMutex
	devices map[string]*entity.DeviceRecord
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{devices: make(map[string]*entity.DeviceRecord)}
}

// NewDeviceRepository exposes the store as a DeviceRepository.
func NewDeviceRepository(store *Store) repository.DeviceRepository {
	return store
}

// NewTransactionManager exposes the store as a TransactionManager.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return store
}

func (s *Store) Get(_ context.Context, deviceID string) (*entity.DeviceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return get(s.devices, deviceID)
}

func (s *Store) ListDeviceIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.devices)), nil
}

func (s *Store) Merge(_ context.Context, deviceID string, patch *entity.DevicePatch) (*entity.DeviceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return merge(s.devices, deviceID, patch), nil
}

// Execute runs fn against a working copy and publishes it only when fn succeeds.
// Transactions are serialised with every other write.
func (s *Store) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txRepository{devices: maps.Clone(s.devices)}
	if err := fn(tx); err != nil {
		return err
	}

	s.devices = tx.devices

	return nil
}

// txRepository operates on a working copy while the store's write lock is held.
type txRepository struct {
	devices map[string]*entity.DeviceRecord
}

func (t *txRepository) NewDeviceRepository() repository.DeviceRepository {
	return t
}

func (t *txRepository) Get(_ context.Context, deviceID string) (*entity.DeviceRecord, error) {
	return get(t.devices, deviceID)
}

func (t *txRepository) ListDeviceIDs(_ context.Context) ([]string, error) {
	return slices.Sorted(maps.Keys(t.devices)), nil
}

func (t *txRepository) Merge(_ context.Context, deviceID string, patch *entity.DevicePatch) (*entity.DeviceRecord, error) {
	return merge(t.devices, deviceID, patch), nil
}

func get(devices map[string]*entity.DeviceRecord, deviceID string) (*entity.DeviceRecord, error) {
	record, ok := devices[deviceID]
	if !ok {
		return nil, repository.ErrDeviceNotFound
	}

	return record.Clone(), nil
}

// merge never mutates a stored record in place, so working copies can share pointers.
func merge(devices map[string]*entity.DeviceRecord, deviceID string, patch *entity.DevicePatch) *entity.DeviceRecord {
	record := patch.Apply(devices[deviceID].Clone())
	devices[deviceID] = record

	return record.Clone()
}
