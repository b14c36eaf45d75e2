// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"nudge/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for device persistence.
var (
	// ErrDeviceNotFound is returned when no record exists for a device id.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrCorruptRecord is returned when a stored record cannot be decoded.
	ErrCorruptRecord = errors.New("device record is corrupt")
)

// DeviceRepository is the durable keyed store of device records.
type DeviceRepository interface {
	// Get returns the record of a device, or ErrDeviceNotFound.
	Get(ctx context.Context, deviceID string) (*entity.DeviceRecord, error)

	// ListDeviceIDs returns the ids of every stored device in a stable order.
	ListDeviceIDs(ctx context.Context) ([]string, error)

	// Merge applies patch to the device's record, creating it when absent, and
	// returns the stored result. Array and map fields are replaced wholesale.
	Merge(ctx context.Context, deviceID string, patch *entity.DevicePatch) (*entity.DeviceRecord, error)
}
