package postgres

import (
	"context"
	"encoding/json"
	"slices"

	"nudge/internal/domain/entity"
	domainerrors "nudge/internal/domain/errors"
	"nudge/internal/domain/repository"
	"nudge/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var upsertColumns = []string{
	"subscription",
	"daily_status",
	"broadcasts",
	"follow_ups",
	"scheduled_posts",
	"last_daily_status_reminder_date",
	"last_broadcast_reminder_date",
	"follow_up_reminder_map",
	"updated_at",
}

// deviceRepository implements the repository.DeviceRepository interface.
type deviceRepository struct {
	db *gorm.DB
	// inTx marks a repository bound to an open transaction; reads then take row locks.
	inTx bool
}

// NewDeviceRepository is the constructor for deviceRepository.
func NewDeviceRepository(db *gorm.DB) repository.DeviceRepository {
	return &deviceRepository{
		db: db,
	}
}

func newTxDeviceRepository(tx *gorm.DB) repository.DeviceRepository {
	return &deviceRepository{
		db:   tx,
		inTx: true,
	}
}

// Get retrieves the record of a device by its client-generated id.
func (repo *deviceRepository) Get(ctx context.Context, deviceID string) (*entity.DeviceRecord, error) {
	deviceM, err := repo.find(ctx, repo.db, deviceID, repo.inTx)
	if err != nil {
		return nil, err
	}

	return toDeviceDomain(deviceM)
}

// ListDeviceIDs returns every stored device id in ascending order.
func (repo *deviceRepository) ListDeviceIDs(ctx context.Context) ([]string, error) {
	var ids []string

	if err := repo.db.WithContext(ctx).
		Model(&model.DeviceModel{}).
		Order("device_id ASC").
		Pluck("device_id", &ids).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list device ids")
	}

	return ids, nil
}

// Merge applies the patch under a row lock and upserts the full row.
func (repo *deviceRepository) Merge(ctx context.Context, deviceID string, patch *entity.DevicePatch) (*entity.DeviceRecord, error) {
	if repo.inTx {
		return repo.merge(ctx, repo.db, deviceID, patch)
	}

	var merged *entity.DeviceRecord
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := repo.merge(ctx, tx, deviceID, patch)
		merged = record

		return err
	})
	if err != nil {
		return nil, err
	}

	return merged, nil
}

func (repo *deviceRepository) merge(ctx context.Context, db *gorm.DB, deviceID string, patch *entity.DevicePatch) (*entity.DeviceRecord, error) {
	record := &entity.DeviceRecord{}

	current, err := repo.find(ctx, db, deviceID, true)
	switch {
	case err == nil:
		// A corrupt row is replaced by the patch applied to an empty record.
		if decoded, decodeErr := toDeviceDomain(current); decodeErr == nil {
			record = decoded
		}
	case errors.Is(err, repository.ErrDeviceNotFound):
	default:
		return nil, err
	}

	record = patch.Apply(record)

	deviceM, err := fromDeviceDomain(deviceID, record)
	if err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "device_id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(deviceM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("missing required device information")
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to upsert device")
	}

	return record.Clone(), nil
}

func (repo *deviceRepository) find(ctx context.Context, db *gorm.DB, deviceID string, forUpdate bool) (*model.DeviceModel, error) {
	var deviceM model.DeviceModel

	query := db.WithContext(ctx).Where("device_id = ?", deviceID)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	if err := query.Take(&deviceM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDeviceNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find device by id")
	}

	return &deviceM, nil
}

// --- Mapper Functions ---

// toDeviceDomain converts a GORM DeviceModel to a domain DeviceRecord.
func toDeviceDomain(data *model.DeviceModel) (*entity.DeviceRecord, error) {
	if data == nil {
		return nil, nil
	}

	record := &entity.DeviceRecord{
		LastDailyStatusReminderDate: entity.CalendarDate(data.LastDailyStatusReminderDate),
		LastBroadcastReminderDate:   entity.CalendarDate(data.LastBroadcastReminderDate),
	}
	if len(data.ScheduledPosts) > 0 {
		record.ScheduledPosts = json.RawMessage(slices.Clone(data.ScheduledPosts))
	}

	columns := []struct {
		raw    datatypes.JSON
		target any
	}{
		{data.Subscription, &record.DeliveryTarget},
		{data.DailyStatus, &record.DailyStatus},
		{data.Broadcasts, &record.Broadcasts},
		{data.FollowUps, &record.FollowUps},
		{data.FollowUpReminderMap, &record.FollowUpReminderSentDates},
	}
	for _, column := range columns {
		if len(column.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(column.raw, column.target); err != nil {
			return nil, errors.Wrapf(repository.ErrCorruptRecord, "device %s: %v", data.DeviceID, err)
		}
	}

	return record, nil
}

// fromDeviceDomain converts a domain DeviceRecord to a GORM DeviceModel.
func fromDeviceDomain(deviceID string, data *entity.DeviceRecord) (*model.DeviceModel, error) {
	if data == nil {
		data = &entity.DeviceRecord{}
	}

	deviceM := &model.DeviceModel{
		DeviceID:                    deviceID,
		LastDailyStatusReminderDate: data.LastDailyStatusReminderDate.String(),
		LastBroadcastReminderDate:   data.LastBroadcastReminderDate.String(),
	}

	var err error
	if data.DeliveryTarget != nil {
		if deviceM.Subscription, err = marshalColumn(data.DeliveryTarget); err != nil {
			return nil, err
		}
	}
	if deviceM.DailyStatus, err = marshalColumn(data.DailyStatus); err != nil {
		return nil, err
	}
	if deviceM.Broadcasts, err = marshalColumn(data.Broadcasts); err != nil {
		return nil, err
	}
	if deviceM.FollowUps, err = marshalColumn(data.FollowUps); err != nil {
		return nil, err
	}
	if data.ScheduledPosts != nil {
		deviceM.ScheduledPosts = datatypes.JSON(slices.Clone(data.ScheduledPosts))
	}
	if data.FollowUpReminderSentDates != nil {
		if deviceM.FollowUpReminderMap, err = marshalColumn(data.FollowUpReminderSentDates); err != nil {
			return nil, err
		}
	}

	return deviceM, nil
}

func marshalColumn(value any) (datatypes.JSON, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode device column")
	}

	return datatypes.JSON(raw), nil
}
