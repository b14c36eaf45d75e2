package model

import (
	"time"

	"gorm.io/datatypes"
)

// DeviceModel is the GORM-specific struct for the 'devices' table.
// Mirrored arrays and bookkeeping maps are stored as jsonb and replaced wholesale on write.
type DeviceModel struct {
	DeviceID     string         `gorm:"type:varchar(255);primary_key"`
	Subscription datatypes.JSON `gorm:"type:jsonb"`
	DailyStatus  datatypes.JSON `gorm:"type:jsonb"`
	Broadcasts   datatypes.JSON `gorm:"type:jsonb"`
	FollowUps    datatypes.JSON `gorm:"type:jsonb"`
	// ScheduledPosts is stored as the client sent it.
	ScheduledPosts datatypes.JSON `gorm:"type:jsonb"`
	// Dates are stored as YYYY-MM-DD text; an empty string means never.
	LastDailyStatusReminderDate string         `gorm:"type:varchar(10);not null;default:''"`
	LastBroadcastReminderDate   string         `gorm:"type:varchar(10);not null;default:''"`
	FollowUpReminderMap         datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

// TableName explicitly sets the table name for GORM.
func (DeviceModel) TableName() string {
	return "devices"
}
