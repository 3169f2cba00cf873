package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AvailabilitySlot is a recurring weekly opening window. DayOfWeek follows
// time.Weekday numbering (0 = Sunday).
type AvailabilitySlot struct {
	Model

	BusinessID uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	Business   *Business `gorm:"foreignKey:BusinessID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	DayOfWeek int            `gorm:"not null;check:day_of_week >= 0 AND day_of_week <= 6" json:"day_of_week"`
	StartTime datatypes.Time `gorm:"not null" json:"start_time"`
	EndTime   datatypes.Time `gorm:"not null;check:end_time > start_time" json:"end_time"`
	IsActive  bool           `gorm:"not null" json:"is_active"`
}
