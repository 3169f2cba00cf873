package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	Model

	BusinessID uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	Business   *Business `gorm:"foreignKey:BusinessID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   *Account  `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	StartAt time.Time `gorm:"not null;index" json:"start_at"`
	EndAt   time.Time `gorm:"not null;check:end_at > start_at" json:"end_at"`

	Status string `gorm:"size:20;not null;check:status IN ('PENDING','CONFIRMED','CANCELLED','COMPLETED')" json:"status"`
	Notes  string `gorm:"size:250" json:"notes"`

	Items []AppointmentService `gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services"`
}
