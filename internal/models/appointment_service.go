package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentService attaches a service to an appointment. UnitPrice is the
// service price at booking time and is never refreshed afterwards.
type AppointmentService struct {
	Model

	AppointmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_appointment_service_once,priority:1" json:"appointment_id"`

	ServiceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_appointment_service_once,priority:2" json:"service_id"`
	Service   *Service  `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	Quantity  int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null;check:unit_price >= 0" json:"unit_price"`
}
