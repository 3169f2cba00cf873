package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	Model

	BusinessID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_service_business_name,priority:1" json:"business_id"`
	Business   *Business `gorm:"foreignKey:BusinessID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name        string          `gorm:"size:120;not null;uniqueIndex:uq_service_business_name,priority:2" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	DurationMin int             `gorm:"not null;check:duration_min > 0" json:"duration_min"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null;check:price >= 0" json:"price"`
	IsActive    bool            `gorm:"not null" json:"is_active"`
}
