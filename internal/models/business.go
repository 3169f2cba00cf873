package models

import "github.com/google/uuid"

type Business struct {
	Model

	OwnerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_business_owner_name,priority:1" json:"owner_id"`
	Owner   *Account  `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Name     string `gorm:"size:120;not null;uniqueIndex:uq_business_owner_name,priority:2" json:"name"`
	Category string `gorm:"size:60;not null" json:"category"`
	Phone    string `gorm:"size:25" json:"phone"`
	Address  string `gorm:"size:200" json:"address"`
	IsActive bool   `gorm:"not null" json:"is_active"`
}
