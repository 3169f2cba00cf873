package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model carries the identity and write timestamps shared by every table of
// the booking schema. IDs are random v4 UUIDs assigned before insert.
type Model struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
