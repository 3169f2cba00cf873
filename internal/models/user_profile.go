package models

import "github.com/google/uuid"

type UserProfile struct {
	Model

	AccountID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"account_id"`
	Role      string    `gorm:"size:20;not null;check:role IN ('CLIENT','BUSINESS','ADMIN')" json:"role"`
}
