package models

import "time"

// CatalogService backs the public /services/ listing. It keeps integer ids
// because that listing hands them out as max+1. Price is stored as a double
// so the value read back is the value posted.
type CatalogService struct {
	ID              int       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name            string    `gorm:"size:120;not null" json:"name"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Price           float64   `gorm:"type:double precision;not null" json:"price"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}
