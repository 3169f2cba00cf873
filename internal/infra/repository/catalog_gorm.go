package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agendafacil/backend/internal/catalog"
	"github.com/agendafacil/backend/internal/models"
)

type CatalogGormStore struct {
	db *gorm.DB
}

func NewCatalogGormStore(db *gorm.DB) *CatalogGormStore {
	return &CatalogGormStore{db: db}
}

func (s *CatalogGormStore) List(ctx context.Context) ([]models.CatalogService, error) {
	var list []models.CatalogService
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Create takes a table lock on postgres so two concurrent posts never read
// the same max(id).
func (s *CatalogGormStore) Create(
	ctx context.Context,
	in catalog.NewService,
) (models.CatalogService, error) {

	var item models.CatalogService
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("LOCK TABLE catalog_services IN EXCLUSIVE MODE").Error; err != nil {
				return err
			}
		}

		var maxID int
		if err := tx.Model(&models.CatalogService{}).
			Select("COALESCE(MAX(id), 0)").
			Scan(&maxID).Error; err != nil {
			return err
		}

		item = models.CatalogService{
			ID:              maxID + 1,
			Name:            in.Name,
			DurationMinutes: in.DurationMinutes,
			Price:           in.Price,
		}
		return tx.Create(&item).Error
	})
	return item, err
}

// Seed inserts the default catalog into an empty table.
func (s *CatalogGormStore) Seed(ctx context.Context) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.CatalogService{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	seed := catalog.Seed()
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&seed).Error
}

var _ catalog.Store = (*CatalogGormStore)(nil)
