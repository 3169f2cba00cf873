package catalog

import (
	"context"
	"sync"

	"github.com/agendafacil/backend/internal/models"
)

// MemoryStore is a process-local Store, seeded like the database one.
type MemoryStore struct {
	mu    sync.Mutex
	items []models.CatalogService
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: Seed()}
}

func (s *MemoryStore) List(ctx context.Context) ([]models.CatalogService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CatalogService, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemoryStore) Create(ctx context.Context, in NewService) (models.CatalogService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := models.CatalogService{
		ID:              NextID(s.items),
		Name:            in.Name,
		DurationMinutes: in.DurationMinutes,
		Price:           in.Price,
	}
	s.items = append(s.items, item)
	return item, nil
}

var _ Store = (*MemoryStore)(nil)
