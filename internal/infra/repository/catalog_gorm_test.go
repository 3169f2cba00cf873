package repository

import (
	"context"
	"testing"

	"github.com/agendafacil/backend/internal/catalog"
	"github.com/agendafacil/backend/internal/testutil"
)

func TestCatalogGormStore(t *testing.T) {
	ctx := context.Background()
	store := NewCatalogGormStore(testutil.NewDB(t))

	if err := store.Seed(ctx); err != nil {
		t.Fatal(err)
	}
	if err := store.Seed(ctx); err != nil {
		t.Fatalf("seeding twice: %v", err)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != 1 || list[1].ID != 2 {
		t.Fatalf("unexpected seed: %+v", list)
	}

	item, err := store.Create(ctx, catalog.NewService{Name: "Tinte", DurationMinutes: 45, Price: 300})
	if err != nil {
		t.Fatal(err)
	}
	if item.ID != 3 {
		t.Fatalf("id = %d, want 3", item.ID)
	}

	list, _ = store.List(ctx)
	if len(list) != 3 || list[2].Name != "Tinte" || list[2].Price != 300 {
		t.Fatalf("created item not listed: %+v", list)
	}
}

func TestCatalogGormStoreEmpty(t *testing.T) {
	store := NewCatalogGormStore(testutil.NewDB(t))

	item, err := store.Create(context.Background(), catalog.NewService{Name: "A", DurationMinutes: 1, Price: 1})
	if err != nil {
		t.Fatal(err)
	}
	if item.ID != 1 {
		t.Fatalf("id = %d, want 1", item.ID)
	}
}

func TestCatalogGormStoreKeepsPrice(t *testing.T) {
	ctx := context.Background()
	store := NewCatalogGormStore(testutil.NewDB(t))

	for _, price := range []float64{12.345, 0.005, 123456789012.5} {
		item, err := store.Create(ctx, catalog.NewService{Name: "Tinte", DurationMinutes: 45, Price: price})
		if err != nil {
			t.Fatalf("price %v: %v", price, err)
		}
		if item.Price != price {
			t.Fatalf("returned price = %v, want %v", item.Price, price)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{12.345, 0.005, 123456789012.5}
	for i, item := range list {
		if item.Price != want[i] {
			t.Fatalf("stored price %d = %v, want %v", item.ID, item.Price, want[i])
		}
	}
}
