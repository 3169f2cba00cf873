package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/agendafacil/backend/internal/models"
)

// ErrRequiredFields is answered verbatim by POST /services/.
var ErrRequiredFields = errors.New("Campos requeridos: name, duration_minutes, price")

// Store keeps the public service catalog. Create assigns the next id
// (highest id + 1, or 1 when empty) atomically with the append.
type Store interface {
	List(ctx context.Context) ([]models.CatalogService, error)
	Create(ctx context.Context, in NewService) (models.CatalogService, error)
}

type NewService struct {
	Name            string
	DurationMinutes int
	Price           float64
}

// Seed is the catalog every fresh store starts with.
func Seed() []models.CatalogService {
	return []models.CatalogService{
		{ID: 1, Name: "Corte", DurationMinutes: 30, Price: 150.00},
		{ID: 2, Name: "Afinación", DurationMinutes: 60, Price: 800.00},
	}
}

// NextID returns max(id)+1, or 1 for an empty catalog.
func NextID(items []models.CatalogService) int {
	next := 1
	for _, it := range items {
		if it.ID >= next {
			next = it.ID + 1
		}
	}
	return next
}

// ParseNewService reads a loosely typed JSON body. Name must be present and
// non-empty; duration_minutes and price must be present and numeric, either
// as JSON numbers or numeric strings. Durations are truncated to integers.
func ParseNewService(raw map[string]any) (NewService, error) {
	name, ok := coerceName(raw["name"])
	if !ok {
		return NewService{}, ErrRequiredFields
	}

	durRaw, okDur := raw["duration_minutes"]
	priceRaw, okPrice := raw["price"]
	if !okDur || durRaw == nil || !okPrice || priceRaw == nil {
		return NewService{}, ErrRequiredFields
	}

	dur, err := coerceInt(durRaw)
	if err != nil {
		return NewService{}, fmt.Errorf("duration_minutes: %w", err)
	}
	price, err := coerceFloat(priceRaw)
	if err != nil {
		return NewService{}, fmt.Errorf("price: %w", err)
	}

	return NewService{Name: name, DurationMinutes: dur, Price: price}, nil
}

func coerceName(v any) (string, bool) {
	switch n := v.(type) {
	case string:
		return n, n != ""
	case json.Number:
		return n.String(), n.String() != "0"
	case float64:
		if n == 0 {
			return "", false
		}
		return strconv.FormatFloat(n, 'f', -1, 64), true
	case bool:
		if !n {
			return "", false
		}
		return "True", true
	default:
		return "", false
	}
}

var errNotNumeric = errors.New("not a number")

func coerceInt(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		return int(math.Trunc(n)), nil
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, errNotNumeric
		}
		return int(math.Trunc(f)), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, errNotNumeric
		}
		return i, nil
	default:
		return 0, errNotNumeric
	}
}

func coerceFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, errNotNumeric
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, errNotNumeric
		}
		f = parsed
	default:
		return 0, errNotNumeric
	}
	// ParseFloat accepts "NaN" and "Inf", which JSON cannot encode back.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotNumeric
	}
	return f, nil
}
