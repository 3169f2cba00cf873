package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agendafacil/backend/internal/models"
)

func TestNewAppointmentDTOTotals(t *testing.T) {
	ap := &models.Appointment{
		Status: "PENDING",
		Items: []models.AppointmentService{
			{
				ServiceID: uuid.New(),
				Quantity:  2,
				UnitPrice: decimal.RequireFromString("150.00"),
				Service:   &models.Service{Name: "Corte"},
			},
			{
				ServiceID: uuid.New(),
				Quantity:  1,
				UnitPrice: decimal.RequireFromString("800.50"),
			},
		},
	}

	out := NewAppointmentDTO(ap)

	if len(out.Services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(out.Services))
	}
	if out.Services[0].ServiceName != "Corte" {
		t.Fatalf("service name = %q", out.Services[0].ServiceName)
	}
	if !out.Services[0].Subtotal.Equal(decimal.RequireFromString("300")) {
		t.Fatalf("subtotal = %s", out.Services[0].Subtotal)
	}
	if !out.Total.Equal(decimal.RequireFromString("1100.50")) {
		t.Fatalf("total = %s", out.Total)
	}
}

func TestNewAppointmentDTOEmpty(t *testing.T) {
	out := NewAppointmentDTO(&models.Appointment{})
	if out.Services == nil || len(out.Services) != 0 {
		t.Fatalf("expected empty, non-nil services slice")
	}
	if !out.Total.IsZero() {
		t.Fatalf("total = %s", out.Total)
	}
}
