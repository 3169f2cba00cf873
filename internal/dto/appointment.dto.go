package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agendafacil/backend/internal/models"
)

type AppointmentItemDTO struct {
	ServiceID   uuid.UUID       `json:"service_id"`
	ServiceName string          `json:"service_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type AppointmentDTO struct {
	ID         uuid.UUID            `json:"id"`
	BusinessID uuid.UUID            `json:"business_id"`
	ClientID   uuid.UUID            `json:"client_id"`
	StartAt    time.Time            `json:"start_at"`
	EndAt      time.Time            `json:"end_at"`
	Status     string               `json:"status"`
	Notes      string               `json:"notes"`
	Services   []AppointmentItemDTO `json:"services"`
	Total      decimal.Decimal      `json:"total"`
	CreatedAt  time.Time            `json:"created_at"`
}

// NewAppointmentDTO prices the appointment from the unit prices captured at
// booking time.
func NewAppointmentDTO(ap *models.Appointment) AppointmentDTO {
	out := AppointmentDTO{
		ID:         ap.ID,
		BusinessID: ap.BusinessID,
		ClientID:   ap.ClientID,
		StartAt:    ap.StartAt,
		EndAt:      ap.EndAt,
		Status:     ap.Status,
		Notes:      ap.Notes,
		Services:   make([]AppointmentItemDTO, 0, len(ap.Items)),
		Total:      decimal.Zero,
		CreatedAt:  ap.CreatedAt,
	}

	for _, it := range ap.Items {
		sub := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		item := AppointmentItemDTO{
			ServiceID: it.ServiceID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  sub,
		}
		if it.Service != nil {
			item.ServiceName = it.Service.Name
		}
		out.Services = append(out.Services, item)
		out.Total = out.Total.Add(sub)
	}

	return out
}

func NewAppointmentDTOs(list []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(list))
	for i := range list {
		out = append(out, NewAppointmentDTO(&list[i]))
	}
	return out
}
