package booking

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/agendafacil/backend/internal/httperr"
	"github.com/agendafacil/backend/internal/models"
)

const (
	MaxBusinessNameLen = 120
	MaxCategoryLen     = 60
	MaxPhoneLen        = 25
	MaxAddressLen      = 200
	MaxServiceNameLen  = 120
	MaxNotesLen        = 250
)

var (
	ErrNameRequired      = httperr.Validation("name_required", "Nome é obrigatório.")
	ErrCategoryRequired  = httperr.Validation("category_required", "Categoria é obrigatória.")
	ErrInvalidDuration   = httperr.Validation("invalid_duration", "duration_min deve ser maior que zero.")
	ErrNegativePrice     = httperr.Validation("negative_price", "price deve ser maior ou igual a zero.")
	ErrPricePrecision    = httperr.Validation("invalid_price_precision", "price aceita no máximo 2 casas decimais.")
	ErrInvalidDayOfWeek  = httperr.Validation("invalid_day_of_week", "day_of_week deve estar entre 0 e 6.")
	ErrSlotTimeRange     = httperr.Validation("invalid_slot_range", "end_time deve ser maior que start_time.")
	ErrTimeRange         = httperr.Validation("invalid_time_range", "end_at deve ser maior que start_at.")
	ErrNotesTooLong      = httperr.Validation("notes_too_long", "notes deve ter no máximo 250 caracteres.")
	ErrInvalidQuantity   = httperr.Validation("invalid_quantity", "quantity deve ser maior que zero.")
	ErrNegativeUnitPrice = httperr.Validation("negative_unit_price", "unit_price deve ser maior ou igual a zero.")
	ErrNoServices        = httperr.Validation("services_required", "O agendamento precisa de ao menos um serviço.")
	ErrDuplicateService  = httperr.Conflict("duplicate_appointment_service", "Serviço já incluído no agendamento; use quantity.")
	ErrAppointmentClosed = httperr.Validation("appointment_closed", "Agendamento cancelado ou concluído não pode ser alterado.")
)

func tooLong(field string) error {
	return httperr.Validation(field+"_too_long", field+" excede o tamanho máximo.")
}

func ValidateBusiness(b *models.Business) error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(b.Name) > MaxBusinessNameLen {
		return tooLong("name")
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrCategoryRequired
	}
	if utf8.RuneCountInString(b.Category) > MaxCategoryLen {
		return tooLong("category")
	}
	if utf8.RuneCountInString(b.Phone) > MaxPhoneLen {
		return tooLong("phone")
	}
	if utf8.RuneCountInString(b.Address) > MaxAddressLen {
		return tooLong("address")
	}
	return nil
}

func ValidateService(s *models.Service) error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(s.Name) > MaxServiceNameLen {
		return tooLong("name")
	}
	if s.DurationMin <= 0 {
		return ErrInvalidDuration
	}
	if s.Price.IsNegative() {
		return ErrNegativePrice
	}
	if !s.Price.Equal(s.Price.Round(2)) {
		return ErrPricePrecision
	}
	return nil
}

func ValidateAvailabilitySlot(s *models.AvailabilitySlot) error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return ErrInvalidDayOfWeek
	}
	if s.EndTime <= s.StartTime {
		return ErrSlotTimeRange
	}
	return nil
}

func ValidateTimeRange(start, end time.Time) error {
	if !end.After(start) {
		return ErrTimeRange
	}
	return nil
}

func ValidateAppointment(ap *models.Appointment) error {
	if err := ValidateTimeRange(ap.StartAt, ap.EndAt); err != nil {
		return err
	}
	if _, err := ParseStatus(ap.Status); err != nil {
		return err
	}
	if utf8.RuneCountInString(ap.Notes) > MaxNotesLen {
		return ErrNotesTooLong
	}
	return nil
}

func ValidateAppointmentService(item *models.AppointmentService) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if item.UnitPrice.IsNegative() {
		return ErrNegativeUnitPrice
	}
	return nil
}

// ValidateAppointmentItems checks every row and the one-row-per-service rule.
func ValidateAppointmentItems(items []models.AppointmentService) error {
	seen := make(map[uuid.UUID]struct{}, len(items))
	for i := range items {
		if err := ValidateAppointmentService(&items[i]); err != nil {
			return err
		}
		if _, dup := seen[items[i].ServiceID]; dup {
			return ErrDuplicateService
		}
		seen[items[i].ServiceID] = struct{}{}
	}
	return nil
}
