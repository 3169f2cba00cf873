package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agendafacil/backend/internal/audit"
	domain "github.com/agendafacil/backend/internal/domain/booking"
	"github.com/agendafacil/backend/internal/httperr"
	"github.com/agendafacil/backend/internal/models"
)

var (
	ErrBusinessInactive = httperr.Validation("business_inactive", "Negócio não está aceitando agendamentos.")
	ErrForeignService   = httperr.Validation("service_not_in_business", "Serviço não pertence a este negócio.")
	ErrServiceInactive  = httperr.Validation("service_inactive", "Serviço inativo.")
)

// ======================================================
// INPUT
// ======================================================

type ItemInput struct {
	ServiceID uuid.UUID
	Quantity  int
}

type CreateInput struct {
	BusinessID uuid.UUID
	StartAt    time.Time
	// EndAt may be zero: the end is then derived from the booked
	// services' durations.
	EndAt    time.Time
	Notes    string
	Services []ItemInput
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	in CreateInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Business
	// --------------------------------------------------
	b, err := uc.repo.GetBusiness(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}
	if !b.IsActive {
		return nil, ErrBusinessInactive
	}

	if len(in.Services) == 0 {
		return nil, domain.ErrNoServices
	}

	// --------------------------------------------------
	// Services, with the price captured now
	// --------------------------------------------------
	items := make([]models.AppointmentService, 0, len(in.Services))
	var total time.Duration
	for _, it := range in.Services {
		s, err := bookableService(ctx, uc.repo, b.ID, it.ServiceID)
		if err != nil {
			return nil, err
		}

		qty := it.Quantity
		if qty == 0 {
			qty = 1
		}
		items = append(items, domain.SnapshotItem(s, qty))
		total += time.Duration(s.DurationMin*qty) * time.Minute
	}

	end := in.EndAt
	if end.IsZero() {
		end = in.StartAt.Add(total)
	}

	// --------------------------------------------------
	// Persist
	// --------------------------------------------------
	ap := &models.Appointment{
		BusinessID: b.ID,
		ClientID:   actor.ID,
		StartAt:    in.StartAt.UTC(),
		EndAt:      end.UTC(),
		Status:     string(domain.InitialStatus()),
		Notes:      in.Notes,
		Items:      items,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: b.ID,
		ActorID:    &actor.ID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"start_at": ap.StartAt,
			"services": len(items),
		},
	})

	return uc.repo.GetAppointment(ctx, ap.ID)
}
