package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/agendafacil/backend/internal/audit"
	domain "github.com/agendafacil/backend/internal/domain/booking"
	"github.com/agendafacil/backend/internal/models"
)

type AddService struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddService(repo domain.Repository, audit *audit.Dispatcher) *AddService {
	return &AddService{repo: repo, audit: audit}
}

func (uc *AddService) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uuid.UUID,
	in ItemInput,
) (*models.Appointment, error) {

	ap, _, err := load(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}
	if domain.Status(ap.Status).IsTerminal() {
		return nil, domain.ErrAppointmentClosed
	}

	s, err := bookableService(ctx, uc.repo, ap.BusinessID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	item := domain.SnapshotItem(s, qty)
	item.AppointmentID = ap.ID

	if err := uc.repo.AddAppointmentService(ctx, &item); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: ap.BusinessID,
		ActorID:    &actor.ID,
		Action:     "appointment_service_added",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"service_id": s.ID,
			"quantity":   qty,
			"unit_price": item.UnitPrice.StringFixed(2),
		},
	})

	return uc.repo.GetAppointment(ctx, ap.ID)
}

// ------------------------------------------------------

type RemoveService struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRemoveService(repo domain.Repository, audit *audit.Dispatcher) *RemoveService {
	return &RemoveService{repo: repo, audit: audit}
}

func (uc *RemoveService) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uuid.UUID,
	serviceID uuid.UUID,
) (*models.Appointment, error) {

	ap, _, err := load(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}
	if domain.Status(ap.Status).IsTerminal() {
		return nil, domain.ErrAppointmentClosed
	}

	if err := uc.repo.RemoveAppointmentService(ctx, ap.ID, serviceID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: ap.BusinessID,
		ActorID:    &actor.ID,
		Action:     "appointment_service_removed",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata:   map[string]any{"service_id": serviceID},
	})

	return uc.repo.GetAppointment(ctx, ap.ID)
}
