package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/agendafacil/backend/internal/audit"
	domain "github.com/agendafacil/backend/internal/domain/booking"
)

// DeleteAppointment removes the appointment and its service rows. Only the
// business's managers may delete; clients cancel instead.
type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(repo domain.Repository, audit *audit.Dispatcher) *DeleteAppointment {
	return &DeleteAppointment{repo: repo, audit: audit}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	ap, b, err := load(ctx, uc.repo, actor, id)
	if err != nil {
		return err
	}
	if err := actor.CanManage(b); err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: ap.BusinessID,
		ActorID:    &actor.ID,
		Action:     "appointment_deleted",
		Entity:     "appointment",
		EntityID:   &id,
	})

	return nil
}
