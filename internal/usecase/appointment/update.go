package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agendafacil/backend/internal/audit"
	domain "github.com/agendafacil/backend/internal/domain/booking"
	"github.com/agendafacil/backend/internal/models"
)

type UpdateInput struct {
	StartAt *time.Time
	EndAt   *time.Time
	Notes   *string
}

// UpdateAppointment reschedules an open appointment or edits its notes.
type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(repo domain.Repository, audit *audit.Dispatcher) *UpdateAppointment {
	return &UpdateAppointment{repo: repo, audit: audit}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	id uuid.UUID,
	in UpdateInput,
) (*models.Appointment, error) {

	ap, _, err := load(ctx, uc.repo, actor, id)
	if err != nil {
		return nil, err
	}

	if in.StartAt != nil || in.EndAt != nil {
		start, end := ap.StartAt, ap.EndAt
		if in.StartAt != nil {
			start = in.StartAt.UTC()
		}
		if in.EndAt != nil {
			end = in.EndAt.UTC()
		}
		if err := domain.Reschedule(ap, start, end); err != nil {
			return nil, err
		}
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: ap.BusinessID,
		ActorID:    &actor.ID,
		Action:     "appointment_updated",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"start_at": ap.StartAt,
			"end_at":   ap.EndAt,
		},
	})

	return ap, nil
}
