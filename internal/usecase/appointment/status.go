package appointment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/agendafacil/backend/internal/audit"
	domain "github.com/agendafacil/backend/internal/domain/booking"
	"github.com/agendafacil/backend/internal/models"
)

// ChangeStatus moves an appointment through its lifecycle. The booking
// client may only cancel; the business's managers may do any allowed
// transition.
type ChangeStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewChangeStatus(repo domain.Repository, audit *audit.Dispatcher) *ChangeStatus {
	return &ChangeStatus{repo: repo, audit: audit}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	actor domain.Actor,
	id uuid.UUID,
	status string,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(strings.ToUpper(status))
	if err != nil {
		return nil, err
	}

	ap, b, err := load(ctx, uc.repo, actor, id)
	if err != nil {
		return nil, err
	}
	if to != domain.StatusCancelled {
		if err := actor.CanManage(b); err != nil {
			return nil, err
		}
	}

	from := ap.Status
	if err := domain.ChangeStatus(ap, to); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: ap.BusinessID,
		ActorID:    &actor.ID,
		Action:     "appointment_" + strings.ToLower(string(to)),
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata:   map[string]string{"from": from, "to": string(to)},
	})

	return ap, nil
}
