package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/agendafacil/backend/internal/domain/booking"
	"github.com/agendafacil/backend/internal/models"
	"github.com/agendafacil/backend/internal/timezone"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	id uuid.UUID,
) (*models.Appointment, error) {

	ap, _, err := load(ctx, uc.repo, actor, id)
	return ap, err
}

// ------------------------------------------------------

// ListAppointmentsByDate returns a business's appointments starting on the
// calendar day of date in the tz zone (UTC when empty or unknown).
type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(repo domain.Repository) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	actor domain.Actor,
	businessID uuid.UUID,
	date time.Time,
	tz string,
) ([]models.Appointment, error) {

	b, err := uc.repo.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if err := actor.CanManage(b); err != nil {
		return nil, err
	}

	start, end := timezone.DayBounds(date, timezone.Location(tz))

	return uc.repo.ListAppointmentsForBusiness(ctx, b.ID, start, end)
}

// ------------------------------------------------------

type ListMyAppointments struct {
	repo domain.Repository
}

func NewListMyAppointments(repo domain.Repository) *ListMyAppointments {
	return &ListMyAppointments{repo: repo}
}

func (uc *ListMyAppointments) Execute(ctx context.Context, actor domain.Actor) ([]models.Appointment, error) {
	return uc.repo.ListAppointmentsForClient(ctx, actor.ID)
}
