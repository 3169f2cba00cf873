package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/agendafacil/backend/internal/domain/booking"
	"github.com/agendafacil/backend/internal/models"
)

// load fetches an appointment with its business and checks that actor may
// see it.
func load(
	ctx context.Context,
	repo domain.Repository,
	actor domain.Actor,
	id uuid.UUID,
) (*models.Appointment, *models.Business, error) {

	ap, err := repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	b, err := repo.GetBusiness(ctx, ap.BusinessID)
	if err != nil {
		return nil, nil, err
	}
	if err := actor.CanSee(ap, b); err != nil {
		return nil, nil, err
	}
	return ap, b, nil
}

// bookableService returns the service when it belongs to businessID and is
// active.
func bookableService(
	ctx context.Context,
	repo domain.Repository,
	businessID uuid.UUID,
	serviceID uuid.UUID,
) (*models.Service, error) {

	s, err := repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if s.BusinessID != businessID {
		return nil, ErrForeignService
	}
	if !s.IsActive {
		return nil, ErrServiceInactive
	}
	return s, nil
}
