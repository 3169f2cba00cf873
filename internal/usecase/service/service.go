package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agendafacil/backend/internal/audit"
	domain "github.com/agendafacil/backend/internal/domain/booking"
	"github.com/agendafacil/backend/internal/models"
)

type CreateInput struct {
	Name        string
	Description string
	DurationMin int
	Price       decimal.Decimal
}

type UpdateInput struct {
	Name        *string
	Description *string
	DurationMin *int
	Price       *decimal.Decimal
	IsActive    *bool
}

// ------------------------------------------------------

type CreateService struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateService(repo domain.Repository, audit *audit.Dispatcher) *CreateService {
	return &CreateService{repo: repo, audit: audit}
}

func (uc *CreateService) Execute(
	ctx context.Context,
	actor domain.Actor,
	businessID uuid.UUID,
	in CreateInput,
) (*models.Service, error) {

	b, err := uc.repo.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if err := actor.CanManage(b); err != nil {
		return nil, err
	}

	s := &models.Service{
		BusinessID:  b.ID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		DurationMin: in.DurationMin,
		Price:       in.Price,
		IsActive:    true,
	}

	if err := uc.repo.CreateService(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: b.ID,
		ActorID:    &actor.ID,
		Action:     "service_created",
		Entity:     "service",
		EntityID:   &s.ID,
	})

	return s, nil
}

// ------------------------------------------------------

// ListServices hides inactive services from everyone but the business's
// managers.
type ListServices struct {
	repo domain.Repository
}

func NewListServices(repo domain.Repository) *ListServices {
	return &ListServices{repo: repo}
}

func (uc *ListServices) Execute(
	ctx context.Context,
	actor domain.Actor,
	businessID uuid.UUID,
) ([]models.Service, error) {

	b, err := uc.repo.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	onlyActive := actor.CanManage(b) != nil
	return uc.repo.ListServices(ctx, b.ID, onlyActive)
}

// ------------------------------------------------------

type UpdateService struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateService(repo domain.Repository, audit *audit.Dispatcher) *UpdateService {
	return &UpdateService{repo: repo, audit: audit}
}

// Execute applies in to the service. Price changes never touch the unit
// price already captured by existing appointments.
func (uc *UpdateService) Execute(
	ctx context.Context,
	actor domain.Actor,
	id uuid.UUID,
	in UpdateInput,
) (*models.Service, error) {

	s, err := uc.repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := uc.repo.GetBusiness(ctx, s.BusinessID)
	if err != nil {
		return nil, err
	}
	if err := actor.CanManage(b); err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if in.Name != nil {
		s.Name = strings.TrimSpace(*in.Name)
		changes["name"] = s.Name
	}
	if in.Description != nil {
		s.Description = strings.TrimSpace(*in.Description)
	}
	if in.DurationMin != nil {
		s.DurationMin = *in.DurationMin
		changes["duration_min"] = s.DurationMin
	}
	if in.Price != nil {
		changes["old_price"] = s.Price.StringFixed(2)
		s.Price = *in.Price
		changes["price"] = s.Price.StringFixed(2)
	}
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
		changes["is_active"] = s.IsActive
	}

	if err := uc.repo.UpdateService(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: s.BusinessID,
		ActorID:    &actor.ID,
		Action:     "service_updated",
		Entity:     "service",
		EntityID:   &s.ID,
		Metadata:   changes,
	})

	return s, nil
}

// ------------------------------------------------------

type DeleteService struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteService(repo domain.Repository, audit *audit.Dispatcher) *DeleteService {
	return &DeleteService{repo: repo, audit: audit}
}

func (uc *DeleteService) Execute(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	s, err := uc.repo.GetService(ctx, id)
	if err != nil {
		return err
	}
	b, err := uc.repo.GetBusiness(ctx, s.BusinessID)
	if err != nil {
		return err
	}
	if err := actor.CanManage(b); err != nil {
		return err
	}

	if err := uc.repo.DeleteService(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: s.BusinessID,
		ActorID:    &actor.ID,
		Action:     "service_deleted",
		Entity:     "service",
		EntityID:   &id,
		Metadata:   map[string]string{"name": s.Name},
	})

	return nil
}
