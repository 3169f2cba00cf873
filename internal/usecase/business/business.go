package business

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/agendafacil/backend/internal/audit"
	domain "github.com/agendafacil/backend/internal/domain/booking"
	"github.com/agendafacil/backend/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	Name     string
	Category string
	Phone    string
	Address  string
}

// UpdateInput carries only the fields being changed.
type UpdateInput struct {
	Name     *string
	Category *string
	Phone    *string
	Address  *string
	IsActive *bool
}

// ======================================================
// CREATE
// ======================================================

type CreateBusiness struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBusiness(repo domain.Repository, audit *audit.Dispatcher) *CreateBusiness {
	return &CreateBusiness{repo: repo, audit: audit}
}

func (uc *CreateBusiness) Execute(
	ctx context.Context,
	actor domain.Actor,
	in CreateInput,
) (*models.Business, error) {

	if !actor.Role.CanOwnBusiness() {
		return nil, domain.ErrRoleNotAllowed
	}

	b := &models.Business{
		OwnerID:  actor.ID,
		Name:     strings.TrimSpace(in.Name),
		Category: strings.TrimSpace(in.Category),
		Phone:    strings.TrimSpace(in.Phone),
		Address:  strings.TrimSpace(in.Address),
		IsActive: true,
	}

	if err := uc.repo.CreateBusiness(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: b.ID,
		ActorID:    &actor.ID,
		Action:     "business_created",
		Entity:     "business",
		EntityID:   &b.ID,
	})

	return b, nil
}

// ======================================================
// READ
// ======================================================

type ListBusinesses struct {
	repo domain.Repository
}

func NewListBusinesses(repo domain.Repository) *ListBusinesses {
	return &ListBusinesses{repo: repo}
}

func (uc *ListBusinesses) Execute(ctx context.Context, actor domain.Actor) ([]models.Business, error) {
	return uc.repo.ListBusinessesByOwner(ctx, actor.ID)
}

// GetBusiness is public: any authenticated account can look a business up
// before booking.
type GetBusiness struct {
	repo domain.Repository
}

func NewGetBusiness(repo domain.Repository) *GetBusiness {
	return &GetBusiness{repo: repo}
}

func (uc *GetBusiness) Execute(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	return uc.repo.GetBusiness(ctx, id)
}

// ======================================================
// UPDATE
// ======================================================

type UpdateBusiness struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateBusiness(repo domain.Repository, audit *audit.Dispatcher) *UpdateBusiness {
	return &UpdateBusiness{repo: repo, audit: audit}
}

func (uc *UpdateBusiness) Execute(
	ctx context.Context,
	actor domain.Actor,
	id uuid.UUID,
	in UpdateInput,
) (*models.Business, error) {

	b, err := uc.repo.GetBusiness(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := actor.CanManage(b); err != nil {
		return nil, err
	}

	if in.Name != nil {
		b.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		b.Category = strings.TrimSpace(*in.Category)
	}
	if in.Phone != nil {
		b.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		b.Address = strings.TrimSpace(*in.Address)
	}
	if in.IsActive != nil {
		b.IsActive = *in.IsActive
	}

	if err := uc.repo.UpdateBusiness(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: b.ID,
		ActorID:    &actor.ID,
		Action:     "business_updated",
		Entity:     "business",
		EntityID:   &b.ID,
	})

	return b, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteBusiness struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteBusiness(repo domain.Repository, audit *audit.Dispatcher) *DeleteBusiness {
	return &DeleteBusiness{repo: repo, audit: audit}
}

func (uc *DeleteBusiness) Execute(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	b, err := uc.repo.GetBusiness(ctx, id)
	if err != nil {
		return err
	}
	if err := actor.CanManage(b); err != nil {
		return err
	}

	if err := uc.repo.DeleteBusiness(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: id,
		ActorID:    &actor.ID,
		Action:     "business_deleted",
		Entity:     "business",
		EntityID:   &id,
		Metadata:   map[string]string{"name": b.Name},
	})

	return nil
}
