package account

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domain "github.com/agendafacil/backend/internal/domain/booking"
	"github.com/agendafacil/backend/internal/models"
)

type GetAccount struct {
	repo domain.Repository
}

func NewGetAccount(repo domain.Repository) *GetAccount {
	return &GetAccount{repo: repo}
}

func (uc *GetAccount) Execute(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return uc.repo.GetAccount(ctx, id)
}

// ------------------------------------------------------

// ChangeRole is restricted to admins; every role, ADMIN included, may be
// assigned here.
type ChangeRole struct {
	repo domain.Repository
}

func NewChangeRole(repo domain.Repository) *ChangeRole {
	return &ChangeRole{repo: repo}
}

func (uc *ChangeRole) Execute(
	ctx context.Context,
	actor domain.Actor,
	accountID uuid.UUID,
	role string,
) (*models.UserProfile, error) {

	if !actor.IsAdmin() {
		return nil, domain.ErrRoleNotAllowed
	}

	r, err := domain.ParseRole(strings.ToUpper(role))
	if err != nil {
		return nil, err
	}

	return uc.repo.UpdateRole(ctx, accountID, r)
}

// ------------------------------------------------------

type DeleteAccount struct {
	repo domain.Repository
}

func NewDeleteAccount(repo domain.Repository) *DeleteAccount {
	return &DeleteAccount{repo: repo}
}

func (uc *DeleteAccount) Execute(ctx context.Context, actor domain.Actor, accountID uuid.UUID) error {
	if !actor.IsAdmin() {
		return domain.ErrRoleNotAllowed
	}
	return uc.repo.DeleteAccount(ctx, accountID)
}
