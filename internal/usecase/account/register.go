package account

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/agendafacil/backend/internal/auth"
	domain "github.com/agendafacil/backend/internal/domain/booking"
	"github.com/agendafacil/backend/internal/httperr"
	"github.com/agendafacil/backend/internal/models"
)

// bcrypt only reads the first 72 bytes of a password.
const maxPasswordBytes = 72

var ErrPasswordTooLong = httperr.Validation("password_too_long", "password deve ter no máximo 72 bytes.")

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	Username string
	Email    string
	Password string
	// Role defaults to CLIENT. ADMIN cannot be requested.
	Role string
}

type Session struct {
	Account *models.Account
	Token   string
}

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	repo   domain.Repository
	tokens *auth.Tokens
}

func NewRegister(repo domain.Repository, tokens *auth.Tokens) *Register {
	return &Register{repo: repo, tokens: tokens}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*Session, error) {
	role := domain.RoleClient
	if in.Role != "" {
		r, err := domain.ParseRole(strings.ToUpper(in.Role))
		if err != nil {
			return nil, err
		}
		if !r.CanSelfAssign() {
			return nil, domain.ErrRoleNotAllowed
		}
		role = r
	}

	if len(in.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	acc := &models.Account{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hashed),
	}

	if err := uc.repo.CreateAccount(ctx, acc, role); err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(acc.ID, string(role))
	if err != nil {
		return nil, err
	}

	return &Session{Account: acc, Token: token}, nil
}
