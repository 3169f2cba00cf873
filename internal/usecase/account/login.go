package account

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/agendafacil/backend/internal/auth"
	domain "github.com/agendafacil/backend/internal/domain/booking"
	"github.com/agendafacil/backend/internal/httperr"
)

var ErrInvalidCredentials = httperr.UnauthorizedErr("invalid_credentials", "Usuário ou senha inválidos.")

type Login struct {
	repo   domain.Repository
	tokens *auth.Tokens
}

func NewLogin(repo domain.Repository, tokens *auth.Tokens) *Login {
	return &Login{repo: repo, tokens: tokens}
}

func (uc *Login) Execute(ctx context.Context, username, password string) (*Session, error) {
	acc, err := uc.repo.GetAccountByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	role := string(domain.RoleClient)
	if acc.Profile != nil {
		role = acc.Profile.Role
	}

	token, err := uc.tokens.Issue(acc.ID, role)
	if err != nil {
		return nil, err
	}

	return &Session{Account: acc, Token: token}, nil
}
