package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agendafacil/backend/internal/auth"
	domain "github.com/agendafacil/backend/internal/domain/booking"
	"github.com/agendafacil/backend/internal/httperr"
)

const (
	ContextAccountID = "accountID"
	ContextRole      = "role"
)

// RoleSource resolves the role an account holds right now.
type RoleSource interface {
	GetRole(ctx context.Context, accountID uuid.UUID) (domain.Role, error)
}

// AuthMiddleware accepts a valid bearer token and loads the account's role
// from roles on every request. The role claim inside the token is ignored.
func AuthMiddleware(tokens *auth.Tokens, roles RoleSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		accountID, _, err := tokens.Parse(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid_token")
			return
		}

		role, err := roles.GetRole(c.Request.Context(), accountID)
		switch {
		case httperr.IsKind(err, httperr.KindNotFound):
			abortUnauthorized(c, "account_not_found")
			return
		case httperr.IsKind(err, httperr.KindValidation):
			abortUnauthorized(c, "invalid_token_payload")
			return
		case err != nil:
			httperr.Respond(c, err)
			c.Abort()
			return
		}

		c.Set(ContextAccountID, accountID)
		c.Set(ContextRole, role)

		c.Next()
	}
}

// RequireRole lets the request through only for the listed roles. It must
// run after AuthMiddleware.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.MustGet(ContextRole).(domain.Role)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, httperr.HTTPError{
			Code:    "forbidden",
			Message: "Perfil sem permissão para esta operação.",
		})
	}
}

func AccountID(c *gin.Context) uuid.UUID {
	return c.MustGet(ContextAccountID).(uuid.UUID)
}

func Role(c *gin.Context) domain.Role {
	return c.MustGet(ContextRole).(domain.Role)
}

func abortUnauthorized(c *gin.Context, code string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{
		Code:    code,
		Message: "Autenticação necessária.",
	})
}
