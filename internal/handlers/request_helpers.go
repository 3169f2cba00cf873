package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/agendafacil/backend/internal/domain/booking"
	"github.com/agendafacil/backend/internal/httperr"
	"github.com/agendafacil/backend/internal/middleware"
)

func actorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		ID:   middleware.AccountID(c),
		Role: middleware.Role(c),
	}
}

// uuidParam reads a path parameter, answering 400 when it is not a UUID.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", name+" deve ser um UUID.")
		return uuid.Nil, false
	}
	return id, true
}

// dateQuery parses ?name=YYYY-MM-DD, falling back to today (UTC).
func dateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Now().UTC(), true
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", name+" deve estar no formato YYYY-MM-DD.")
		return time.Time{}, false
	}
	return d, true
}
