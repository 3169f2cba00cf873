package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agendafacil/backend/internal/audit"
	"github.com/agendafacil/backend/internal/httperr"
	ucBusiness "github.com/agendafacil/backend/internal/usecase/business"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs       *audit.Logger
	businesses *ucBusiness.GetBusiness
}

func NewAuditLogsHandler(logs *audit.Logger, businesses *ucBusiness.GetBusiness) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, businesses: businesses}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	businessID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	// --------------------------------------------------
	// Only the business's managers read its log
	// --------------------------------------------------

	b, err := h.businesses.Execute(c.Request.Context(), businessID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if err := actorFrom(c).CanManage(b); err != nil {
		httperr.Respond(c, err)
		return
	}

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))

	if v := c.Query("from"); v != "" {
		if from, err := time.Parse("2006-01-02", v); err == nil {
			f.From = &from
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err := time.Parse("2006-01-02", v); err == nil {
			f.To = &to
		}
	}
	f.Normalize()

	logs, total, err := h.logs.List(c.Request.Context(), b.ID, f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  f.Page,
		"limit": f.Limit,
		"total": total,
		"logs":  logs,
	})
}
