package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/agendafacil/backend/internal/httperr"
	"github.com/agendafacil/backend/internal/httpresp"
	ucAccount "github.com/agendafacil/backend/internal/usecase/account"
)

type AdminHandler struct {
	changeRole    *ucAccount.ChangeRole
	deleteAccount *ucAccount.DeleteAccount
}

func NewAdminHandler(
	changeRole *ucAccount.ChangeRole,
	deleteAccount *ucAccount.DeleteAccount,
) *AdminHandler {
	return &AdminHandler{changeRole: changeRole, deleteAccount: deleteAccount}
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *AdminHandler) ChangeRole(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	profile, err := h.changeRole.Execute(c.Request.Context(), actorFrom(c), id, req.Role)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, profile)
}

func (h *AdminHandler) DeleteAccount(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteAccount.Execute(c.Request.Context(), actorFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}
