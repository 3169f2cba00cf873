package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/agendafacil/backend/internal/dto"
	"github.com/agendafacil/backend/internal/httperr"
	"github.com/agendafacil/backend/internal/httpresp"
	ucAccount "github.com/agendafacil/backend/internal/usecase/account"
	ucAppointment "github.com/agendafacil/backend/internal/usecase/appointment"
)

type MeHandler struct {
	getAccount     *ucAccount.GetAccount
	myAppointments *ucAppointment.ListMyAppointments
}

func NewMeHandler(
	getAccount *ucAccount.GetAccount,
	myAppointments *ucAppointment.ListMyAppointments,
) *MeHandler {
	return &MeHandler{getAccount: getAccount, myAppointments: myAppointments}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := actorFrom(c)

	acc, err := h.getAccount.Execute(c.Request.Context(), actor.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"account": accountResponse(acc)})
}

func (h *MeHandler) ListAppointments(c *gin.Context) {
	list, err := h.myAppointments.Execute(c.Request.Context(), actorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewAppointmentDTOs(list))
}
