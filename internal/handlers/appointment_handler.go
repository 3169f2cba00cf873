package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agendafacil/backend/internal/dto"
	"github.com/agendafacil/backend/internal/httperr"
	"github.com/agendafacil/backend/internal/httpresp"
	"github.com/agendafacil/backend/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC        *appointment.CreateAppointment
	getUC           *appointment.GetAppointment
	listByDateUC    *appointment.ListAppointmentsByDate
	updateUC        *appointment.UpdateAppointment
	changeStatusUC  *appointment.ChangeStatus
	addServiceUC    *appointment.AddService
	removeServiceUC *appointment.RemoveService
	deleteUC        *appointment.DeleteAppointment
}

func NewAppointmentHandler(
	createUC *appointment.CreateAppointment,
	getUC *appointment.GetAppointment,
	listByDateUC *appointment.ListAppointmentsByDate,
	updateUC *appointment.UpdateAppointment,
	changeStatusUC *appointment.ChangeStatus,
	addServiceUC *appointment.AddService,
	removeServiceUC *appointment.RemoveService,
	deleteUC *appointment.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:        createUC,
		getUC:           getUC,
		listByDateUC:    listByDateUC,
		updateUC:        updateUC,
		changeStatusUC:  changeStatusUC,
		addServiceUC:    addServiceUC,
		removeServiceUC: removeServiceUC,
		deleteUC:        deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AppointmentItemRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// Timestamps are RFC 3339. end_at may be omitted.
type CreateAppointmentRequest struct {
	StartAt  time.Time                `json:"start_at" binding:"required"`
	EndAt    *time.Time               `json:"end_at"`
	Notes    string                   `json:"notes" binding:"max=250"`
	Services []AppointmentItemRequest `json:"services" binding:"required,min=1,dive"`
}

type UpdateAppointmentRequest struct {
	StartAt *time.Time `json:"start_at"`
	EndAt   *time.Time `json:"end_at"`
	Notes   *string    `json:"notes" binding:"omitempty,max=250"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE / READ
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	businessID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	in := appointment.CreateInput{
		BusinessID: businessID,
		StartAt:    req.StartAt,
		Notes:      req.Notes,
	}
	if req.EndAt != nil {
		in.EndAt = *req.EndAt
	}
	for _, it := range req.Services {
		in.Services = append(in.Services, appointment.ItemInput{
			ServiceID: it.ServiceID,
			Quantity:  it.Quantity,
		})
	}

	ap, err := h.createUC.Execute(c.Request.Context(), actorFrom(c), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewAppointmentDTO(ap))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.getUC.Execute(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewAppointmentDTO(ap))
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	businessID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	date, ok := dateQuery(c, "date")
	if !ok {
		return
	}

	list, err := h.listByDateUC.Execute(c.Request.Context(), actorFrom(c), businessID, date, c.Query("tz"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.NewAppointmentDTOs(list))
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), actorFrom(c), id, appointment.UpdateInput{
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
		Notes:   req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewAppointmentDTO(ap))
}

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	ap, err := h.changeStatusUC.Execute(c.Request.Context(), actorFrom(c), id, req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewAppointmentDTO(ap))
}

// ======================================================
// SERVICES OF AN APPOINTMENT
// ======================================================

func (h *AppointmentHandler) AddService(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req AppointmentItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	ap, err := h.addServiceUC.Execute(c.Request.Context(), actorFrom(c), id, appointment.ItemInput{
		ServiceID: req.ServiceID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.NewAppointmentDTO(ap))
}

func (h *AppointmentHandler) RemoveService(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	serviceID, ok := uuidParam(c, "serviceId")
	if !ok {
		return
	}

	ap, err := h.removeServiceUC.Execute(c.Request.Context(), actorFrom(c), id, serviceID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewAppointmentDTO(ap))
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), actorFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
