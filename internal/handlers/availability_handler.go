package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/agendafacil/backend/internal/httperr"
	"github.com/agendafacil/backend/internal/httpresp"
	ucAvailability "github.com/agendafacil/backend/internal/usecase/availability"
)

type AvailabilityHandler struct {
	create *ucAvailability.CreateSlot
	list   *ucAvailability.ListSlots
	update *ucAvailability.UpdateSlot
	delete *ucAvailability.DeleteSlot
}

func NewAvailabilityHandler(
	create *ucAvailability.CreateSlot,
	list *ucAvailability.ListSlots,
	update *ucAvailability.UpdateSlot,
	delete *ucAvailability.DeleteSlot,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		create: create,
		list:   list,
		update: update,
		delete: delete,
	}
}

// day_of_week uses 0 = Sunday ... 6 = Saturday; times are "HH:MM".
type CreateSlotRequest struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type UpdateSlotRequest struct {
	DayOfWeek *int    `json:"day_of_week"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	IsActive  *bool   `json:"is_active"`
}

func (h *AvailabilityHandler) Create(c *gin.Context) {
	businessID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	slot, err := h.create.Execute(c.Request.Context(), actorFrom(c), businessID, ucAvailability.CreateInput{
		DayOfWeek: *req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, slot)
}

func (h *AvailabilityHandler) List(c *gin.Context) {
	businessID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	list, err := h.list.Execute(c.Request.Context(), businessID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	slot, err := h.update.Execute(c.Request.Context(), actorFrom(c), id, ucAvailability.UpdateInput{
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  req.IsActive,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, slot)
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), actorFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
