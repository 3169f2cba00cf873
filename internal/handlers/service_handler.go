package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/agendafacil/backend/internal/httperr"
	"github.com/agendafacil/backend/internal/httpresp"
	ucService "github.com/agendafacil/backend/internal/usecase/service"
)

type ServiceHandler struct {
	create *ucService.CreateService
	list   *ucService.ListServices
	update *ucService.UpdateService
	delete *ucService.DeleteService
}

func NewServiceHandler(
	create *ucService.CreateService,
	list *ucService.ListServices,
	update *ucService.UpdateService,
	delete *ucService.DeleteService,
) *ServiceHandler {
	return &ServiceHandler{
		create: create,
		list:   list,
		update: update,
		delete: delete,
	}
}

// --------- Requests ---------

// Prices accept a JSON number or a decimal string ("150.00").
type CreateServiceRequest struct {
	Name        string           `json:"name" binding:"required,max=120"`
	Description string           `json:"description"`
	DurationMin int              `json:"duration_min" binding:"required"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=120"`
	Description *string          `json:"description"`
	DurationMin *int             `json:"duration_min"`
	Price       *decimal.Decimal `json:"price"`
	IsActive    *bool            `json:"is_active"`
}

// --------- Handlers ---------

func (h *ServiceHandler) Create(c *gin.Context) {
	businessID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	s, err := h.create.Execute(c.Request.Context(), actorFrom(c), businessID, ucService.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       *req.Price,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, s)
}

func (h *ServiceHandler) List(c *gin.Context) {
	businessID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	list, err := h.list.Execute(c.Request.Context(), actorFrom(c), businessID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	s, err := h.update.Execute(c.Request.Context(), actorFrom(c), id, ucService.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		IsActive:    req.IsActive,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
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
