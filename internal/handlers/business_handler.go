package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/agendafacil/backend/internal/httperr"
	"github.com/agendafacil/backend/internal/httpresp"
	ucBusiness "github.com/agendafacil/backend/internal/usecase/business"
)

type BusinessHandler struct {
	create *ucBusiness.CreateBusiness
	list   *ucBusiness.ListBusinesses
	get    *ucBusiness.GetBusiness
	update *ucBusiness.UpdateBusiness
	delete *ucBusiness.DeleteBusiness
}

func NewBusinessHandler(
	create *ucBusiness.CreateBusiness,
	list *ucBusiness.ListBusinesses,
	get *ucBusiness.GetBusiness,
	update *ucBusiness.UpdateBusiness,
	delete *ucBusiness.DeleteBusiness,
) *BusinessHandler {
	return &BusinessHandler{
		create: create,
		list:   list,
		get:    get,
		update: update,
		delete: delete,
	}
}

type CreateBusinessRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Category string `json:"category" binding:"required,max=60"`
	Phone    string `json:"phone" binding:"max=25"`
	Address  string `json:"address" binding:"max=200"`
}

type UpdateBusinessRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=120"`
	Category *string `json:"category" binding:"omitempty,max=60"`
	Phone    *string `json:"phone" binding:"omitempty,max=25"`
	Address  *string `json:"address" binding:"omitempty,max=200"`
	IsActive *bool   `json:"is_active"`
}

func (h *BusinessHandler) Create(c *gin.Context) {
	var req CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	b, err := h.create.Execute(c.Request.Context(), actorFrom(c), ucBusiness.CreateInput{
		Name:     req.Name,
		Category: req.Category,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, b)
}

func (h *BusinessHandler) List(c *gin.Context) {
	list, err := h.list.Execute(c.Request.Context(), actorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *BusinessHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	b, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BusinessHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	b, err := h.update.Execute(c.Request.Context(), actorFrom(c), id, ucBusiness.UpdateInput{
		Name:     req.Name,
		Category: req.Category,
		Phone:    req.Phone,
		Address:  req.Address,
		IsActive: req.IsActive,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BusinessHandler) Delete(c *gin.Context) {
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
