package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agendafacil/backend/internal/catalog"
)

const projectName = "AgendaFacil"

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the unauthenticated surface: health and the public
// service catalog. Its error bodies use the {"error": "..."} shape.
type PublicHandler struct {
	catalog catalog.Store
}

func NewPublicHandler(store catalog.Store) *PublicHandler {
	return &PublicHandler{catalog: store}
}

// ======================================================
// HEALTH
// ======================================================

func (h *PublicHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"project": projectName,
	})
}

// ======================================================
// CATALOG
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	items, err := h.catalog.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar serviços."})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *PublicHandler) CreateService(c *gin.Context) {
	raw := map[string]any{}

	body, err := c.GetRawData()
	if err == nil && len(bytes.TrimSpace(body)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			raw = map[string]any{}
		}
	}

	in, err := catalog.ParseNewService(raw)
	if err != nil {
		if errors.Is(err, catalog.ErrRequiredFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": catalog.ErrRequiredFields.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valor inválido: " + err.Error()})
		return
	}

	item, err := h.catalog.Create(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar serviço."})
		return
	}

	c.JSON(http.StatusCreated, item)
}
