package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tzofim/peula/internal/logger"
	"github.com/tzofim/peula/internal/service"
)

type TemplateHandler struct {
	templates service.TemplateService
	log       *logger.Logger
}

func NewTemplateHandler(templates service.TemplateService, log *logger.Logger) *TemplateHandler {
	return &TemplateHandler{templates: templates, log: log}
}

// GET /api/templates
func (h *TemplateHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.templates.List(c.Request.Context()))
}

// GET /api/templates/:id
func (h *TemplateHandler) Get(c *gin.Context) {
	id := c.Param("id")
	t, err := h.templates.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "get template", err, "template_id", id)
		return
	}
	c.JSON(http.StatusOK, t)
}
