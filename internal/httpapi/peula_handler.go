package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/logger"
	"github.com/tzofim/peula/internal/service"
)

type PeulaHandler struct {
	peulot service.PeulaService
	log    *logger.Logger
}

func NewPeulaHandler(peulot service.PeulaService, log *logger.Logger) *PeulaHandler {
	return &PeulaHandler{peulot: peulot, log: log}
}

type generateRequest struct {
	TemplateID            string   `json:"templateId"`
	Topic                 string   `json:"topic" binding:"required"`
	AgeGroup              string   `json:"ageGroup" binding:"required"`
	Duration              string   `json:"duration" binding:"required"`
	GroupSize             string   `json:"groupSize" binding:"required"`
	Goals                 string   `json:"goals" binding:"required"`
	AvailableMaterials    []string `json:"availableMaterials"`
	SpecialConsiderations string   `json:"specialConsiderations"`
}

func (r generateRequest) questionnaire() domain.QuestionnaireResponse {
	return domain.QuestionnaireResponse{
		TemplateID:            r.TemplateID,
		Topic:                 r.Topic,
		AgeGroup:              r.AgeGroup,
		Duration:              r.Duration,
		GroupSize:             r.GroupSize,
		Goals:                 r.Goals,
		AvailableMaterials:    r.AvailableMaterials,
		SpecialConsiderations: r.SpecialConsiderations,
	}
}

// GET /api/peulot
func (h *PeulaHandler) List(c *gin.Context) {
	peulot, err := h.peulot.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "list peulot", err)
		return
	}
	c.JSON(http.StatusOK, peulot)
}

// GET /api/peulot/:id
func (h *PeulaHandler) Get(c *gin.Context) {
	id := c.Param("id")
	p, err := h.peulot.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "get peula", err, "peula_id", id)
		return
	}
	c.JSON(http.StatusOK, p)
}

// POST /api/peulot/generate
// body: QuestionnaireResponse
func (h *PeulaHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, "generate peula", err)
		return
	}
	p, err := h.peulot.Generate(c.Request.Context(), req.questionnaire())
	if err != nil {
		respondError(c, h.log, "generate peula", err, "template", req.TemplateID, "topic", req.Topic)
		return
	}
	c.JSON(http.StatusOK, p)
}

// POST /api/peulot/:id/export
func (h *PeulaHandler) Export(c *gin.Context) {
	id := c.Param("id")
	url, err := h.peulot.Export(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "export peula", err, "peula_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documentUrl": url})
}

// POST /api/peulot/:id/regenerate-section
// body: { "sectionIndex": 0-8 }
func (h *PeulaHandler) RegenerateSection(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		SectionIndex *int `json:"sectionIndex" binding:"required"`
	}
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, "regenerate section", err, "peula_id", id)
		return
	}
	p, err := h.peulot.RegenerateSection(c.Request.Context(), id, *req.SectionIndex)
	if err != nil {
		respondError(c, h.log, "regenerate section", err, "peula_id", id, "section_index", *req.SectionIndex)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /api/peulot/:id
func (h *PeulaHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.peulot.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, "delete peula", err, "peula_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
