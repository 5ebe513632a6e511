package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tzofim/peula/internal/logger"
	"github.com/tzofim/peula/internal/service"
)

type TrainingExampleHandler struct {
	examples service.TrainingExampleService
	log      *logger.Logger
}

func NewTrainingExampleHandler(examples service.TrainingExampleService, log *logger.Logger) *TrainingExampleHandler {
	return &TrainingExampleHandler{examples: examples, log: log}
}

// GET /api/training-examples
func (h *TrainingExampleHandler) List(c *gin.Context) {
	list, err := h.examples.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "list training examples", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/training-examples
// body: { "title": "...", "content": "...", "notes": "..."? }
func (h *TrainingExampleHandler) Create(c *gin.Context) {
	var req struct {
		Title   string  `json:"title" binding:"required"`
		Content string  `json:"content" binding:"required"`
		Notes   *string `json:"notes"`
	}
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, "create training example", err)
		return
	}
	ex, err := h.examples.Create(c.Request.Context(), req.Title, req.Content, req.Notes)
	if err != nil {
		respondError(c, h.log, "create training example", err, "title", req.Title)
		return
	}
	c.JSON(http.StatusOK, ex)
}

// DELETE /api/training-examples/:id
func (h *TrainingExampleHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.examples.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, "delete training example", err, "example_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/training-examples/insights
func (h *TrainingExampleHandler) Insights(c *gin.Context) {
	report, err := h.examples.Insights(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "training example insights", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// POST /api/training-examples/import-from-docs
// body: { "url": "https://docs.google.com/document/d/<id>/...", "notes": "..."? }
func (h *TrainingExampleHandler) ImportFromDocs(c *gin.Context) {
	var req struct {
		URL   string  `json:"url" binding:"required"`
		Notes *string `json:"notes"`
	}
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, "import training example", err)
		return
	}
	ex, err := h.examples.ImportFromDocs(c.Request.Context(), req.URL, req.Notes)
	if err != nil {
		respondError(c, h.log, "import training example", err, "url", req.URL)
		return
	}
	c.JSON(http.StatusOK, ex)
}
