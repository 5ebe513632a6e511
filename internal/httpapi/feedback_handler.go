package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tzofim/peula/internal/logger"
	"github.com/tzofim/peula/internal/service"
)

type FeedbackHandler struct {
	feedback service.FeedbackService
	log      *logger.Logger
}

func NewFeedbackHandler(feedback service.FeedbackService, log *logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback, log: log}
}

type feedbackRequest struct {
	PeulaID        string `json:"peulaId"`
	ComponentIndex *int   `json:"componentIndex" binding:"required"`
	Comment        string `json:"comment" binding:"required"`
}

// GET /api/peulot/:id/feedback
func (h *FeedbackHandler) ListForPeula(c *gin.Context) {
	id := c.Param("id")
	list, err := h.feedback.ListForPeula(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "list feedback", err, "peula_id", id)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/peulot/:id/feedback
// body: { "componentIndex": 0-8, "comment": "..." }
func (h *FeedbackHandler) CreateForPeula(c *gin.Context) {
	var req feedbackRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, "create feedback", err)
		return
	}
	req.PeulaID = c.Param("id")
	h.create(c, req)
}

// GET /api/feedback
func (h *FeedbackHandler) ListAll(c *gin.Context) {
	list, err := h.feedback.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "list all feedback", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/feedback
// body: { "peulaId": "...", "componentIndex": 0-8, "comment": "..." }
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req feedbackRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, "create feedback", err)
		return
	}
	h.create(c, req)
}

func (h *FeedbackHandler) create(c *gin.Context, req feedbackRequest) {
	f, err := h.feedback.Create(c.Request.Context(), req.PeulaID, *req.ComponentIndex, req.Comment)
	if err != nil {
		respondError(c, h.log, "create feedback", err, "peula_id", req.PeulaID, "component_index", *req.ComponentIndex)
		return
	}
	c.JSON(http.StatusOK, f)
}

// DELETE /api/feedback/:id
func (h *FeedbackHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.feedback.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, "delete feedback", err, "feedback_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
