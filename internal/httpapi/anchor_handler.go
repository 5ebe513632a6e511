package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/logger"
	"github.com/tzofim/peula/internal/service"
)

type AnchorHandler struct {
	anchors service.AnchorService
	log     *logger.Logger
}

func NewAnchorHandler(anchors service.AnchorService, log *logger.Logger) *AnchorHandler {
	return &AnchorHandler{anchors: anchors, log: log}
}

// GET /api/tzofim-anchors
func (h *AnchorHandler) List(c *gin.Context) {
	list, err := h.anchors.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "list anchors", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/tzofim-anchors
// body: { "text": "...", "category": "...", "displayOrder": n? }
func (h *AnchorHandler) Create(c *gin.Context) {
	var req struct {
		Text         string `json:"text" binding:"required"`
		Category     string `json:"category" binding:"required"`
		DisplayOrder *int   `json:"displayOrder"`
	}
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, "create anchor", err)
		return
	}
	a, err := h.anchors.Create(c.Request.Context(), req.Text, req.Category, req.DisplayOrder)
	if err != nil {
		respondError(c, h.log, "create anchor", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// PATCH /api/tzofim-anchors/:id
// body: any of { "text", "category", "displayOrder" }
func (h *AnchorHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Text         *string `json:"text"`
		Category     *string `json:"category"`
		DisplayOrder *int    `json:"displayOrder"`
	}
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, "update anchor", err, "anchor_id", id)
		return
	}
	a, err := h.anchors.Update(c.Request.Context(), id, domain.AnchorPatch{
		Text:         req.Text,
		Category:     req.Category,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		respondError(c, h.log, "update anchor", err, "anchor_id", id)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DELETE /api/tzofim-anchors/:id
func (h *AnchorHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.anchors.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, "delete anchor", err, "anchor_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /api/tzofim-anchors/reorder
// body: { "ids": ["...", ...] }
func (h *AnchorHandler) Reorder(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, "reorder anchors", err)
		return
	}
	list, err := h.anchors.Reorder(c.Request.Context(), req.IDs)
	if err != nil {
		respondError(c, h.log, "reorder anchors", err, "count", len(req.IDs))
		return
	}
	c.JSON(http.StatusOK, list)
}
