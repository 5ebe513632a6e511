package domain

import (
	"strings"
	"time"
)

// TzofimAnchor is a reusable methodology reminder with a manual display order.
type TzofimAnchor struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Category     string    `json:"category"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (a *TzofimAnchor) Validate() error {
	if strings.TrimSpace(a.Text) == "" {
		return NewValidationError("text", "is required")
	}
	if strings.TrimSpace(a.Category) == "" {
		return NewValidationError("category", "is required")
	}
	return nil
}

// AnchorPatch holds the optional fields of an anchor update.
type AnchorPatch struct {
	Text         *string
	Category     *string
	DisplayOrder *int
}

// Apply copies every set field onto a.
func (p AnchorPatch) Apply(a *TzofimAnchor) {
	if p.Text != nil {
		a.Text = *p.Text
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.DisplayOrder != nil {
		a.DisplayOrder = *p.DisplayOrder
	}
}
