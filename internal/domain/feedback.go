package domain

import (
	"strings"
	"time"
)

// Feedback is a comment on one section of one peula.
type Feedback struct {
	ID             string    `json:"id"`
	PeulaID        string    `json:"peulaId"`
	ComponentIndex int       `json:"componentIndex"`
	Comment        string    `json:"comment"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Validate enforces the section range and a non-blank comment.
func (f *Feedback) Validate() error {
	if strings.TrimSpace(f.PeulaID) == "" {
		return NewValidationError("peulaId", "is required")
	}
	if err := ValidateSectionIndex("componentIndex", f.ComponentIndex); err != nil {
		return err
	}
	if strings.TrimSpace(f.Comment) == "" {
		return NewValidationError("comment", "must not be empty")
	}
	return nil
}
