package domain

import (
	"strings"
	"time"
)

// TrainingExample is an exemplar peula text used to steer generation style.
type TrainingExample struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

func (e *TrainingExample) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return NewValidationError("title", "is required")
	}
	if strings.TrimSpace(e.Content) == "" {
		return NewValidationError("content", "is required")
	}
	return nil
}

// StyleInsights is the style profile derived from all training examples.
type StyleInsights struct {
	VoiceAndTone       string   `json:"voiceAndTone"`
	SignatureMoves     []string `json:"signatureMoves"`
	FacilitationFocus  []string `json:"facilitationFocus"`
	ReflectionPatterns []string `json:"reflectionPatterns"`
	MeasurementFocus   []string `json:"measurementFocus"`
}

// InsightsReport wraps a style profile with the moment and the number of
// examples it was computed from. Insights and GeneratedAt are nil when there
// were no examples.
type InsightsReport struct {
	Insights     *StyleInsights `json:"insights"`
	GeneratedAt  *time.Time     `json:"generatedAt"`
	ExampleCount int            `json:"exampleCount"`
}
