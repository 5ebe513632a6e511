package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tzofim/peula/internal/domain"
)

var fixtureClock atomic.Int64

// nextCreatedAt hands out strictly increasing timestamps so ordering
// assertions do not depend on wall-clock resolution.
func nextCreatedAt() time.Time {
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(fixtureClock.Add(1)) * time.Second)
}

// NewTestContent returns nine complete components whose fields carry the
// section number, e.g. "description 3".
func NewTestContent() domain.PeulaContent {
	c := domain.PeulaContent{Components: make([]domain.PeulaComponent, domain.SectionCount)}
	for i := range c.Components {
		c.Components[i] = domain.PeulaComponent{
			Component:     domain.SectionLabel(i),
			Description:   fmt.Sprintf("description %d", i),
			BestPractices: fmt.Sprintf("best practices %d", i),
			TimeStructure: fmt.Sprintf("%d min", 5+i),
		}
	}
	return c
}

// Peula options
type PeulaOption func(*domain.Peula)

func WithTopic(topic string) PeulaOption {
	return func(p *domain.Peula) {
		p.Topic = topic
	}
}

func WithContent(c domain.PeulaContent) PeulaOption {
	return func(p *domain.Peula) {
		p.Content = c
	}
}

func WithSpecialConsiderations(s string) PeulaOption {
	return func(p *domain.Peula) {
		p.SpecialConsiderations = &s
	}
}

func WithPeulaCreatedAt(t time.Time) PeulaOption {
	return func(p *domain.Peula) {
		p.CreatedAt = t
	}
}

func NewTestPeula(title string, opts ...PeulaOption) *domain.Peula {
	p := &domain.Peula{
		ID:                 uuid.New().String(),
		Title:              title,
		Topic:              "Leadership",
		AgeGroup:           "12-14",
		Duration:           "90 minutes",
		GroupSize:          "20",
		Goals:              "Practice shared decision making",
		AvailableMaterials: []string{"rope", "markers"},
		Content:            NewTestContent(),
		CreatedAt:          nextCreatedAt(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestFeedback(peulaID string, index int, comment string) *domain.Feedback {
	return &domain.Feedback{
		ID:             uuid.New().String(),
		PeulaID:        peulaID,
		ComponentIndex: index,
		Comment:        comment,
		CreatedAt:      nextCreatedAt(),
	}
}

func NewTestExample(title, content string) *domain.TrainingExample {
	return &domain.TrainingExample{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		CreatedAt: nextCreatedAt(),
	}
}

func NewTestAnchor(text, category string, order int) *domain.TzofimAnchor {
	return &domain.TzofimAnchor{
		ID:           uuid.New().String(),
		Text:         text,
		Category:     category,
		DisplayOrder: order,
		CreatedAt:    nextCreatedAt(),
	}
}

func NewTestQuestionnaire() domain.QuestionnaireResponse {
	return domain.QuestionnaireResponse{
		TemplateID:         "leadership",
		Topic:              "Leadership",
		AgeGroup:           "12-14",
		Duration:           "90 minutes",
		GroupSize:          "20",
		Goals:              "Practice shared decision making",
		AvailableMaterials: []string{"rope", "markers"},
	}
}
