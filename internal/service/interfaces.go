package service

import (
	"context"

	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/template"
)

type PeulaService interface {
	// Generate validates the questionnaire, asks the model for a full peula
	// and stores it.
	Generate(ctx context.Context, q domain.QuestionnaireResponse) (*domain.Peula, error)
	Get(ctx context.Context, id string) (*domain.Peula, error)
	List(ctx context.Context) ([]*domain.Peula, error)
	Delete(ctx context.Context, id string) error
	// RegenerateSection replaces one section's body, keeping its label and
	// every other section.
	RegenerateSection(ctx context.Context, id string, sectionIndex int) (*domain.Peula, error)
	// Export writes the peula to a shareable document and returns its URL.
	Export(ctx context.Context, id string) (string, error)
}

type FeedbackService interface {
	Create(ctx context.Context, peulaID string, componentIndex int, comment string) (*domain.Feedback, error)
	ListForPeula(ctx context.Context, peulaID string) ([]*domain.Feedback, error)
	ListAll(ctx context.Context) ([]*domain.Feedback, error)
	Delete(ctx context.Context, id string) error
}

type TrainingExampleService interface {
	Create(ctx context.Context, title, content string, notes *string) (*domain.TrainingExample, error)
	List(ctx context.Context) ([]*domain.TrainingExample, error)
	Delete(ctx context.Context, id string) error
	Insights(ctx context.Context) (*domain.InsightsReport, error)
	ImportFromDocs(ctx context.Context, url string, notes *string) (*domain.TrainingExample, error)
}

type AnchorService interface {
	Create(ctx context.Context, text, category string, displayOrder *int) (*domain.TzofimAnchor, error)
	List(ctx context.Context) ([]*domain.TzofimAnchor, error)
	Update(ctx context.Context, id string, patch domain.AnchorPatch) (*domain.TzofimAnchor, error)
	Delete(ctx context.Context, id string) error
	// Reorder gives ids[i] display order i and returns the reordered list.
	Reorder(ctx context.Context, ids []string) ([]*domain.TzofimAnchor, error)
}

type TemplateService interface {
	List(ctx context.Context) []template.Template
	Get(ctx context.Context, id string) (*template.Template, error)
}

// DocumentExporter writes a peula to an external document.
type DocumentExporter interface {
	Export(ctx context.Context, p *domain.Peula) (string, error)
}
