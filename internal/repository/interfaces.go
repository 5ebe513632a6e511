package repository

import (
	"context"
	"errors"

	"github.com/tzofim/peula/internal/domain"
)

// ErrNotFound is returned (wrapped in a *domain.NotFoundError) when a row
// does not exist.
var ErrNotFound = domain.ErrNotFound

// ErrConcurrentUpdate is returned when a content update keeps losing the
// compare-and-swap race.
var ErrConcurrentUpdate = errors.New("concurrent update: retry budget exhausted")

// ContentMutator edits a freshly read copy of a peula's content.
type ContentMutator func(c *domain.PeulaContent) error

type PeulaRepo interface {
	Create(ctx context.Context, p *domain.Peula) error
	GetByID(ctx context.Context, id string) (*domain.Peula, error)
	List(ctx context.Context) ([]*domain.Peula, error)
	// UpdateContent re-reads the stored content, applies mutate and writes it
	// back only if no other writer got in between; otherwise it retries with
	// the newer content.
	UpdateContent(ctx context.Context, id string, mutate ContentMutator) (*domain.Peula, error)
	// Delete removes the peula and every feedback row referencing it.
	Delete(ctx context.Context, id string) error
}

type FeedbackRepo interface {
	Create(ctx context.Context, f *domain.Feedback) error
	ListByPeula(ctx context.Context, peulaID string) ([]*domain.Feedback, error)
	// ListAll returns every feedback row, oldest first.
	ListAll(ctx context.Context) ([]*domain.Feedback, error)
	// Delete is idempotent.
	Delete(ctx context.Context, id string) error
}

type TrainingExampleRepo interface {
	Create(ctx context.Context, e *domain.TrainingExample) error
	GetByID(ctx context.Context, id string) (*domain.TrainingExample, error)
	// List returns examples newest first.
	List(ctx context.Context) ([]*domain.TrainingExample, error)
	Delete(ctx context.Context, id string) error
}

type AnchorRepo interface {
	Create(ctx context.Context, a *domain.TzofimAnchor) error
	GetByID(ctx context.Context, id string) (*domain.TzofimAnchor, error)
	// List returns anchors by display order, then creation time.
	List(ctx context.Context) ([]*domain.TzofimAnchor, error)
	Update(ctx context.Context, a *domain.TzofimAnchor) error
	Delete(ctx context.Context, id string) error
	// Reorder assigns display order i to ids[i], atomically. Every id must exist.
	Reorder(ctx context.Context, ids []string) error
}

// maxCASAttempts bounds the compare-and-swap loop of UpdateContent.
const maxCASAttempts = 5
