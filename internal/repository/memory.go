package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tzofim/peula/internal/domain"
)

// memoryData is the shared state behind the in-memory repositories. One
// mutex guards all four collections so the peula/feedback cascade is atomic.
type memoryData struct {
	mu       sync.RWMutex
	peulot   map[string]*domain.Peula
	feedback map[string]*domain.Feedback
	examples map[string]*domain.TrainingExample
	anchors  map[string]*domain.TzofimAnchor
}

func newMemoryData() *memoryData {
	return &memoryData{
		peulot:   make(map[string]*domain.Peula),
		feedback: make(map[string]*domain.Feedback),
		examples: make(map[string]*domain.TrainingExample),
		anchors:  make(map[string]*domain.TzofimAnchor),
	}
}

func clonePeula(p *domain.Peula) *domain.Peula {
	c := *p
	c.Content = p.Content.Clone()
	if p.AvailableMaterials != nil {
		c.AvailableMaterials = append([]string(nil), p.AvailableMaterials...)
	}
	if p.SpecialConsiderations != nil {
		s := *p.SpecialConsiderations
		c.SpecialConsiderations = &s
	}
	return &c
}

// MemoryPeulaRepo implements PeulaRepo in memory.
type MemoryPeulaRepo struct{ data *memoryData }

func (r *MemoryPeulaRepo) Create(_ context.Context, p *domain.Peula) error {
	if err := p.Content.Validate(); err != nil {
		return fmt.Errorf("encoding peula content: %w", err)
	}
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	if _, exists := r.data.peulot[p.ID]; exists {
		return fmt.Errorf("inserting peula: duplicate id %s", p.ID)
	}
	if p.Version == 0 {
		p.Version = 1
	}
	r.data.peulot[p.ID] = clonePeula(p)
	return nil
}

func (r *MemoryPeulaRepo) GetByID(_ context.Context, id string) (*domain.Peula, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()
	p, ok := r.data.peulot[id]
	if !ok {
		return nil, domain.NewNotFoundError("peula", id)
	}
	return clonePeula(p), nil
}

func (r *MemoryPeulaRepo) List(_ context.Context) ([]*domain.Peula, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()
	out := make([]*domain.Peula, 0, len(r.data.peulot))
	for _, p := range r.data.peulot {
		out = append(out, clonePeula(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryPeulaRepo) UpdateContent(_ context.Context, id string, mutate ContentMutator) (*domain.Peula, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	p, ok := r.data.peulot[id]
	if !ok {
		return nil, domain.NewNotFoundError("peula", id)
	}
	content := p.Content.Clone()
	if err := mutate(&content); err != nil {
		return nil, err
	}
	if err := content.Validate(); err != nil {
		return nil, fmt.Errorf("encoding peula content: %w", err)
	}
	p.Content = content
	p.Version++
	return clonePeula(p), nil
}

func (r *MemoryPeulaRepo) Delete(_ context.Context, id string) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	delete(r.data.peulot, id)
	for fid, f := range r.data.feedback {
		if f.PeulaID == id {
			delete(r.data.feedback, fid)
		}
	}
	return nil
}

// MemoryFeedbackRepo implements FeedbackRepo in memory.
type MemoryFeedbackRepo struct{ data *memoryData }

func (r *MemoryFeedbackRepo) Create(_ context.Context, f *domain.Feedback) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	if _, ok := r.data.peulot[f.PeulaID]; !ok {
		return fmt.Errorf("inserting feedback: %w", domain.NewNotFoundError("peula", f.PeulaID))
	}
	c := *f
	r.data.feedback[f.ID] = &c
	return nil
}

func (r *MemoryFeedbackRepo) ListByPeula(_ context.Context, peulaID string) ([]*domain.Feedback, error) {
	return r.filter(func(f *domain.Feedback) bool { return f.PeulaID == peulaID }), nil
}

func (r *MemoryFeedbackRepo) ListAll(_ context.Context) ([]*domain.Feedback, error) {
	return r.filter(func(*domain.Feedback) bool { return true }), nil
}

func (r *MemoryFeedbackRepo) Delete(_ context.Context, id string) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	delete(r.data.feedback, id)
	return nil
}

func (r *MemoryFeedbackRepo) filter(keep func(*domain.Feedback) bool) []*domain.Feedback {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()
	out := []*domain.Feedback{}
	for _, f := range r.data.feedback {
		if keep(f) {
			c := *f
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// MemoryTrainingExampleRepo implements TrainingExampleRepo in memory.
type MemoryTrainingExampleRepo struct{ data *memoryData }

func (r *MemoryTrainingExampleRepo) Create(_ context.Context, e *domain.TrainingExample) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	c := *e
	r.data.examples[e.ID] = &c
	return nil
}

func (r *MemoryTrainingExampleRepo) GetByID(_ context.Context, id string) (*domain.TrainingExample, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()
	e, ok := r.data.examples[id]
	if !ok {
		return nil, domain.NewNotFoundError("training example", id)
	}
	c := *e
	return &c, nil
}

func (r *MemoryTrainingExampleRepo) List(_ context.Context) ([]*domain.TrainingExample, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()
	out := make([]*domain.TrainingExample, 0, len(r.data.examples))
	for _, e := range r.data.examples {
		c := *e
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryTrainingExampleRepo) Delete(_ context.Context, id string) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	delete(r.data.examples, id)
	return nil
}

// MemoryAnchorRepo implements AnchorRepo in memory.
type MemoryAnchorRepo struct{ data *memoryData }

func (r *MemoryAnchorRepo) Create(_ context.Context, a *domain.TzofimAnchor) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	c := *a
	r.data.anchors[a.ID] = &c
	return nil
}

func (r *MemoryAnchorRepo) GetByID(_ context.Context, id string) (*domain.TzofimAnchor, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()
	a, ok := r.data.anchors[id]
	if !ok {
		return nil, domain.NewNotFoundError("anchor", id)
	}
	c := *a
	return &c, nil
}

func (r *MemoryAnchorRepo) List(_ context.Context) ([]*domain.TzofimAnchor, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()
	out := make([]*domain.TzofimAnchor, 0, len(r.data.anchors))
	for _, a := range r.data.anchors {
		c := *a
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryAnchorRepo) Update(_ context.Context, a *domain.TzofimAnchor) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	if _, ok := r.data.anchors[a.ID]; !ok {
		return domain.NewNotFoundError("anchor", a.ID)
	}
	c := *a
	r.data.anchors[a.ID] = &c
	return nil
}

func (r *MemoryAnchorRepo) Delete(_ context.Context, id string) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	if _, ok := r.data.anchors[id]; !ok {
		return domain.NewNotFoundError("anchor", id)
	}
	delete(r.data.anchors, id)
	return nil
}

func (r *MemoryAnchorRepo) Reorder(_ context.Context, ids []string) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	for _, id := range ids {
		if _, ok := r.data.anchors[id]; !ok {
			return domain.NewNotFoundError("anchor", id)
		}
	}
	for i, id := range ids {
		r.data.anchors[id].DisplayOrder = i
	}
	return nil
}
