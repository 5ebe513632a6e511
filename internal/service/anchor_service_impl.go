package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/repository"
)

type anchorService struct {
	anchors  repository.AnchorRepo
	observer UseCaseObserver
}

func NewAnchorService(anchors repository.AnchorRepo, observers ...UseCaseObserver) AnchorService {
	return &anchorService{anchors: anchors, observer: useCaseObserverOrNoop(observers)}
}

// Create appends the anchor after the existing ones unless displayOrder is
// given.
func (s *anchorService) Create(ctx context.Context, text, category string, displayOrder *int) (a *domain.TzofimAnchor, err error) {
	fields := map[string]any{"category": category}
	defer observe(ctx, s.observer, "create-anchor", fields, &err)()

	a = &domain.TzofimAnchor{
		ID:        uuid.New().String(),
		Text:      strings.TrimSpace(text),
		Category:  strings.TrimSpace(category),
		CreatedAt: time.Now().UTC(),
	}
	if err = a.Validate(); err != nil {
		return nil, err
	}
	fields["anchor_id"] = a.ID

	if displayOrder != nil {
		a.DisplayOrder = *displayOrder
	} else {
		var existing []*domain.TzofimAnchor
		if existing, err = s.anchors.List(ctx); err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			a.DisplayOrder = existing[len(existing)-1].DisplayOrder + 1
		}
	}

	if err = s.anchors.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *anchorService) List(ctx context.Context) ([]*domain.TzofimAnchor, error) {
	return s.anchors.List(ctx)
}

func (s *anchorService) Update(ctx context.Context, id string, patch domain.AnchorPatch) (a *domain.TzofimAnchor, err error) {
	defer observe(ctx, s.observer, "update-anchor", map[string]any{"anchor_id": id}, &err)()

	if a, err = s.anchors.GetByID(ctx, id); err != nil {
		return nil, err
	}
	patch.Apply(a)
	a.Text = strings.TrimSpace(a.Text)
	a.Category = strings.TrimSpace(a.Category)
	if err = a.Validate(); err != nil {
		return nil, err
	}
	if err = s.anchors.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *anchorService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-anchor", map[string]any{"anchor_id": id}, &err)()
	return s.anchors.Delete(ctx, id)
}

func (s *anchorService) Reorder(ctx context.Context, ids []string) (ordered []*domain.TzofimAnchor, err error) {
	defer observe(ctx, s.observer, "reorder-anchors", map[string]any{"count": len(ids)}, &err)()

	if len(ids) == 0 {
		return nil, domain.NewValidationError("ids", "must not be empty")
	}
	if dups := lo.FindDuplicates(ids); len(dups) > 0 {
		return nil, &domain.ValidationError{
			Field:   "ids",
			Message: "must not contain duplicates",
			Details: dups,
		}
	}

	var existing []*domain.TzofimAnchor
	if existing, err = s.anchors.List(ctx); err != nil {
		return nil, err
	}
	known := lo.SliceToMap(existing, func(a *domain.TzofimAnchor) (string, struct{}) {
		return a.ID, struct{}{}
	})
	unknown := lo.Filter(ids, func(id string, _ int) bool {
		_, ok := known[id]
		return !ok
	})
	if len(unknown) > 0 {
		return nil, &domain.ValidationError{Field: "ids", Message: "contains unknown anchors", Details: unknown}
	}

	if err = s.anchors.Reorder(ctx, ids); err != nil {
		return nil, err
	}
	return s.anchors.List(ctx)
}
