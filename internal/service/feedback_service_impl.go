package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/repository"
)

type feedbackService struct {
	feedback repository.FeedbackRepo
	peulot   repository.PeulaRepo
	observer UseCaseObserver
}

func NewFeedbackService(feedback repository.FeedbackRepo, peulot repository.PeulaRepo, observers ...UseCaseObserver) FeedbackService {
	return &feedbackService{feedback: feedback, peulot: peulot, observer: useCaseObserverOrNoop(observers)}
}

func (s *feedbackService) Create(ctx context.Context, peulaID string, componentIndex int, comment string) (f *domain.Feedback, err error) {
	fields := map[string]any{"peula_id": peulaID, "component_index": componentIndex}
	defer observe(ctx, s.observer, "create-feedback", fields, &err)()

	f = &domain.Feedback{
		ID:             uuid.New().String(),
		PeulaID:        strings.TrimSpace(peulaID),
		ComponentIndex: componentIndex,
		Comment:        strings.TrimSpace(comment),
		CreatedAt:      time.Now().UTC(),
	}
	if err = f.Validate(); err != nil {
		return nil, err
	}
	if _, err = s.peulot.GetByID(ctx, f.PeulaID); err != nil {
		return nil, err
	}
	if err = s.feedback.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *feedbackService) ListForPeula(ctx context.Context, peulaID string) ([]*domain.Feedback, error) {
	return s.feedback.ListByPeula(ctx, peulaID)
}

func (s *feedbackService) ListAll(ctx context.Context) ([]*domain.Feedback, error) {
	return s.feedback.ListAll(ctx)
}

func (s *feedbackService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-feedback", map[string]any{"feedback_id": id}, &err)()
	return s.feedback.Delete(ctx, id)
}
