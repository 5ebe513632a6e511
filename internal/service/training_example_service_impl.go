package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tzofim/peula/internal/cache"
	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/importer"
	"github.com/tzofim/peula/internal/intelligence"
	"github.com/tzofim/peula/internal/repository"
)

// DefaultInsightsTTL bounds how long a cached insights report is served.
const DefaultInsightsTTL = 6 * time.Hour

// TrainingExampleDeps wires a TrainingExampleService. Cache and Documents
// are optional.
type TrainingExampleDeps struct {
	Examples   repository.TrainingExampleRepo
	Summarizer intelligence.InsightsSummarizer
	Cache      cache.InsightsCache
	CacheTTL   time.Duration
	Documents  importer.DocumentSource
}

type trainingExampleService struct {
	deps     TrainingExampleDeps
	now      func() time.Time
	observer UseCaseObserver
}

func NewTrainingExampleService(deps TrainingExampleDeps, observers ...UseCaseObserver) TrainingExampleService {
	if deps.CacheTTL <= 0 {
		deps.CacheTTL = DefaultInsightsTTL
	}
	return &trainingExampleService{deps: deps, now: time.Now, observer: useCaseObserverOrNoop(observers)}
}

func (s *trainingExampleService) Create(ctx context.Context, title, content string, notes *string) (ex *domain.TrainingExample, err error) {
	fields := map[string]any{"title": title}
	defer observe(ctx, s.observer, "create-training-example", fields, &err)()

	ex = &domain.TrainingExample{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(title),
		Content:   strings.TrimSpace(content),
		Notes:     domain.OptionalString(domain.StringValue(notes)),
		CreatedAt: s.now().UTC(),
	}
	if err = ex.Validate(); err != nil {
		return nil, err
	}
	fields["example_id"] = ex.ID
	if err = s.deps.Examples.Create(ctx, ex); err != nil {
		return nil, err
	}
	return ex, nil
}

func (s *trainingExampleService) List(ctx context.Context) ([]*domain.TrainingExample, error) {
	return s.deps.Examples.List(ctx)
}

func (s *trainingExampleService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-training-example", map[string]any{"example_id": id}, &err)()
	return s.deps.Examples.Delete(ctx, id)
}

// Insights returns the style profile of all training examples. A report is
// cached under a fingerprint of the example set, so adding or deleting an
// example forces a recomputation.
func (s *trainingExampleService) Insights(ctx context.Context) (report *domain.InsightsReport, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "insights", fields, &err)()

	examples, err := s.deps.Examples.List(ctx)
	if err != nil {
		return nil, err
	}
	fields["examples"] = len(examples)
	if len(examples) == 0 {
		return &domain.InsightsReport{ExampleCount: 0}, nil
	}

	key := insightsFingerprint(examples)
	if s.deps.Cache != nil {
		cached, ok, cerr := s.deps.Cache.Get(ctx, key)
		if cerr == nil && ok {
			fields["cache"] = "hit"
			return cached, nil
		}
		if cerr != nil {
			fields["cache_error"] = cerr.Error()
		}
	}

	insights, err := s.deps.Summarizer.Summarize(ctx, examples)
	if err != nil {
		return nil, err
	}
	generatedAt := s.now().UTC()
	report = &domain.InsightsReport{
		Insights:     insights,
		GeneratedAt:  &generatedAt,
		ExampleCount: len(examples),
	}

	if s.deps.Cache != nil {
		fields["cache"] = "miss"
		if cerr := s.deps.Cache.Set(ctx, key, report, s.deps.CacheTTL); cerr != nil {
			fields["cache_error"] = cerr.Error()
		}
	}
	return report, nil
}

// insightsFingerprint identifies an example set by its size and newest id.
// examples must be newest first.
func insightsFingerprint(examples []*domain.TrainingExample) string {
	return fmt.Sprintf("%d:%s", len(examples), examples[0].ID)
}

func (s *trainingExampleService) ImportFromDocs(ctx context.Context, url string, notes *string) (ex *domain.TrainingExample, err error) {
	fields := map[string]any{"url": url}
	defer observe(ctx, s.observer, "import-from-docs", fields, &err)()

	docID, err := importer.ParseDocumentURL(url)
	if err != nil {
		return nil, err
	}
	fields["document_id"] = docID

	if s.deps.Documents == nil {
		err = &domain.ExternalServiceError{Service: "google docs", Message: "document service not configured"}
		return nil, err
	}
	doc, err := s.deps.Documents.FetchDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	if ex, err = importer.ToTrainingExample(doc, notes); err != nil {
		return nil, err
	}
	if err = s.deps.Examples.Create(ctx, ex); err != nil {
		return nil, err
	}
	fields["example_id"] = ex.ID
	return ex, nil
}
