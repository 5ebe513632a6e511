package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tzofim/peula/internal/cache"
	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/importer"
	"github.com/tzofim/peula/internal/intelligence"
	"github.com/tzofim/peula/internal/repository"
	"github.com/tzofim/peula/internal/template"
	"github.com/tzofim/peula/internal/testutil"
)

// eachStore runs fn against the in-memory and the SQLite backends.
func eachStore(t *testing.T, fn func(t *testing.T, store *repository.Store)) {
	t.Helper()
	t.Run("memory", func(t *testing.T) { fn(t, repository.NewMemoryStore()) })
	t.Run("sqlite", func(t *testing.T) { fn(t, testutil.NewTestStore(t)) })
}

type fakeExporter struct {
	exported []*domain.Peula
	err      error
}

func (f *fakeExporter) Export(_ context.Context, p *domain.Peula) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.exported = append(f.exported, p)
	return "https://docs.google.com/document/d/exported-" + p.ID + "/edit", nil
}

type fakeDocuments struct {
	docs  map[string]*importer.ImportedDocument
	calls int
}

func (f *fakeDocuments) FetchDocument(_ context.Context, id string) (*importer.ImportedDocument, error) {
	f.calls++
	doc, ok := f.docs[id]
	if !ok {
		return nil, &domain.ExternalServiceError{Service: "google docs", Message: "document not found"}
	}
	return doc, nil
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

// named returns the recorded events for one use case, oldest first.
func (o *recordingObserver) named(name string) []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range o.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// harness wires every service over one store and one fake model.
type harness struct {
	store     *repository.Store
	llm       *testutil.FakeLLM
	exporter  *fakeExporter
	documents *fakeDocuments
	events    *recordingObserver
	peulot    PeulaService
	feedback  FeedbackService
	examples  TrainingExampleService
	anchors   AnchorService
}

func newHarness(t *testing.T, store *repository.Store) *harness {
	t.Helper()
	catalog, err := template.Builtin()
	require.NoError(t, err)

	h := &harness{
		store:     store,
		llm:       testutil.NewFakeLLM(),
		exporter:  &fakeExporter{},
		documents: &fakeDocuments{docs: map[string]*importer.ImportedDocument{}},
		events:    &recordingObserver{},
	}
	h.peulot = NewPeulaService(store.Peulot, store.Feedback, store.TrainingExamples, catalog,
		intelligence.NewPeulaGenerator(h.llm), h.exporter, h.events)
	h.feedback = NewFeedbackService(store.Feedback, store.Peulot, h.events)
	h.examples = NewTrainingExampleService(TrainingExampleDeps{
		Examples:   store.TrainingExamples,
		Summarizer: intelligence.NewInsightsSummarizer(h.llm),
		Cache:      cache.NewMemoryCache(),
		Documents:  h.documents,
	}, h.events)
	h.anchors = NewAnchorService(store.Anchors, h.events)
	return h
}

// seedPeula stores a fixture peula directly.
func (h *harness) seedPeula(t *testing.T, title string) *domain.Peula {
	t.Helper()
	p := testutil.NewTestPeula(title)
	require.NoError(t, h.store.Peulot.Create(context.Background(), p))
	return p
}
