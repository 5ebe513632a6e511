package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/intelligence"
	"github.com/tzofim/peula/internal/repository"
	"github.com/tzofim/peula/internal/template"
)

type peulaService struct {
	peulot    repository.PeulaRepo
	feedback  repository.FeedbackRepo
	examples  repository.TrainingExampleRepo
	catalog   *template.Catalog
	generator intelligence.PeulaGenerator
	exporter  DocumentExporter
	observer  UseCaseObserver
}

func NewPeulaService(
	peulot repository.PeulaRepo,
	feedback repository.FeedbackRepo,
	examples repository.TrainingExampleRepo,
	catalog *template.Catalog,
	generator intelligence.PeulaGenerator,
	exporter DocumentExporter,
	observers ...UseCaseObserver,
) PeulaService {
	return &peulaService{
		peulot:    peulot,
		feedback:  feedback,
		examples:  examples,
		catalog:   catalog,
		generator: generator,
		exporter:  exporter,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *peulaService) Generate(ctx context.Context, q domain.QuestionnaireResponse) (p *domain.Peula, err error) {
	fields := map[string]any{"template": q.EffectiveTemplateID(), "topic": q.Topic}
	defer observe(ctx, s.observer, "generate-peula", fields, &err)()

	if err = q.Validate(); err != nil {
		return nil, err
	}

	in := intelligence.GenerationInput{Questionnaire: q}
	if s.catalog != nil {
		if t, ok := s.catalog.Resolve(q.EffectiveTemplateID()); ok {
			in.Template = &t
		}
	}
	if in.Examples, err = s.examples.List(ctx); err != nil {
		return nil, err
	}
	if in.Feedback, err = s.feedback.ListAll(ctx); err != nil {
		return nil, err
	}
	fields["examples"] = len(in.Examples)
	fields["feedback"] = len(in.Feedback)

	var generated *intelligence.GeneratedPeula
	generated, err = s.generator.GeneratePeula(ctx, in)
	if err != nil {
		return nil, err
	}

	p = &domain.Peula{
		ID:                    uuid.New().String(),
		Title:                 generated.Title,
		Topic:                 strings.TrimSpace(q.Topic),
		AgeGroup:              strings.TrimSpace(q.AgeGroup),
		Duration:              strings.TrimSpace(q.Duration),
		GroupSize:             strings.TrimSpace(q.GroupSize),
		Goals:                 strings.TrimSpace(q.Goals),
		AvailableMaterials:    cleanMaterials(q.AvailableMaterials),
		SpecialConsiderations: domain.OptionalString(q.SpecialConsiderations),
		Content:               generated.Content,
		CreatedAt:             time.Now().UTC(),
	}
	if err = s.peulot.Create(ctx, p); err != nil {
		return nil, err
	}
	fields["peula_id"] = p.ID
	return p, nil
}

// cleanMaterials trims entries and drops blanks. The result is never nil.
func cleanMaterials(materials []string) []string {
	out := lo.Compact(lo.Map(materials, func(m string, _ int) string {
		return strings.TrimSpace(m)
	}))
	if out == nil {
		return []string{}
	}
	return out
}

func (s *peulaService) Get(ctx context.Context, id string) (*domain.Peula, error) {
	return s.peulot.GetByID(ctx, id)
}

func (s *peulaService) List(ctx context.Context) ([]*domain.Peula, error) {
	return s.peulot.List(ctx)
}

func (s *peulaService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-peula", map[string]any{"peula_id": id}, &err)()
	return s.peulot.Delete(ctx, id)
}

func (s *peulaService) RegenerateSection(ctx context.Context, id string, sectionIndex int) (p *domain.Peula, err error) {
	fields := map[string]any{"peula_id": id, "section_index": sectionIndex}
	defer observe(ctx, s.observer, "regenerate-section", fields, &err)()

	if err = domain.ValidateSectionIndex("sectionIndex", sectionIndex); err != nil {
		return nil, err
	}

	var current *domain.Peula
	if current, err = s.peulot.GetByID(ctx, id); err != nil {
		return nil, err
	}
	// Feedback on this section index from every peula informs the rewrite;
	// the prompt builder does the index filtering.
	var feedback []*domain.Feedback
	if feedback, err = s.feedback.ListAll(ctx); err != nil {
		return nil, err
	}

	// No lock is held here; the model call can take a while.
	var rev *domain.SectionRevision
	rev, err = s.generator.RegenerateSection(ctx, intelligence.SectionInput{
		SectionIndex: sectionIndex,
		SectionName:  domain.SectionName(sectionIndex),
		Context:      current.Context(),
		Feedback:     feedback,
	})
	if err != nil {
		return nil, err
	}

	// The mutator runs against the row as stored at write time, so a
	// concurrent revision of another section is not lost.
	return s.peulot.UpdateContent(ctx, id, func(c *domain.PeulaContent) error {
		return domain.ApplySectionRevision(c, sectionIndex, *rev)
	})
}

func (s *peulaService) Export(ctx context.Context, id string) (url string, err error) {
	fields := map[string]any{"peula_id": id}
	defer observe(ctx, s.observer, "export-peula", fields, &err)()

	var p *domain.Peula
	if p, err = s.peulot.GetByID(ctx, id); err != nil {
		return "", err
	}
	if s.exporter == nil {
		err = &domain.ExternalServiceError{Service: "google docs", Message: "document service not configured"}
		return "", err
	}
	if url, err = s.exporter.Export(ctx, p); err != nil {
		return "", err
	}
	fields["url"] = url
	return url, nil
}
