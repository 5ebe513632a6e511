package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/llm"
)

// GeneratedPeula is a validated full-generation answer.
type GeneratedPeula struct {
	Title   string
	Content domain.PeulaContent
}

// PeulaGenerator turns assembled prompts into validated peula content.
type PeulaGenerator interface {
	// GeneratePeula produces a title and exactly nine complete components.
	GeneratePeula(ctx context.Context, in GenerationInput) (*GeneratedPeula, error)

	// RegenerateSection produces a replacement body for one section.
	RegenerateSection(ctx context.Context, in SectionInput) (*domain.SectionRevision, error)
}

type peulaGenerator struct {
	client llm.LLMClient
}

// NewPeulaGenerator creates a PeulaGenerator backed by an LLM client.
func NewPeulaGenerator(client llm.LLMClient) PeulaGenerator {
	return &peulaGenerator{client: client}
}

// peulaAnswer mirrors the expected full-generation JSON.
type peulaAnswer struct {
	Title      *string                 `json:"title"`
	Components []domain.PeulaComponent `json:"components"`
}

func validatePeulaAnswer(a peulaAnswer) error {
	if a.Title == nil || strings.TrimSpace(*a.Title) == "" {
		return errors.New("title is missing")
	}
	if a.Components == nil {
		return errors.New("components is not an array")
	}
	if len(a.Components) != domain.SectionCount {
		return fmt.Errorf("expected %d components, got %d", domain.SectionCount, len(a.Components))
	}
	for i, c := range a.Components {
		if !c.Complete() {
			return fmt.Errorf("component %d has empty fields", i)
		}
	}
	return nil
}

func validateSectionRevision(r domain.SectionRevision) error {
	var missing []string
	if strings.TrimSpace(r.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(r.BestPractices) == "" {
		missing = append(missing, "bestPractices")
	}
	if strings.TrimSpace(r.TimeStructure) == "" {
		missing = append(missing, "timeStructure")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return nil
}

func (g *peulaGenerator) GeneratePeula(ctx context.Context, in GenerationInput) (*GeneratedPeula, error) {
	const op = "generate peula"
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskPeulaGenerate,
		SystemPrompt: peulaSystemPrompt,
		UserPrompt:   BuildGenerationPrompt(in),
	})
	if err != nil {
		return nil, generationError(op, err)
	}

	answer, err := llm.ExtractJSON(resp.Text, validatePeulaAnswer)
	if err != nil {
		return nil, generationError(op, err)
	}

	return &GeneratedPeula{
		Title:   strings.TrimSpace(*answer.Title),
		Content: domain.PeulaContent{Components: answer.Components},
	}, nil
}

func (g *peulaGenerator) RegenerateSection(ctx context.Context, in SectionInput) (*domain.SectionRevision, error) {
	const op = "regenerate section"
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSectionRegenerate,
		SystemPrompt: sectionSystemPrompt,
		UserPrompt:   BuildSectionPrompt(in),
	})
	if err != nil {
		return nil, generationError(op, err)
	}

	rev, err := llm.ExtractJSON(resp.Text, validateSectionRevision)
	if err != nil {
		return nil, generationError(op, err)
	}
	return &rev, nil
}

// generationError classifies an llm failure into the domain taxonomy.
func generationError(op string, err error) *domain.GenerationError {
	kind := domain.GenerationFailed
	switch {
	case errors.Is(err, llm.ErrTimeout):
		kind = domain.GenerationTimeout
	case errors.Is(err, llm.ErrEmptyResponse):
		kind = domain.GenerationEmpty
	case errors.Is(err, llm.ErrInvalidOutput):
		kind = domain.GenerationUnparseable
	case errors.Is(err, llm.ErrShapeMismatch):
		kind = domain.GenerationShapeMismatch
	}
	return &domain.GenerationError{Kind: kind, Op: op, Err: err}
}
