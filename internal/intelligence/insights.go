package intelligence

import (
	"context"
	"errors"
	"strings"

	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/llm"
)

// InsightsSummarizer derives a style profile from training examples.
type InsightsSummarizer interface {
	Summarize(ctx context.Context, examples []*domain.TrainingExample) (*domain.StyleInsights, error)
}

type insightsSummarizer struct {
	client llm.LLMClient
}

// NewInsightsSummarizer creates an InsightsSummarizer backed by an LLM client.
func NewInsightsSummarizer(client llm.LLMClient) InsightsSummarizer {
	return &insightsSummarizer{client: client}
}

// insightsAnswer uses pointers so a missing field is told apart from an
// empty one.
type insightsAnswer struct {
	VoiceAndTone       *string   `json:"voiceAndTone"`
	SignatureMoves     *[]string `json:"signatureMoves"`
	FacilitationFocus  *[]string `json:"facilitationFocus"`
	ReflectionPatterns *[]string `json:"reflectionPatterns"`
	MeasurementFocus   *[]string `json:"measurementFocus"`
}

func validateInsightsAnswer(a insightsAnswer) error {
	var missing []string
	if a.VoiceAndTone == nil || strings.TrimSpace(*a.VoiceAndTone) == "" {
		missing = append(missing, "voiceAndTone")
	}
	lists := []struct {
		name string
		val  *[]string
	}{
		{"signatureMoves", a.SignatureMoves},
		{"facilitationFocus", a.FacilitationFocus},
		{"reflectionPatterns", a.ReflectionPatterns},
		{"measurementFocus", a.MeasurementFocus},
	}
	for _, l := range lists {
		if l.val == nil {
			missing = append(missing, l.name)
		}
	}
	if len(missing) > 0 {
		return errors.New("missing " + strings.Join(missing, ", "))
	}
	return nil
}

func (s *insightsSummarizer) Summarize(ctx context.Context, examples []*domain.TrainingExample) (*domain.StyleInsights, error) {
	const op = "summarize insights"
	if len(examples) == 0 {
		return nil, &domain.GenerationError{Kind: domain.GenerationEmpty, Op: op, Err: errors.New("no training examples")}
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskInsights,
		SystemPrompt: insightsSystemPrompt,
		UserPrompt:   BuildInsightsPrompt(examples),
	})
	if err != nil {
		return nil, generationError(op, err)
	}

	answer, err := llm.ExtractJSON(resp.Text, validateInsightsAnswer)
	if err != nil {
		return nil, generationError(op, err)
	}
	return &domain.StyleInsights{
		VoiceAndTone:       strings.TrimSpace(*answer.VoiceAndTone),
		SignatureMoves:     *answer.SignatureMoves,
		FacilitationFocus:  *answer.FacilitationFocus,
		ReflectionPatterns: *answer.ReflectionPatterns,
		MeasurementFocus:   *answer.MeasurementFocus,
	}, nil
}
