package intelligence

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/template"
)

const (
	// MaxPromptExamples bounds how many training examples a generation prompt
	// carries.
	MaxPromptExamples = 3
	// ExampleExcerptChars bounds each training example excerpt, in characters.
	ExampleExcerptChars = 1000
	// FeedbackPerSection bounds the feedback lines kept per section.
	FeedbackPerSection = 5
	// insightsExcerptChars bounds each example in the insights prompt.
	insightsExcerptChars = 3000

	ellipsis = "..."
)

// GenerationInput is everything folded into a full-generation prompt.
type GenerationInput struct {
	Questionnaire domain.QuestionnaireResponse
	// Template is the resolved catalog entry; nil means "custom".
	Template *template.Template
	// Examples in store order (newest first); only the first few are used.
	Examples []*domain.TrainingExample
	// Feedback across all peulot, oldest first.
	Feedback []*domain.Feedback
}

// SectionInput is everything folded into a section-regeneration prompt.
type SectionInput struct {
	SectionIndex int
	SectionName  string
	Context      domain.PeulaContext
	// Feedback for the peula, oldest first. Entries for other sections are
	// ignored.
	Feedback []*domain.Feedback
}

// BuildGenerationPrompt assembles the user prompt for full peula generation.
// Blocks with nothing to say are left out entirely.
func BuildGenerationPrompt(in GenerationInput) string {
	q := in.Questionnaire
	blocks := []string{
		"Create a complete peula for the group described below.",
		detailsBlock(q.Topic, q.AgeGroup, q.Duration, q.GroupSize, q.Goals, q.AvailableMaterials, q.SpecialConsiderations),
		templateBlock(in.Template),
		examplesBlock(in.Examples),
		feedbackBlock(in.Feedback),
		methodologyGuidance,
		peulaOutputShape,
	}
	return joinBlocks(blocks)
}

// BuildSectionPrompt assembles the user prompt for regenerating one section.
// Training examples are never part of it.
func BuildSectionPrompt(in SectionInput) string {
	name := strings.TrimSpace(in.SectionName)
	if name == "" {
		name = domain.SectionLabel(in.SectionIndex)
	}
	c := in.Context
	scoped := lo.Filter(in.Feedback, func(f *domain.Feedback, _ int) bool {
		return f.ComponentIndex == in.SectionIndex
	})

	blocks := []string{
		fmt.Sprintf("Rewrite section %d (%q) of an existing peula. Only this section changes.", in.SectionIndex+1, name),
		detailsBlock(c.Topic, c.AgeGroup, c.Duration, c.GroupSize, c.Goals, c.AvailableMaterials, c.SpecialConsiderations),
		sectionFeedbackBlock(scoped),
		sectionOutputShape,
	}
	return joinBlocks(blocks)
}

// BuildInsightsPrompt assembles the user prompt asking for a style profile of
// all training examples.
func BuildInsightsPrompt(examples []*domain.TrainingExample) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are %d peulot written by our team.\n", len(examples))
	for i, ex := range examples {
		fmt.Fprintf(&b, "\n### Peula %d: %s\n%s\n", i+1, ex.Title, Excerpt(ex.Content, insightsExcerptChars))
		if notes := domain.StringValue(ex.Notes); strings.TrimSpace(notes) != "" {
			fmt.Fprintf(&b, "Leader notes: %s\n", notes)
		}
	}
	return joinBlocks([]string{
		b.String(),
		"Describe the shared style of these peulot.",
		insightsOutputShape,
	})
}

// Excerpt returns at most max characters of s, marking a cut with "...".
func Excerpt(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + ellipsis
}

func detailsBlock(topic, ageGroup, duration, groupSize, goals string, materials []string, considerations string) string {
	var b strings.Builder
	b.WriteString("## Peula details\n")
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	fmt.Fprintf(&b, "Age group: %s\n", ageGroup)
	fmt.Fprintf(&b, "Duration: %s\n", duration)
	fmt.Fprintf(&b, "Group size: %s\n", groupSize)
	fmt.Fprintf(&b, "Goals: %s\n", goals)
	items := lo.Compact(lo.Map(materials, func(m string, _ int) string { return strings.TrimSpace(m) }))
	if len(items) > 0 {
		fmt.Fprintf(&b, "Available materials: %s\n", strings.Join(items, ", "))
	} else {
		b.WriteString("Available materials: none specified\n")
	}
	if strings.TrimSpace(considerations) != "" {
		fmt.Fprintf(&b, "Special considerations: %s\n", considerations)
	}
	return b.String()
}

func templateBlock(t *template.Template) string {
	if t == nil {
		return ""
	}
	note := fmt.Sprintf("## Template\nThis peula follows the %q template.", t.Name)
	if t.Description != "" {
		note += " " + t.Description
	}
	return note
}

func examplesBlock(examples []*domain.TrainingExample) string {
	picked := lo.Slice(examples, 0, MaxPromptExamples)
	if len(picked) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Examples of our peulot (match their style)\n")
	for i, ex := range picked {
		fmt.Fprintf(&b, "\n### Example %d: %s\n%s\n", i+1, ex.Title, Excerpt(ex.Content, ExampleExcerptChars))
		if notes := domain.StringValue(ex.Notes); strings.TrimSpace(notes) != "" {
			fmt.Fprintf(&b, "Notes: %s\n", notes)
		}
	}
	return b.String()
}

func feedbackBlock(feedback []*domain.Feedback) string {
	bySection := lo.GroupBy(feedback, func(f *domain.Feedback) int { return f.ComponentIndex })
	var b strings.Builder
	for i := 0; i < domain.SectionCount; i++ {
		entries := lastN(bySection[i], FeedbackPerSection)
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n### %s\n", domain.SectionLabel(i))
		for _, f := range entries {
			fmt.Fprintf(&b, "- %s\n", strings.TrimSpace(f.Comment))
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "## Leader feedback from earlier peulot (apply it)\n" + b.String()
}

func sectionFeedbackBlock(feedback []*domain.Feedback) string {
	entries := lastN(feedback, FeedbackPerSection)
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Leader feedback on this section (address it)\n")
	for _, f := range entries {
		fmt.Fprintf(&b, "- %s\n", strings.TrimSpace(f.Comment))
	}
	return b.String()
}

// lastN keeps the n most recent entries of an oldest-first list.
func lastN(feedback []*domain.Feedback, n int) []*domain.Feedback {
	return lo.Slice(feedback, len(feedback)-n, len(feedback))
}

func joinBlocks(blocks []string) string {
	kept := lo.Filter(blocks, func(s string, _ int) bool { return strings.TrimSpace(s) != "" })
	trimmed := lo.Map(kept, func(s string, _ int) string { return strings.TrimRight(s, "\n") })
	return strings.Join(trimmed, "\n\n")
}
