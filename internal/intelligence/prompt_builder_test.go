package intelligence

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/template"
	"github.com/tzofim/peula/internal/testutil"
)

func TestBuildGenerationPrompt_OmitsEmptyBlocks(t *testing.T) {
	prompt := BuildGenerationPrompt(GenerationInput{Questionnaire: testutil.NewTestQuestionnaire()})

	assert.Contains(t, prompt, "Topic: Leadership")
	assert.Contains(t, prompt, "Available materials: rope, markers")
	assert.NotContains(t, prompt, "## Examples")
	assert.NotContains(t, prompt, "## Leader feedback")
	assert.NotContains(t, prompt, "## Template")
	assert.NotContains(t, prompt, "Special considerations")
	assert.Contains(t, prompt, "## Methodology")
	assert.Contains(t, prompt, `"components" must contain exactly 9 objects`)
}

func TestBuildGenerationPrompt_BlockOrder(t *testing.T) {
	tpl := &template.Template{ID: "leadership", Name: "Leadership & Responsibility", Description: "Patrol leaders decide."}
	q := testutil.NewTestQuestionnaire()
	q.SpecialConsiderations = "two new scouts"
	prompt := BuildGenerationPrompt(GenerationInput{
		Questionnaire: q,
		Template:      tpl,
		Examples:      []*domain.TrainingExample{testutil.NewTestExample("Campfire", "Sing and tell stories")},
		Feedback:      []*domain.Feedback{testutil.NewTestFeedback("p1", 0, "goal was vague")},
	})

	order := []string{"## Peula details", "## Template", "## Examples", "## Leader feedback", "## Methodology", "## Output format"}
	last := -1
	for _, marker := range order {
		idx := strings.Index(prompt, marker)
		require.NotEqual(t, -1, idx, "missing %s", marker)
		assert.Greater(t, idx, last, "%s out of order", marker)
		last = idx
	}
	assert.Contains(t, prompt, `"Leadership & Responsibility" template`)
	assert.Contains(t, prompt, "Special considerations: two new scouts")
}

func TestBuildGenerationPrompt_ExamplesCappedAndTruncated(t *testing.T) {
	long := strings.Repeat("א", 1500)
	notes := "used at summer camp"
	examples := []*domain.TrainingExample{
		testutil.NewTestExample("Newest", long),
		testutil.NewTestExample("Second", "short text"),
		testutil.NewTestExample("Third", strings.Repeat("b", 1000)),
		testutil.NewTestExample("Fourth", "never shown"),
	}
	examples[1].Notes = &notes

	prompt := BuildGenerationPrompt(GenerationInput{Questionnaire: testutil.NewTestQuestionnaire(), Examples: examples})

	assert.Contains(t, prompt, "### Example 1: Newest")
	assert.Contains(t, prompt, strings.Repeat("א", 1000)+"...")
	assert.NotContains(t, prompt, strings.Repeat("א", 1001))
	assert.Contains(t, prompt, "### Example 2: Second\nshort text\nNotes: used at summer camp")
	// Exactly 1000 characters is not truncated.
	assert.Contains(t, prompt, strings.Repeat("b", 1000)+"\n")
	assert.NotContains(t, prompt, strings.Repeat("b", 1000)+"...")
	assert.NotContains(t, prompt, "Fourth")
	assert.Equal(t, 3, strings.Count(prompt, "### Example "))
}

func TestBuildGenerationPrompt_FeedbackGroupedAndCapped(t *testing.T) {
	var feedback []*domain.Feedback
	for i := 1; i <= 7; i++ {
		feedback = append(feedback, testutil.NewTestFeedback("p1", 3, fmt.Sprintf("core note %d", i)))
	}
	feedback = append(feedback, testutil.NewTestFeedback("p2", 8, "debrief ran long"))

	prompt := BuildGenerationPrompt(GenerationInput{Questionnaire: testutil.NewTestQuestionnaire(), Feedback: feedback})

	assert.Contains(t, prompt, "### 4. Core Activity")
	assert.Contains(t, prompt, "### 9. Reflection & Debrief\n- debrief ran long")
	assert.NotContains(t, prompt, "### 1. Topic & Educational Goal")
	assert.NotContains(t, prompt, "core note 1\n")
	assert.NotContains(t, prompt, "core note 2\n")
	for i := 3; i <= 7; i++ {
		assert.Contains(t, prompt, fmt.Sprintf("- core note %d", i))
	}
	assert.Less(t, strings.Index(prompt, "### 4. Core Activity"), strings.Index(prompt, "### 9. Reflection"))
}

func TestBuildSectionPrompt_ScopedFeedbackNoExamples(t *testing.T) {
	p := testutil.NewTestPeula("Ropes")
	feedback := []*domain.Feedback{
		testutil.NewTestFeedback(p.ID, 3, "needs more movement"),
		testutil.NewTestFeedback(p.ID, 4, "discussion too abstract"),
	}

	prompt := BuildSectionPrompt(SectionInput{
		SectionIndex: 3,
		SectionName:  p.Content.Components[3].Component,
		Context:      p.Context(),
		Feedback:     feedback,
	})

	assert.Contains(t, prompt, `section 4 ("4. Core Activity")`)
	assert.Contains(t, prompt, "- needs more movement")
	assert.NotContains(t, prompt, "discussion too abstract")
	assert.NotContains(t, prompt, "## Examples")
	assert.Contains(t, prompt, `"timeStructure"`)
}

func TestBuildSectionPrompt_NoFeedbackBlockWhenEmpty(t *testing.T) {
	prompt := BuildSectionPrompt(SectionInput{SectionIndex: 0, Context: testutil.NewTestPeula("x").Context()})
	assert.NotContains(t, prompt, "## Leader feedback")
	assert.Contains(t, prompt, `"1. Topic & Educational Goal"`)
}

func TestBuildInsightsPrompt_IncludesEveryExample(t *testing.T) {
	examples := []*domain.TrainingExample{
		testutil.NewTestExample("One", "first text"),
		testutil.NewTestExample("Two", "second text"),
		testutil.NewTestExample("Three", "third text"),
		testutil.NewTestExample("Four", "fourth text"),
	}
	prompt := BuildInsightsPrompt(examples)
	assert.Contains(t, prompt, "Here are 4 peulot")
	assert.Contains(t, prompt, "### Peula 4: Four\nfourth text")
	assert.Contains(t, prompt, `"measurementFocus"`)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "abc", Excerpt("abc", 3))
	assert.Equal(t, "ab...", Excerpt("abc", 2))
	assert.Equal(t, "שלו...", Excerpt("שלום", 3))
}
