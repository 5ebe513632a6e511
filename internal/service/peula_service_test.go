package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/llm"
	"github.com/tzofim/peula/internal/repository"
	"github.com/tzofim/peula/internal/testutil"
)

func TestGenerate_StoresCompletePeula(t *testing.T) {
	eachStore(t, func(t *testing.T, store *repository.Store) {
		h := newHarness(t, store)
		h.llm.Reply(llm.TaskPeulaGenerate, testutil.PeulaJSON("Trust Walk"))
		ctx := context.Background()

		q := testutil.NewTestQuestionnaire()
		q.AvailableMaterials = []string{" rope ", "", "blindfolds"}
		p, err := h.peulot.Generate(ctx, q)
		require.NoError(t, err)

		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "Trust Walk", p.Title)
		assert.Equal(t, []string{"rope", "blindfolds"}, p.AvailableMaterials)
		assert.Nil(t, p.SpecialConsiderations)
		require.Len(t, p.Content.Components, domain.SectionCount)
		for _, c := range p.Content.Components {
			assert.True(t, c.Complete())
		}

		stored, err := h.peulot.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.Content, stored.Content)
	})
}

func TestGenerate_InvalidQuestionnaireSkipsModel(t *testing.T) {
	h := newHarness(t, repository.NewMemoryStore())
	q := testutil.NewTestQuestionnaire()
	q.Topic = "  "
	q.Goals = ""

	_, err := h.peulot.Generate(context.Background(), q)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Details, "topic is required")
	assert.Contains(t, verr.Details, "goals is required")
	assert.Empty(t, h.llm.Requests)
}

func TestGenerate_PromptCarriesTemplateExamplesAndFeedback(t *testing.T) {
	h := newHarness(t, repository.NewMemoryStore())
	ctx := context.Background()

	for _, title := range []string{"Oldest", "Second", "Third", "Newest"} {
		require.NoError(t, h.store.TrainingExamples.Create(ctx, testutil.NewTestExample(title, "content of "+title)))
	}
	p := h.seedPeula(t, "Earlier")
	require.NoError(t, h.store.Feedback.Create(ctx, testutil.NewTestFeedback(p.ID, 4, "shorter debrief please")))

	h.llm.Reply(llm.TaskPeulaGenerate, testutil.PeulaJSON("With context"))
	_, err := h.peulot.Generate(ctx, testutil.NewTestQuestionnaire())
	require.NoError(t, err)

	reqs := h.llm.RequestsFor(llm.TaskPeulaGenerate)
	require.Len(t, reqs, 1)
	prompt := reqs[0].UserPrompt
	assert.Contains(t, prompt, "Leadership & Responsibility")
	assert.Contains(t, prompt, "Newest")
	assert.Contains(t, prompt, "Second")
	assert.NotContains(t, prompt, "Oldest")
	assert.Contains(t, prompt, "shorter debrief please")
}

func TestGenerate_CustomTemplateAndNoExamples(t *testing.T) {
	h := newHarness(t, repository.NewMemoryStore())
	h.llm.Reply(llm.TaskPeulaGenerate, testutil.PeulaJSON("Bare"))

	q := testutil.NewTestQuestionnaire()
	q.TemplateID = ""
	_, err := h.peulot.Generate(context.Background(), q)
	require.NoError(t, err)

	prompt := h.llm.RequestsFor(llm.TaskPeulaGenerate)[0].UserPrompt
	assert.NotContains(t, prompt, "## Template")
	assert.NotContains(t, prompt, "## Examples")
	assert.NotContains(t, prompt, "## Leader feedback")
}

func TestGenerate_BadAnswerStoresNothing(t *testing.T) {
	eachStore(t, func(t *testing.T, store *repository.Store) {
		h := newHarness(t, store)
		h.llm.Reply(llm.TaskPeulaGenerate, `{"title":"Short","components":[]}`)
		ctx := context.Background()

		_, err := h.peulot.Generate(ctx, testutil.NewTestQuestionnaire())
		var gerr *domain.GenerationError
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, domain.GenerationShapeMismatch, gerr.Kind)

		all, err := h.peulot.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestGenerate_TimeoutSurfacesAsTimeoutKind(t *testing.T) {
	h := newHarness(t, repository.NewMemoryStore())
	h.llm.Fail(llm.TaskPeulaGenerate, llm.ErrTimeout)

	_, err := h.peulot.Generate(context.Background(), testutil.NewTestQuestionnaire())
	assert.ErrorIs(t, err, domain.ErrGenerationTimeout)
}

func TestRegenerateSection_ReplacesOnlyTargetSection(t *testing.T) {
	eachStore(t, func(t *testing.T, store *repository.Store) {
		h := newHarness(t, store)
		ctx := context.Background()
		p := h.seedPeula(t, "Campfire")

		for idx := 0; idx < domain.SectionCount; idx++ {
			before, err := h.peulot.Get(ctx, p.ID)
			require.NoError(t, err)

			h.llm.Reply(llm.TaskSectionRegenerate, testutil.SectionJSON("fresh idea"))
			after, err := h.peulot.RegenerateSection(ctx, p.ID, idx)
			require.NoError(t, err)

			assert.Equal(t, before.Content.Components[idx].Component, after.Content.Components[idx].Component)
			assert.Equal(t, "fresh idea", after.Content.Components[idx].Description)
			assert.Equal(t, "15 min", after.Content.Components[idx].TimeStructure)
			for j := range after.Content.Components {
				if j != idx {
					assert.Equal(t, before.Content.Components[j], after.Content.Components[j])
				}
			}
		}
	})
}

func TestRegenerateSection_UsesSameSectionFeedbackFromOtherPeulot(t *testing.T) {
	eachStore(t, func(t *testing.T, store *repository.Store) {
		h := newHarness(t, store)
		ctx := context.Background()
		older := h.seedPeula(t, "Knots")
		target := h.seedPeula(t, "Campfire")

		_, err := h.feedback.Create(ctx, older.ID, 3, "Keep the challenge under ten minutes")
		require.NoError(t, err)
		_, err = h.feedback.Create(ctx, older.ID, 5, "Mention the scout law explicitly")
		require.NoError(t, err)

		h.llm.Reply(llm.TaskSectionRegenerate, testutil.SectionJSON("revised"))
		_, err = h.peulot.RegenerateSection(ctx, target.ID, 3)
		require.NoError(t, err)

		prompt := h.llm.RequestsFor(llm.TaskSectionRegenerate)[0].UserPrompt
		assert.Contains(t, prompt, "Keep the challenge under ten minutes")
		assert.NotContains(t, prompt, "Mention the scout law explicitly")
	})
}

func TestRegenerateSection_RejectsOutOfRangeIndex(t *testing.T) {
	h := newHarness(t, repository.NewMemoryStore())
	p := h.seedPeula(t, "Range")

	for _, idx := range []int{-1, domain.SectionCount} {
		_, err := h.peulot.RegenerateSection(context.Background(), p.ID, idx)
		var verr *domain.ValidationError
		assert.True(t, errors.As(err, &verr), "index %d", idx)
	}
	assert.Empty(t, h.llm.Requests)
}

func TestRegenerateSection_UnknownPeula(t *testing.T) {
	h := newHarness(t, repository.NewMemoryStore())
	_, err := h.peulot.RegenerateSection(context.Background(), "missing", 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, h.llm.Requests)
}

func TestRegenerateSection_GenerationFailureLeavesContent(t *testing.T) {
	h := newHarness(t, repository.NewMemoryStore())
	p := h.seedPeula(t, "Stable")
	h.llm.Reply(llm.TaskSectionRegenerate, `{"description":"only this"}`)

	_, err := h.peulot.RegenerateSection(context.Background(), p.ID, 1)
	var gerr *domain.GenerationError
	require.True(t, errors.As(err, &gerr))

	stored, err := h.peulot.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Content, stored.Content)
}

func TestRegenerateSection_ConcurrentDifferentSectionsBothLand(t *testing.T) {
	eachStore(t, func(t *testing.T, store *repository.Store) {
		h := newHarness(t, store)
		ctx := context.Background()
		p := h.seedPeula(t, "Parallel")
		h.llm.Default[llm.TaskSectionRegenerate] = testutil.SectionJSON("parallel rewrite")

		indices := []int{1, 3, 6}
		var wg sync.WaitGroup
		errs := make(chan error, len(indices))
		for _, idx := range indices {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				_, err := h.peulot.RegenerateSection(ctx, p.ID, idx)
				errs <- err
			}(idx)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		stored, err := h.peulot.Get(ctx, p.ID)
		require.NoError(t, err)
		for i, c := range stored.Content.Components {
			if i == 1 || i == 3 || i == 6 {
				assert.Equal(t, "parallel rewrite", c.Description)
			} else {
				assert.Equal(t, p.Content.Components[i], c)
			}
		}
	})
}

func TestEndToEnd_FeedbackReachesSecondRegeneration(t *testing.T) {
	eachStore(t, func(t *testing.T, store *repository.Store) {
		h := newHarness(t, store)
		ctx := context.Background()

		_, err := h.examples.Create(ctx, "Night orienteering", "EXAMPLE-TEXT-ALPHA walk by the stars", nil)
		require.NoError(t, err)
		_, err = h.examples.Create(ctx, "Knots relay", "EXAMPLE-TEXT-BETA relay race with knots", nil)
		require.NoError(t, err)

		h.llm.Reply(llm.TaskPeulaGenerate, testutil.PeulaJSON("Stars"))
		p, err := h.peulot.Generate(ctx, testutil.NewTestQuestionnaire())
		require.NoError(t, err)
		genPrompt := h.llm.RequestsFor(llm.TaskPeulaGenerate)[0].UserPrompt
		assert.Contains(t, genPrompt, "EXAMPLE-TEXT-ALPHA")

		h.llm.Reply(llm.TaskSectionRegenerate, testutil.SectionJSON("first pass"))
		_, err = h.peulot.RegenerateSection(ctx, p.ID, 3)
		require.NoError(t, err)

		_, err = h.feedback.Create(ctx, p.ID, 3, "Use a game the kids already know")
		require.NoError(t, err)

		h.llm.Reply(llm.TaskSectionRegenerate, testutil.SectionJSON("second pass"))
		updated, err := h.peulot.RegenerateSection(ctx, p.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, "second pass", updated.Content.Components[3].Description)

		sectionReqs := h.llm.RequestsFor(llm.TaskSectionRegenerate)
		require.Len(t, sectionReqs, 2)
		second := sectionReqs[1].UserPrompt
		assert.Contains(t, second, "Use a game the kids already know")
		assert.False(t, strings.Contains(second, "EXAMPLE-TEXT-ALPHA") || strings.Contains(second, "EXAMPLE-TEXT-BETA"))
		assert.NotContains(t, sectionReqs[0].UserPrompt, "Use a game the kids already know")
	})
}

func TestDelete_CascadesFeedback(t *testing.T) {
	eachStore(t, func(t *testing.T, store *repository.Store) {
		h := newHarness(t, store)
		ctx := context.Background()
		p := h.seedPeula(t, "Gone")
		_, err := h.feedback.Create(ctx, p.ID, 0, "x")
		require.NoError(t, err)

		require.NoError(t, h.peulot.Delete(ctx, p.ID))

		_, err = h.peulot.Get(ctx, p.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		fb, err := h.feedback.ListForPeula(ctx, p.ID)
		require.NoError(t, err)
		assert.Empty(t, fb)
	})
}

func TestExport(t *testing.T) {
	h := newHarness(t, repository.NewMemoryStore())
	ctx := context.Background()
	p := h.seedPeula(t, "To docs")

	url, err := h.peulot.Export(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://docs.google.com/document/d/exported-"+p.ID+"/edit", url)
	require.Len(t, h.exporter.exported, 1)
	assert.Equal(t, p.Title, h.exporter.exported[0].Title)

	_, err = h.peulot.Export(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExport_ExporterErrorPassesThrough(t *testing.T) {
	h := newHarness(t, repository.NewMemoryStore())
	p := h.seedPeula(t, "Broken")
	h.exporter.err = &domain.ExternalServiceError{Service: "google docs", Message: "template not found"}

	_, err := h.peulot.Export(context.Background(), p.ID)
	var ext *domain.ExternalServiceError
	require.True(t, errors.As(err, &ext))
	assert.Equal(t, "template not found", ext.Message)
}
