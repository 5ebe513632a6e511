package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_TaskBudgets(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 4000, cfg.Tasks[TaskPeulaGenerate].MaxTokens)
	assert.Equal(t, 1200, cfg.Tasks[TaskSectionRegenerate].MaxTokens)
	assert.Equal(t, 1500, cfg.Tasks[TaskInsights].MaxTokens)
	for _, task := range []TaskType{TaskPeulaGenerate, TaskSectionRegenerate, TaskInsights} {
		assert.Equal(t, cfg.TimeoutMs, cfg.TaskTimeout(task), "task %s", task)
	}
}

func TestLoadConfig_ProviderSelectsKeyAndModel(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "Anthropic")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("ANTHROPIC_API_KEY", "ak-test")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := LoadConfig()

	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, DefaultModel(ProviderAnthropic), cfg.Model)
	assert.Equal(t, "ak-test", cfg.APIKey)
}

func TestLoadConfig_TaskTimeoutOverrides(t *testing.T) {
	t.Setenv("LLM_TIMEOUT_MS", "9000")
	t.Setenv("LLM_GENERATE_TIMEOUT_MS", "15000")
	t.Setenv("LLM_INSIGHTS_TIMEOUT_MS", "7000")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 15000, cfg.TaskTimeout(TaskPeulaGenerate))
	assert.Equal(t, 7000, cfg.TaskTimeout(TaskInsights))
	assert.Equal(t, 9000, cfg.TaskTimeout(TaskSectionRegenerate))
}

func TestLoadConfig_InvalidTaskTimeoutOverrideIgnored(t *testing.T) {
	t.Setenv("LLM_TIMEOUT_MS", "45000")
	t.Setenv("LLM_SECTION_TIMEOUT_MS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, 45000, cfg.TaskTimeout(TaskSectionRegenerate))
}

func TestLoadConfig_GlobalTimeoutReachesEveryTask(t *testing.T) {
	t.Setenv("LLM_TIMEOUT_MS", "30000")

	cfg := LoadConfig()

	assert.Equal(t, 30000, cfg.TaskTimeout(TaskPeulaGenerate))
	assert.Equal(t, 30000, cfg.TaskTimeout(TaskSectionRegenerate))
	assert.Equal(t, 30000, cfg.TaskTimeout(TaskInsights))
}

func TestTaskTimeout_FallsBackToGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeoutMs = 1234
	assert.Equal(t, 1234, cfg.TaskTimeout(TaskType("unknown")))
}
