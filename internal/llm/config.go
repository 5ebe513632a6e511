package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskPeulaGenerate     TaskType = "peula_generate"
	TaskSectionRegenerate TaskType = "section_regenerate"
	TaskInsights          TaskType = "insights"
)

// Provider names a generation backend.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderOllama    Provider = "ollama"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides LLMConfig.TimeoutMs if > 0; unset by default
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Provider  Provider
	Endpoint  string // base URL; empty uses the provider default
	Model     string
	APIKey    string
	LogCalls  bool
	TimeoutMs int
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults for the OpenAI
// provider.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:  ProviderOpenAI,
		Model:     DefaultModel(ProviderOpenAI),
		LogCalls:  true,
		TimeoutMs: 120000,
		Tasks: map[TaskType]TaskConfig{
			TaskPeulaGenerate:     {Temperature: 0.7, MaxTokens: 4000},
			TaskSectionRegenerate: {Temperature: 0.7, MaxTokens: 1200},
			TaskInsights:          {Temperature: 0.4, MaxTokens: 1500},
		},
	}
}

// DefaultModel returns the model used when LLM_MODEL is unset.
func DefaultModel(p Provider) string {
	switch p {
	case ProviderAnthropic:
		return "claude-sonnet-4-5"
	case ProviderOllama:
		return "llama3.2"
	default:
		return "gpt-4o"
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(strings.ToLower(v))
		cfg.Model = DefaultModel(cfg.Provider)
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimSuffix(v, "/")
	}
	switch cfg.Provider {
	case ProviderOpenAI:
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	case ProviderAnthropic:
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if v := os.Getenv("LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskPeulaGenerate, "LLM_GENERATE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskSectionRegenerate, "LLM_SECTION_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskInsights, "LLM_INSIGHTS_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type: the
// per-task override when one was configured, otherwise LLM_TIMEOUT_MS.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
