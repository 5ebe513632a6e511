package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
// Implementations never retry; a failure is returned to the caller as is.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available reports whether the backend looks usable.
	Available(ctx context.Context) bool
}

// NewClient returns the LLMClient for cfg.Provider. A hosted provider
// without an API key yields a client whose calls fail with ErrNotConfigured.
func NewClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	switch cfg.Provider {
	case ProviderOllama:
		return NewOllamaClient(cfg, observer), nil
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return unconfiguredClient{provider: cfg.Provider}, nil
		}
		return NewOpenAIClient(cfg, observer), nil
	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return unconfiguredClient{provider: cfg.Provider}, nil
		}
		return NewAnthropicClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q (want openai, anthropic or ollama)", cfg.Provider)
	}
}

type unconfiguredClient struct {
	provider Provider
}

func (c unconfiguredClient) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	return nil, fmt.Errorf("%s: %w", c.provider, ErrNotConfigured)
}

func (unconfiguredClient) Available(context.Context) bool { return false }

// callParams are the resolved per-call settings handed to a backend.
type callParams struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
}

// callFunc performs one backend request and returns the text and the model
// that answered.
type callFunc func(ctx context.Context, p callParams) (text string, model string, err error)

// runner applies task defaults, the task timeout and observer reporting
// around a single backend call.
type runner struct {
	cfg      LLMConfig
	observer Observer
}

func (r runner) run(ctx context.Context, req GenerateRequest, call callFunc) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := r.cfg.Tasks[req.Task]
	p := callParams{
		Model:        r.cfg.Model,
		SystemPrompt: req.SystemPrompt,
		UserPrompt:   req.UserPrompt,
		Temperature:  taskCfg.Temperature,
		MaxTokens:    taskCfg.MaxTokens,
	}
	if req.Temperature != nil {
		p.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		p.MaxTokens = *req.MaxTokens
	}

	timeoutMs := r.cfg.TaskTimeout(req.Task)
	callCtx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	text, model, err := call(callCtx, p)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		err = r.classify(callCtx, err)
	}

	latency := time.Since(start).Milliseconds()
	r.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Provider:  r.cfg.Provider,
		Model:     r.cfg.Model,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = r.cfg.Model
	}
	return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
}

func (r runner) classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrEmptyResponse):
		return err
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, context.Canceled):
		return err
	case isConnectionError(err):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return fmt.Errorf("%s request failed: %w", r.cfg.Provider, err)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY"
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}
