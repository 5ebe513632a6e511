package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicClient implements LLMClient with the Anthropic messages API.
type anthropicClient struct {
	runner
	client anthropic.Client
}

// NewAnthropicClient creates an LLMClient backed by Anthropic.
func NewAnthropicClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	return &anthropicClient{
		runner: runner{cfg: cfg, observer: observer},
		client: anthropic.NewClient(opts...),
	}
}

func (c *anthropicClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	return c.run(ctx, req, func(ctx context.Context, p callParams) (string, string, error) {
		maxTokens := int64(p.MaxTokens)
		if maxTokens <= 0 {
			maxTokens = 1024
		}
		params := anthropic.MessageNewParams{
			Model:     anthropic.Model(p.Model),
			MaxTokens: maxTokens,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(p.UserPrompt)),
			},
			Temperature: anthropic.Float(p.Temperature),
		}
		if p.SystemPrompt != "" {
			params.System = []anthropic.TextBlockParam{{Text: p.SystemPrompt}}
		}
		msg, err := c.client.Messages.New(ctx, params)
		if err != nil {
			return "", "", err
		}
		var parts []string
		for _, block := range msg.Content {
			switch variant := block.AsAny().(type) {
			case anthropic.TextBlock:
				parts = append(parts, variant.Text)
			}
		}
		return strings.Join(parts, ""), string(msg.Model), nil
	})
}

func (c *anthropicClient) Available(context.Context) bool {
	return c.cfg.APIKey != ""
}
