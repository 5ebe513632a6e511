package llm

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// openAIClient implements LLMClient with the OpenAI chat completions API.
type openAIClient struct {
	runner
	client openai.Client
}

// NewOpenAIClient creates an LLMClient backed by OpenAI. cfg.Endpoint, when
// set, replaces the API base URL (Azure-style gateways, tests).
func NewOpenAIClient(cfg LLMConfig, observer Observer) LLMClient {
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
	return &openAIClient{
		runner: runner{cfg: cfg, observer: observer},
		client: openai.NewClient(opts...),
	}
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	return c.run(ctx, req, func(ctx context.Context, p callParams) (string, string, error) {
		params := openai.ChatCompletionNewParams{
			Model: openai.ChatModel(p.Model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(p.SystemPrompt),
				openai.UserMessage(p.UserPrompt),
			},
			Temperature: openai.Float(p.Temperature),
			ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
			},
		}
		if p.MaxTokens > 0 {
			params.MaxCompletionTokens = openai.Int(int64(p.MaxTokens))
		}
		resp, err := c.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", "", err
		}
		if len(resp.Choices) == 0 {
			return "", resp.Model, nil
		}
		return resp.Choices[0].Message.Content, resp.Model, nil
	})
}

func (c *openAIClient) Available(context.Context) bool {
	return c.cfg.APIKey != ""
}
