package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	defaultOllamaEndpoint = "http://localhost:11434"
	// maxOllamaErrorBody bounds how much of a failed response ends up in an
	// error message.
	maxOllamaErrorBody = 512
)

// ollamaClient talks to a local Ollama server over its JSON API. There is no
// official Go SDK for the generate endpoint, so requests are built by hand.
type ollamaClient struct {
	runner
	baseURL string
	http    *http.Client
}

func NewOllamaClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	baseURL := strings.TrimRight(cfg.Endpoint, "/")
	if baseURL == "" {
		baseURL = defaultOllamaEndpoint
	}
	// Only the dial is bounded here; the task timeout in runner bounds the
	// whole call.
	dialer := &net.Dialer{Timeout: 5 * time.Second}
	return &ollamaClient{
		runner:  runner{cfg: cfg, observer: observer},
		baseURL: baseURL,
		http:    &http.Client{Transport: &http.Transport{DialContext: dialer.DialContext}},
	}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	return c.run(ctx, req, func(ctx context.Context, p callParams) (string, string, error) {
		body := ollamaRequest{
			Model:   p.Model,
			System:  p.SystemPrompt,
			Prompt:  p.UserPrompt,
			Format:  "json",
			Options: ollamaOptions{Temperature: p.Temperature, NumPredict: p.MaxTokens},
		}
		var out ollamaResponse
		if err := c.post(ctx, "/api/generate", body, &out); err != nil {
			return "", "", err
		}
		return out.Response, out.Model, nil
	})
}

func (c *ollamaClient) post(ctx context.Context, path string, in, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(in); err != nil {
		return fmt.Errorf("encoding ollama request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("building ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxOllamaErrorBody))
		return fmt.Errorf("ollama %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding ollama response: %w", err)
	}
	return nil
}

// Available lists local models as a cheap liveness probe.
func (c *ollamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
