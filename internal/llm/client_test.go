package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(provider Provider, endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Provider = provider
	cfg.Model = DefaultModel(provider)
	cfg.Endpoint = endpoint
	cfg.APIKey = "test-key"
	return cfg
}

func TestOllamaClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "json", req.Format)
		assert.Equal(t, "system prompt", req.System)
		assert.Equal(t, "user prompt", req.Prompt)
		assert.Equal(t, 1200, req.Options.NumPredict)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: `{"description":"x"}`})
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(ProviderOllama, srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskSectionRegenerate,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"description":"x"}`, resp.Text)
	assert.Equal(t, "llama3.2", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestOllamaClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(ProviderOllama, srv.URL)
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskPeulaGenerate: {Temperature: 0.7, MaxTokens: 4000, TimeoutMs: 50},
	}

	var captured LLMCallEvent
	client := NewOllamaClient(cfg, &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskPeulaGenerate,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.False(t, captured.Success)
	assert.Equal(t, "TIMEOUT", captured.ErrorCode)
}

func TestOllamaClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig(ProviderOllama, "http://127.0.0.1:1") // nothing listening
	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskSectionRegenerate,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOllamaClient_Generate_ServerErrorIsNotRetried(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal error"))
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(ProviderOllama, srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskPeulaGenerate,
		UserPrompt: "test",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Equal(t, int32(1), attempts.Load())
}

func TestOllamaClient_Generate_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "  "})
	}))
	defer srv.Close()

	var captured LLMCallEvent
	client := NewOllamaClient(testConfig(ProviderOllama, srv.URL), &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskInsights, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.Equal(t, "EMPTY", captured.ErrorCode)
	assert.Equal(t, TaskInsights, captured.Task)
}

func TestOllamaClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.True(t, NewOllamaClient(testConfig(ProviderOllama, srv.URL), nil).Available(context.Background()))
	assert.False(t, NewOllamaClient(testConfig(ProviderOllama, "http://127.0.0.1:1"), nil).Available(context.Background()))
}

func TestOpenAIClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o", body["model"])
		assert.EqualValues(t, 4000, body["max_completion_tokens"])
		format, _ := body["response_format"].(map[string]any)
		assert.Equal(t, "json_object", format["type"])
		messages, _ := body["messages"].([]any)
		require.Len(t, messages, 2)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-2024-08-06",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "{\"title\":\"Night hike\"}"}
			}]
		}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(testConfig(ProviderOpenAI, srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskPeulaGenerate,
		SystemPrompt: "sys",
		UserPrompt:   "user",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"title":"Night hike"}`, resp.Text)
	assert.Equal(t, "gpt-4o-2024-08-06", resp.Model)
}

func TestAnthropicClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 1500, body["max_tokens"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-5",
			"content": [
				{"type": "text", "text": "{\"voiceAndTone\":"},
				{"type": "text", "text": "\"warm\"}"}
			],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer srv.Close()

	client := NewAnthropicClient(testConfig(ProviderAnthropic, srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskInsights,
		SystemPrompt: "sys",
		UserPrompt:   "user",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"voiceAndTone":"warm"}`, resp.Text)
}

func TestNewClient_HostedProviderWithoutKey(t *testing.T) {
	cfg := testConfig(ProviderOpenAI, "")
	cfg.APIKey = ""

	client, err := NewClient(cfg, nil)
	require.NoError(t, err)
	assert.False(t, client.Available(context.Background()))

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskPeulaGenerate})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewClient_UnknownProvider(t *testing.T) {
	_, err := NewClient(testConfig(Provider("bard"), ""), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown llm provider")
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) {
	o.fn(e)
}
