package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/llm"
)

// FakeLLM is a scripted llm.LLMClient. Responses are consumed per task in
// FIFO order; a task with nothing queued falls back to Default, if set.
// Every request is recorded.
type FakeLLM struct {
	mu        sync.Mutex
	queued    map[llm.TaskType][]fakeReply
	Default   map[llm.TaskType]string
	Requests  []llm.GenerateRequest
	Unhealthy bool
}

type fakeReply struct {
	text string
	err  error
}

func NewFakeLLM() *FakeLLM {
	return &FakeLLM{
		queued:  make(map[llm.TaskType][]fakeReply),
		Default: make(map[llm.TaskType]string),
	}
}

// Reply queues a text response for task.
func (f *FakeLLM) Reply(task llm.TaskType, text string) *FakeLLM {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queued[task] = append(f.queued[task], fakeReply{text: text})
	return f
}

// Fail queues an error for task.
func (f *FakeLLM) Fail(task llm.TaskType, err error) *FakeLLM {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queued[task] = append(f.queued[task], fakeReply{err: err})
	return f
}

func (f *FakeLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Requests = append(f.Requests, req)

	if q := f.queued[req.Task]; len(q) > 0 {
		reply := q[0]
		f.queued[req.Task] = q[1:]
		if reply.err != nil {
			return nil, reply.err
		}
		return &llm.GenerateResponse{Text: reply.text, Model: "fake"}, nil
	}
	if text, ok := f.Default[req.Task]; ok {
		return &llm.GenerateResponse{Text: text, Model: "fake"}, nil
	}
	return nil, fmt.Errorf("fake llm: no reply scripted for task %s", req.Task)
}

func (f *FakeLLM) Available(context.Context) bool { return !f.Unhealthy }

// RequestsFor returns the recorded requests of one task type.
func (f *FakeLLM) RequestsFor(task llm.TaskType) []llm.GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []llm.GenerateRequest
	for _, r := range f.Requests {
		if r.Task == task {
			out = append(out, r)
		}
	}
	return out
}

// PeulaJSON renders a valid full-generation answer.
func PeulaJSON(title string) string {
	content := NewTestContent()
	payload := struct {
		Title      string                  `json:"title"`
		Components []domain.PeulaComponent `json:"components"`
	}{Title: title, Components: content.Components}
	data, _ := json.Marshal(payload)
	return string(data)
}

// SectionJSON renders a valid section-regeneration answer.
func SectionJSON(description string) string {
	data, _ := json.Marshal(domain.SectionRevision{
		Description:   description,
		BestPractices: "practices for " + description,
		TimeStructure: "15 min",
	})
	return string(data)
}

// InsightsJSON renders a valid insights answer.
func InsightsJSON(voice string) string {
	data, _ := json.Marshal(domain.StyleInsights{
		VoiceAndTone:       voice,
		SignatureMoves:     []string{"opens with a story"},
		FacilitationFocus:  []string{"small-group talk"},
		ReflectionPatterns: []string{"one word check-out"},
		MeasurementFocus:   []string{"observed participation"},
	})
	return string(data)
}
