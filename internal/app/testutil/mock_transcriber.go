package testutil

import (
	"context"
	"sync"

	"audio-transcriber/internal/app/api"
	"audio-transcriber/internal/app/model"
)

// MockTranscriber is a scriptable api.Transcriber. Responses and errors are keyed by
// upload file name; anything else gets DefaultResponse.
type MockTranscriber struct {
	mu sync.Mutex

	ProviderName    string
	DefaultResponse string
	ErrorMap        map[string]error
	ResponseMap     map[string]string

	Calls []api.Request
}

// NewMockTranscriber creates a MockTranscriber registered as "openai".
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		ProviderName:    "openai",
		DefaultResponse: "Esta es una transcripción de prueba.",
		ErrorMap:        make(map[string]error),
		ResponseMap:     make(map[string]string),
	}
}

func (m *MockTranscriber) Name() string {
	return m.ProviderName
}

// Transcribe records the request and returns the scripted result.
func (m *MockTranscriber) Transcribe(ctx context.Context, req *api.Request) (*model.TranscriptionResult, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, *req)
	name := ""
	if req.Upload != nil {
		name = req.Upload.Name
	}
	err := m.ErrorMap[name]
	text, ok := m.ResponseMap[name]
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		text = m.DefaultResponse
	}
	return &model.TranscriptionResult{
		Text:     text,
		Language: req.Language,
		Provider: m.ProviderName,
		Model:    req.Model,
	}, nil
}

// CallCount returns how many requests were made.
func (m *MockTranscriber) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
