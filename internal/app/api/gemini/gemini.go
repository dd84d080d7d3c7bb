package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"audio-transcriber/internal/app/api"
	"audio-transcriber/internal/app/model"
)

const (
	ProviderName = "gemini"
	DefaultModel = "gemini-2.5-flash"
)

const promptTemplate = "Transcribe this audio recording verbatim. The spoken language is %q. " +
	"Return only the transcribed text, without timestamps, speaker labels or commentary."

// Transcriber sends audio to Gemini as an inline part and asks for a plain transcription.
type Transcriber struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

type Option func(*Transcriber)

// WithBaseURL points the client at a different Gemini API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(t *Transcriber) { t.baseURL = baseURL }
}

func WithHTTPClient(c *http.Client) Option {
	return func(t *Transcriber) { t.httpClient = c }
}

func NewTranscriber(modelName string, opts ...Option) *Transcriber {
	if modelName == "" {
		modelName = DefaultModel
	}
	t := &Transcriber{model: modelName}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Transcriber) Name() string {
	return ProviderName
}

func (t *Transcriber) Transcribe(ctx context.Context, req *api.Request) (*model.TranscriptionResult, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      req.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  t.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: t.baseURL},
	})
	if err != nil {
		return nil, api.NewUpstreamError(ProviderName, 0, "", err)
	}

	// whisper model names are meaningless here
	modelName := t.model
	if req.Model != "" && strings.HasPrefix(req.Model, "gemini") {
		modelName = req.Model
	}

	parts := []*genai.Part{
		genai.NewPartFromText(fmt.Sprintf(promptTemplate, req.Language)),
		genai.NewPartFromBytes(req.Upload.Data, req.Upload.ContentType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := client.Models.GenerateContent(ctx, modelName, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	})
	if err != nil {
		return nil, toUpstreamError(err)
	}

	return &model.TranscriptionResult{
		Text:     strings.TrimSpace(resp.Text()),
		Language: req.Language,
		Provider: ProviderName,
		Model:    modelName,
	}, nil
}

func toUpstreamError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return api.NewUpstreamError(ProviderName, apiErr.Code, apiErr.Message, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return api.NewUpstreamError(ProviderName, apiErrPtr.Code, apiErrPtr.Message, err)
	}
	return api.NewUpstreamError(ProviderName, 0, "", err)
}
