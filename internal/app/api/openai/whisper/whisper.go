package whisper

import (
	"bytes"
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"

	"audio-transcriber/internal/app/api"
	openaiclient "audio-transcriber/internal/app/api/openai"
	"audio-transcriber/internal/app/model"
)

// ProviderName identifies the OpenAI Whisper provider.
const ProviderName = "openai"

// ClientFactory returns an OpenAI client bound to one API key.
type ClientFactory func(apiKey string) *openai.Client

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	newClient ClientFactory
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(newClient ClientFactory) *RemoteTranscriber {
	return &RemoteTranscriber{newClient: newClient}
}

// NewRemoteTranscriberForBaseURL creates a RemoteTranscriber talking to baseURL, or to
// the public API when baseURL is empty.
func NewRemoteTranscriberForBaseURL(baseURL string) *RemoteTranscriber {
	return NewRemoteTranscriber(func(apiKey string) *openai.Client {
		return openaiclient.NewClient(apiKey, baseURL, nil)
	})
}

func (rt *RemoteTranscriber) Name() string {
	return ProviderName
}

// Transcribe posts the audio to /audio/transcriptions with the caller's key as bearer token.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, req *api.Request) (*model.TranscriptionResult, error) {
	audioRequest := openai.AudioRequest{
		Model:       req.Model,
		FilePath:    req.Upload.Name,
		Reader:      bytes.NewReader(req.Upload.Data),
		Prompt:      req.Prompt,
		Temperature: req.Temperature,
		Language:    req.Language,
		Format:      openai.AudioResponseFormat(req.ResponseFormat),
	}
	if audioRequest.Model == "" {
		audioRequest.Model = openai.Whisper1
	}

	resp, err := rt.newClient(req.APIKey).CreateTranscription(ctx, audioRequest)
	if err != nil {
		return nil, toUpstreamError(err)
	}

	result := &model.TranscriptionResult{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: resp.Duration,
		Provider: ProviderName,
		Model:    audioRequest.Model,
	}
	for _, s := range resp.Segments {
		result.Segments = append(result.Segments, model.Segment{
			ID:    s.ID,
			Start: s.Start,
			End:   s.End,
			Text:  s.Text,
		})
	}
	return result, nil
}

func toUpstreamError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return api.NewUpstreamError(ProviderName, apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return api.NewUpstreamError(ProviderName, reqErr.HTTPStatusCode, "", err)
	}

	return api.NewUpstreamError(ProviderName, 0, "", err)
}
