package api

import (
	"context"
	"fmt"
	"net/http"

	"audio-transcriber/internal/app/audio"
	apperrors "audio-transcriber/internal/app/errors"
	"audio-transcriber/internal/app/model"
)

// Request is a single transcription call. APIKey is the caller's own credential and is
// only ever sent as the bearer token of the outbound request.
type Request struct {
	APIKey         string
	Upload         *audio.Upload
	Model          string
	Language       string
	ResponseFormat string
	Temperature    float32
	Prompt         string
}

// Transcriber converts an uploaded audio file to text through a hosted API.
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, req *Request) (*model.TranscriptionResult, error)
}

// UpstreamError is a failed call to the hosted transcription API.
type UpstreamError struct {
	Provider   string
	StatusCode int // 0 when no response was received
	Message    string
	Err        error
}

// NewUpstreamError builds the message shown for a non-success response: the API's own
// error message when it sent one, otherwise "Error <status>: <status text>".
func NewUpstreamError(provider string, statusCode int, apiMessage string, cause error) *UpstreamError {
	msg := apiMessage
	if msg == "" && statusCode > 0 {
		msg = fmt.Sprintf("Error %d: %s", statusCode, http.StatusText(statusCode))
	}
	if msg == "" && cause != nil {
		msg = cause.Error()
	}
	return &UpstreamError{Provider: provider, StatusCode: statusCode, Message: msg, Err: cause}
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is makes every UpstreamError match apperrors.ErrUpstream.
func (e *UpstreamError) Is(target error) bool {
	return target == error(apperrors.ErrUpstream)
}

// UserMessage is the text shown to the user for a failed transcription.
func UserMessage(err error) string {
	return "Error en la transcripción: " + err.Error()
}
