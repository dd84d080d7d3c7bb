package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio-transcriber/internal/app/api"
	"audio-transcriber/internal/app/audio"
	apperrors "audio-transcriber/internal/app/errors"
)

func newRequest() *api.Request {
	return &api.Request{
		APIKey: "gemini-test-key",
		Upload: &audio.Upload{
			Name:        "clip.mp3",
			ContentType: "audio/mpeg",
			Size:        4,
			Data:        []byte{0x49, 0x44, 0x33, 0x03},
		},
		Model:    "whisper-1",
		Language: "es",
	}
}

type generateRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text       string `json:"text"`
			InlineData *struct {
				MimeType string `json:"mimeType"`
				Data     string `json:"data"`
			} `json:"inlineData"`
		} `json:"parts"`
	} `json:"contents"`
}

func TestTranscriber_Transcribe(t *testing.T) {
	var (
		gotKey  string
		gotPath string
		gotBody generateRequest
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"  Hola desde Gemini \n"}]}}]}`))
	}))
	defer server.Close()

	tr := NewTranscriber("", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	result, err := tr.Transcribe(context.Background(), newRequest())
	require.NoError(t, err)

	assert.Equal(t, "Hola desde Gemini", result.Text)
	assert.Equal(t, ProviderName, result.Provider)
	assert.Equal(t, DefaultModel, result.Model)
	assert.Equal(t, "es", result.Language)

	assert.Equal(t, "gemini-test-key", gotKey)
	assert.True(t, strings.HasSuffix(gotPath, "models/"+DefaultModel+":generateContent"), gotPath)

	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "user", gotBody.Contents[0].Role)
	require.Len(t, gotBody.Contents[0].Parts, 2)
	assert.Contains(t, gotBody.Contents[0].Parts[0].Text, `"es"`)
	inline := gotBody.Contents[0].Parts[1].InlineData
	require.NotNil(t, inline)
	assert.Equal(t, "audio/mpeg", inline.MimeType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(newRequest().Upload.Data), inline.Data)
}

func TestTranscriber_ExplicitGeminiModel(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"ok"}]}}]}`))
	}))
	defer server.Close()

	req := newRequest()
	req.Model = "gemini-2.0-flash"
	result, err := NewTranscriber("", WithBaseURL(server.URL), WithHTTPClient(server.Client())).
		Transcribe(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", result.Model)
	assert.Contains(t, gotPath, "gemini-2.0-flash:generateContent")
}

func TestTranscriber_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	_, err := NewTranscriber("", WithBaseURL(server.URL), WithHTTPClient(server.Client())).
		Transcribe(context.Background(), newRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestTranscriber_Name(t *testing.T) {
	assert.Equal(t, "gemini", NewTranscriber("").Name())
}
