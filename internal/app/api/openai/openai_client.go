package openai

import (
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// NewClient builds a client for a caller-supplied key. Keys differ per request, so
// clients are cheap values rather than a process-wide singleton.
func NewClient(apiKey, baseURL string, httpClient *http.Client) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if httpClient != nil {
		config.HTTPClient = httpClient
	}
	return openai.NewClientWithConfig(config)
}
