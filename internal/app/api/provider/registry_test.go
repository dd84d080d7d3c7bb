package provider

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio-transcriber/internal/app/api"
	apperrors "audio-transcriber/internal/app/errors"
	"audio-transcriber/internal/app/model"
)

type stubTranscriber struct {
	name string
}

func (s *stubTranscriber) Name() string { return s.name }

func (s *stubTranscriber) Transcribe(ctx context.Context, req *api.Request) (*model.TranscriptionResult, error) {
	return &model.TranscriptionResult{Text: "stub", Provider: s.name}, nil
}

func TestRegistry_Register(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	p := &stubTranscriber{name: "openai"}
	require.NoError(t, registry.Register(p))

	// duplicate
	assert.Error(t, registry.Register(&stubTranscriber{name: "openai"}))
	// empty name
	assert.Error(t, registry.Register(&stubTranscriber{name: ""}))
	// nil
	assert.Error(t, registry.Register(nil))
}

func TestRegistry_FirstRegisteredIsDefault(t *testing.T) {
	openai := &stubTranscriber{name: "openai"}
	gemini := &stubTranscriber{name: "gemini"}

	registry, err := NewRegistry(openai, gemini)
	require.NoError(t, err)
	assert.Equal(t, "openai", registry.Default())

	got, err := registry.Get("")
	require.NoError(t, err)
	assert.Same(t, openai, got)

	got, err = registry.Get("gemini")
	require.NoError(t, err)
	assert.Same(t, gemini, got)

	require.NoError(t, registry.SetDefault("gemini"))
	got, err = registry.Get("")
	require.NoError(t, err)
	assert.Same(t, gemini, got)
}

func TestRegistry_UnknownProvider(t *testing.T) {
	registry, err := NewRegistry(&stubTranscriber{name: "openai"})
	require.NoError(t, err)

	_, err = registry.Get("deepgram")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrProviderNotFound))
	assert.Contains(t, err.Error(), "deepgram")

	err = registry.SetDefault("deepgram")
	assert.True(t, errors.Is(err, apperrors.ErrProviderNotFound))
	assert.Equal(t, "openai", registry.Default())
}

func TestRegistry_EmptyRegistryHasNoDefault(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	_, err = registry.Get("")
	assert.True(t, errors.Is(err, apperrors.ErrProviderNotFound))
	assert.Empty(t, registry.Names())
}

func TestNewRegistry_DuplicateFails(t *testing.T) {
	_, err := NewRegistry(&stubTranscriber{name: "openai"}, &stubTranscriber{name: "openai"})
	assert.Error(t, err)
}

func TestRegistry_Names(t *testing.T) {
	registry, err := NewRegistry(&stubTranscriber{name: "openai"}, &stubTranscriber{name: "gemini"})
	require.NoError(t, err)
	assert.Equal(t, []string{"gemini", "openai"}, registry.Names())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	registry, err := NewRegistry(&stubTranscriber{name: "openai"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = registry.Get("openai")
			_ = registry.Names()
		}()
		go func() {
			defer wg.Done()
			_ = registry.SetDefault("openai")
		}()
	}
	wg.Wait()

	assert.Equal(t, "openai", registry.Default())
}
