package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"

	"audio-transcriber/internal/app/api"
	apperrors "audio-transcriber/internal/app/errors"
)

// Registry maps provider names to transcribers.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]api.Transcriber
	default_  string
}

// NewRegistry creates a registry holding the given transcribers. The first one becomes
// the default.
func NewRegistry(transcribers ...api.Transcriber) (*Registry, error) {
	r := &Registry{providers: make(map[string]api.Transcriber)}
	for _, t := range transcribers {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a transcriber under its own name.
func (r *Registry) Register(t api.Transcriber) error {
	if t == nil {
		return fmt.Errorf("provider cannot be nil")
	}
	name := t.Name()
	if name == "" {
		return fmt.Errorf("provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider '%s' already registered", name)
	}
	r.providers[name] = t

	if r.default_ == "" {
		r.default_ = name
	}
	return nil
}

// Get returns the named transcriber, or the default one when name is empty.
func (r *Registry) Get(name string) (api.Transcriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		name = r.default_
	}
	t, exists := r.providers[name]
	if !exists {
		return nil, apperrors.Wrapf(apperrors.ErrProviderNotFound, "unknown provider %q", name)
	}
	return t, nil
}

func (r *Registry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.default_
}

// SetDefault changes the provider used when a request names none.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; !exists {
		return apperrors.Wrapf(apperrors.ErrProviderNotFound, "unknown provider %q", name)
	}
	r.default_ = name
	return nil
}

// Names lists registered providers in alphabetical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := lo.Keys(r.providers)
	sort.Strings(names)
	return names
}
