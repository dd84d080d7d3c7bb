package repository

import (
	"context"

	"audio-transcriber/internal/app/model"
)

// ListOptions pages through history, newest first.
type ListOptions struct {
	Limit         int
	Offset        int
	Provider      string
	IncludeFailed bool
	OnlyFailed    bool // takes precedence over IncludeFailed
}

// Stats summarises the stored history.
type Stats struct {
	Total         int            `json:"total"`
	Failed        int            `json:"failed"`
	TotalDuration float64        `json:"total_duration_seconds"`
	ByProvider    map[string]int `json:"by_provider"`
}

// TranscriptionDAO persists transcription history. Soft-deleted records are invisible to
// every read method.
type TranscriptionDAO interface {
	Close() error

	Record(ctx context.Context, record *model.TranscriptionRecord) (int, error)

	Get(ctx context.Context, id int) (*model.TranscriptionRecord, error)

	List(ctx context.Context, opts ListOptions) ([]model.TranscriptionRecord, int, error)

	All(ctx context.Context) ([]model.TranscriptionRecord, error)

	SoftDelete(ctx context.Context, id int) error

	Stats(ctx context.Context) (*Stats, error)
}
