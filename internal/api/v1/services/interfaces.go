package services

import (
	"context"
	"io"

	"audio-transcriber/internal/api/v1/dto"
	"audio-transcriber/internal/app/audio"
)

// TranscribeInput is one user transcription request. APIKey is forwarded to the
// provider and never stored.
type TranscribeInput struct {
	APIKey   string
	Provider string
	Language string
	Upload   *audio.Upload
}

// TranscriptionService defines the interface for transcription operations
type TranscriptionService interface {
	Transcribe(ctx context.Context, in *TranscribeInput) (*dto.TranscriptionResponse, error)
	Providers() dto.ProvidersResponse
	GetTranscription(ctx context.Context, id int) (*dto.RecordResponse, error)
	ListTranscriptions(ctx context.Context, query dto.ListTranscriptionsQuery) (*dto.PaginatedTranscriptionsResponse, error)
	DeleteTranscription(ctx context.Context, id int) error
}

// DocumentService renders downloadable transcription documents
type DocumentService interface {
	Render(req *dto.DownloadRequest) (*Document, error)
	RenderRecord(ctx context.Context, id int, format string) (*Document, error)
}

// StatsService defines the interface for statistics operations
type StatsService interface {
	GetSystemStats(ctx context.Context) (*dto.SystemStats, error)
}

// ExportService defines the interface for export operations
type ExportService interface {
	ExportTranscriptions(ctx context.Context, req dto.ExportRequest, writer io.Writer) error
}
