package services

import (
	"context"
	"time"

	"audio-transcriber/internal/api/errors"
	"audio-transcriber/internal/api/v1/dto"
	"audio-transcriber/internal/app/converter/export"
	"audio-transcriber/internal/app/repository"
)

// Document is a downloadable transcription file.
type Document struct {
	Name        string
	ContentType string
	Body        string
}

const textContentType = "text/plain; charset=utf-8"

// DocumentServiceImpl implements DocumentService
type DocumentServiceImpl struct {
	history repository.TranscriptionDAO
	now     func() time.Time
}

// NewDocumentService creates a document service. history may be nil.
func NewDocumentService(history repository.TranscriptionDAO) *DocumentServiceImpl {
	return &DocumentServiceImpl{history: history, now: time.Now}
}

// Render builds the document for a transcription the page already holds.
func (s *DocumentServiceImpl) Render(req *dto.DownloadRequest) (*Document, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	segments := dto.FromSegments(req.ParsedSegments())
	body, name := export.Render(req.Format, req.FileName, req.Text, segments, s.now())
	return &Document{Name: name, ContentType: textContentType, Body: body}, nil
}

// RenderRecord builds the document for a stored transcription. Segments are not stored,
// so srt is served as txt.
func (s *DocumentServiceImpl) RenderRecord(ctx context.Context, id int, format string) (*Document, error) {
	if s.history == nil {
		return nil, historyDisabled()
	}
	record, err := s.history.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "Failed to retrieve transcription")
	}
	if record.Failed() {
		return nil, errors.NewConflictError("Transcription failed and has no text")
	}
	body, name := export.Render(format, record.FileName, record.Transcription, nil, s.now())
	return &Document{Name: name, ContentType: textContentType, Body: body}, nil
}
