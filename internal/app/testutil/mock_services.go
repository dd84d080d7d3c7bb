package testutil

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"

	"audio-transcriber/internal/api/v1/dto"
	"audio-transcriber/internal/api/v1/services"
)

// MockServices contains all mock services for testing
type MockServices struct {
	TranscriptionService *MockTranscriptionService
	DocumentService      *MockDocumentService
	StatsService         *MockStatsService
	ExportService        *MockExportService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		TranscriptionService: NewMockTranscriptionService(t),
		DocumentService:      NewMockDocumentService(t),
		StatsService:         NewMockStatsService(t),
		ExportService:        NewMockExportService(t),
	}
}

// AssertExpectations checks every mock.
func (ms *MockServices) AssertExpectations(t *testing.T) {
	ms.TranscriptionService.AssertExpectations(t)
	ms.DocumentService.AssertExpectations(t)
	ms.StatsService.AssertExpectations(t)
	ms.ExportService.AssertExpectations(t)
}

// MockTranscriptionService is a mock implementation of TranscriptionService
type MockTranscriptionService struct {
	mock.Mock
}

func NewMockTranscriptionService(t *testing.T) *MockTranscriptionService {
	m := &MockTranscriptionService{}
	m.Test(t)
	return m
}

func (m *MockTranscriptionService) Transcribe(ctx context.Context, in *services.TranscribeInput) (*dto.TranscriptionResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranscriptionResponse), args.Error(1)
}

func (m *MockTranscriptionService) Providers() dto.ProvidersResponse {
	return m.Called().Get(0).(dto.ProvidersResponse)
}

func (m *MockTranscriptionService) GetTranscription(ctx context.Context, id int) (*dto.RecordResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecordResponse), args.Error(1)
}

func (m *MockTranscriptionService) ListTranscriptions(ctx context.Context, query dto.ListTranscriptionsQuery) (*dto.PaginatedTranscriptionsResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedTranscriptionsResponse), args.Error(1)
}

func (m *MockTranscriptionService) DeleteTranscription(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDocumentService is a mock implementation of DocumentService
type MockDocumentService struct {
	mock.Mock
}

func NewMockDocumentService(t *testing.T) *MockDocumentService {
	m := &MockDocumentService{}
	m.Test(t)
	return m
}

func (m *MockDocumentService) Render(req *dto.DownloadRequest) (*services.Document, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Document), args.Error(1)
}

func (m *MockDocumentService) RenderRecord(ctx context.Context, id int, format string) (*services.Document, error) {
	args := m.Called(ctx, id, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Document), args.Error(1)
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	mock.Mock
}

func NewMockStatsService(t *testing.T) *MockStatsService {
	m := &MockStatsService{}
	m.Test(t)
	return m
}

func (m *MockStatsService) GetSystemStats(ctx context.Context) (*dto.SystemStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SystemStats), args.Error(1)
}

// MockExportService is a mock implementation of ExportService. Body, when set, is
// written to the response before returning.
type MockExportService struct {
	mock.Mock
	Body string
}

func NewMockExportService(t *testing.T) *MockExportService {
	m := &MockExportService{}
	m.Test(t)
	return m
}

func (m *MockExportService) ExportTranscriptions(ctx context.Context, req dto.ExportRequest, writer io.Writer) error {
	args := m.Called(ctx, req, writer)
	if args.Error(0) == nil && m.Body != "" {
		_, _ = io.WriteString(writer, m.Body)
	}
	return args.Error(0)
}
