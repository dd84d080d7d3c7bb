package dto

import (
	"mime/multipart"
	"strings"
	"time"

	"audio-transcriber/internal/app/model"
)

// TranscribeForm is the multipart body of POST /api/v1/transcriptions. The API key may
// also arrive as an Authorization bearer token, which takes precedence.
type TranscribeForm struct {
	File     *multipart.FileHeader `form:"file"`
	APIKey   string                `form:"api_key"`
	Provider string                `form:"provider" binding:"omitempty,max=32"`
	Language string                `form:"language" binding:"omitempty,min=2,max=8"`
}

// TranscriptionResponse is the result of one transcription request
type TranscriptionResponse struct {
	ID          int               `json:"id,omitempty"`
	FileName    string            `json:"file_name"`
	FileSize    int64             `json:"file_size"`
	SizeLabel   string            `json:"size_label"`
	ContentType string            `json:"content_type"`
	Text        string            `json:"text"`
	Language    string            `json:"language,omitempty"`
	Duration    float64           `json:"duration,omitempty"`
	Segments    []SegmentResponse `json:"segments,omitempty"`
	Provider    string            `json:"provider"`
	Model       string            `json:"model,omitempty"`
	Cached      bool              `json:"cached"`
	CreatedAt   time.Time         `json:"created_at"`
}

// SegmentResponse represents a transcription segment
type SegmentResponse struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// RecordResponse is a stored history entry
type RecordResponse struct {
	ID            int       `json:"id"`
	FileName      string    `json:"file_name"`
	FileSize      int64     `json:"file_size"`
	FileHash      string    `json:"file_hash"`
	ContentType   string    `json:"content_type"`
	Status        string    `json:"status"`
	Provider      string    `json:"provider"`
	Model         string    `json:"model,omitempty"`
	Language      string    `json:"language,omitempty"`
	Duration      float64   `json:"duration,omitempty"`
	Transcription string    `json:"transcription,omitempty"`
	Error         string    `json:"error,omitempty"`
	AudioURL      string    `json:"audio_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListTranscriptionsQuery represents query parameters for listing transcriptions
type ListTranscriptionsQuery struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	Limit    int    `form:"limit,default=20" binding:"min=1,max=100"`
	Provider string `form:"provider"`
	Status   string `form:"status" binding:"omitempty,oneof=completed failed all"`
}

// PaginatedTranscriptionsResponse represents a paginated list of transcriptions
type PaginatedTranscriptionsResponse struct {
	Transcriptions []RecordResponse   `json:"transcriptions"`
	Pagination     PaginationResponse `json:"pagination"`
}

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPagination computes page metadata for total items.
func NewPagination(page, limit, total int) PaginationResponse {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return PaginationResponse{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// ProvidersResponse lists the transcription providers the server can use.
type ProvidersResponse struct {
	Providers []string `json:"providers"`
	Default   string   `json:"default"`
}

// ToSegments converts provider segments to response DTOs
func ToSegments(segments []model.Segment) []SegmentResponse {
	if len(segments) == 0 {
		return nil
	}
	out := make([]SegmentResponse, len(segments))
	for i, s := range segments {
		out[i] = SegmentResponse{ID: s.ID, Start: s.Start, End: s.End, Text: s.Text}
	}
	return out
}

// FromSegments converts response DTOs back to model segments
func FromSegments(segments []SegmentResponse) []model.Segment {
	out := make([]model.Segment, len(segments))
	for i, s := range segments {
		out[i] = model.Segment{ID: s.ID, Start: s.Start, End: s.End, Text: s.Text}
	}
	return out
}

// ToRecordResponse converts a model to response DTO
func ToRecordResponse(r *model.TranscriptionRecord) RecordResponse {
	return RecordResponse{
		ID:            r.ID,
		FileName:      r.FileName,
		FileSize:      r.FileSize,
		FileHash:      r.FileHash,
		ContentType:   r.ContentType,
		Status:        DetermineStatus(r),
		Provider:      r.Provider,
		Model:         r.Model,
		Language:      r.Language,
		Duration:      r.Duration,
		Transcription: r.Transcription,
		Error:         r.ErrorMessage,
		CreatedAt:     r.CreatedAt,
	}
}

// DetermineStatus determines the transcription status based on the model
func DetermineStatus(r *model.TranscriptionRecord) string {
	if r.Failed() {
		return "failed"
	}
	return "completed"
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
