package dto

import (
	"encoding/json"

	"audio-transcriber/internal/api/errors"
)

// DownloadRequest asks for the downloadable document of a transcription shown in the page.
type DownloadRequest struct {
	FileName string `form:"file_name" json:"file_name" binding:"required"`
	Text     string `form:"text" json:"text"`
	Format   string `form:"format" json:"format" binding:"omitempty,oneof=txt srt"`
	// Segments is the JSON array returned with the transcription, needed for srt.
	Segments string `form:"segments" json:"segments"`
}

// Validate performs domain-specific validation
func (r *DownloadRequest) Validate() error {
	if r.Segments == "" {
		return nil
	}
	var segments []SegmentResponse
	if err := json.Unmarshal([]byte(r.Segments), &segments); err != nil {
		return errors.NewValidationError("Invalid download request", map[string]string{
			"segments": "must be a JSON array of segments",
		})
	}
	return nil
}

// ParsedSegments decodes Segments. Call Validate first.
func (r *DownloadRequest) ParsedSegments() []SegmentResponse {
	if r.Segments == "" {
		return nil
	}
	var segments []SegmentResponse
	_ = json.Unmarshal([]byte(r.Segments), &segments)
	return segments
}

// DownloadQuery selects the format of GET /transcriptions/:id/download
type DownloadQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=txt srt"`
}
