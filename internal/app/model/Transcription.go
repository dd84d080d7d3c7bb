package model

import "time"

// Segment is a timed slice of a transcription, as returned by verbose_json.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptionResult is what a provider returns for one audio file.
type TranscriptionResult struct {
	Text     string    `json:"text"`
	Language string    `json:"language,omitempty"`
	Duration float64   `json:"duration,omitempty"`
	Segments []Segment `json:"segments,omitempty"`
	Provider string    `json:"provider"`
	Model    string    `json:"model,omitempty"`
	Cached   bool      `json:"cached"`
}

// TranscriptionRecord is a persisted history entry. It never carries the API key
// used to produce it.
type TranscriptionRecord struct {
	ID            int        `json:"id"`
	FileName      string     `json:"file_name"`
	FileSize      int64      `json:"file_size"`
	FileHash      string     `json:"file_hash"`
	ContentType   string     `json:"content_type"`
	Provider      string     `json:"provider"`
	Model         string     `json:"model"`
	Language      string     `json:"language"`
	Duration      float64    `json:"duration"`
	Transcription string     `json:"transcription"`
	HasError      int        `json:"has_error"` // 0 or 1
	ErrorMessage  string     `json:"error_message"`
	StorageKey    string     `json:"storage_key,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// Failed reports whether the record stores a failed attempt.
func (r *TranscriptionRecord) Failed() bool {
	return r.HasError == 1
}
