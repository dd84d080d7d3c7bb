package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"audio-transcriber/internal/app/audio"
	"audio-transcriber/internal/app/model"
)

// SampleWAV is the smallest byte sequence mimetype recognises as audio/wav.
var SampleWAV = []byte("RIFF\x24\x00\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x01\x00\x44\xac\x00\x00\x88\x58\x01\x00\x02\x00\x10\x00data\x00\x00\x00\x00")

// TestRecords is a small history: two completed transcriptions and one failure.
var TestRecords = []model.TranscriptionRecord{
	{
		ID:            1,
		FileName:      "entrevista.mp3",
		FileSize:      3 * 1024 * 1024,
		FileHash:      "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
		ContentType:   "audio/mpeg",
		Provider:      "openai",
		Model:         "whisper-1",
		Language:      "es",
		Duration:      182.4,
		Transcription: "Buenos días, gracias por acompañarnos en esta entrevista.",
		CreatedAt:     time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	},
	{
		ID:            2,
		FileName:      "nota de voz.ogg",
		FileSize:      512 * 1024,
		FileHash:      "60303ae22b998861bce3b28f33eec1be758a213c86c93c076dbe9f558c11c752",
		ContentType:   "audio/ogg",
		Provider:      "gemini",
		Model:         "gemini-2.5-flash",
		Language:      "es",
		Duration:      14.2,
		Transcription: "Recuerda comprar pan.",
		CreatedAt:     time.Date(2024, 1, 16, 8, 5, 0, 0, time.UTC),
	},
	{
		ID:           3,
		FileName:     "clave.wav",
		FileSize:     1024,
		FileHash:     "fd61a03af4f77d870fc21e05e7e80678095c92d808cfb3b5c279ee04c74aca13",
		ContentType:  "audio/wav",
		Provider:     "openai",
		Model:        "whisper-1",
		Language:     "es",
		HasError:     1,
		ErrorMessage: "Incorrect API key provided",
		CreatedAt:    time.Date(2024, 1, 17, 19, 0, 0, 0, time.UTC),
	},
}

// TestUpload returns a valid in-memory wav upload.
func TestUpload(name string) *audio.Upload {
	data := append([]byte(nil), SampleWAV...)
	return &audio.Upload{Name: name, ContentType: "audio/wav", Size: int64(len(data)), Data: data}
}

// WriteAudioFile writes SampleWAV under dir and returns its path.
func WriteAudioFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, SampleWAV, 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
