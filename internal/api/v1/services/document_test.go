package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	apierrors "audio-transcriber/internal/api/errors"
	"audio-transcriber/internal/api/v1/dto"
	"audio-transcriber/internal/app/model"
	"audio-transcriber/internal/app/repository/sqlite"
)

func seededHistory(t *testing.T) *sqlite.SQLiteDB {
	t.Helper()
	db, err := sqlite.NewSQLiteDB(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	base := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	records := []*model.TranscriptionRecord{
		{FileName: "uno.mp3", FileSize: 2048, Provider: "openai", Model: "whisper-1", Duration: 10, Transcription: "primero", CreatedAt: base},
		{FileName: "dos.ogg", FileSize: 4096, Provider: "gemini", Model: "gemini-2.5-flash", Duration: 5, Transcription: "segundo", CreatedAt: base.Add(time.Minute)},
		{FileName: "tres.wav", FileSize: 1024, Provider: "openai", HasError: 1, ErrorMessage: "Error 401: Unauthorized", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range records {
		_, err := db.Record(context.Background(), r)
		require.NoError(t, err)
	}
	return db
}

func TestDocumentService_Render(t *testing.T) {
	svc := NewDocumentService(nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC) }

	doc, err := svc.Render(&dto.DownloadRequest{FileName: "reunion.final.mp3", Text: "Buenos días"})
	require.NoError(t, err)
	assert.Equal(t, "transcripcion_reunion.final.txt", doc.Name)
	assert.Equal(t, "TRANSCRIPCIÓN - reunion.final.mp3\n\nFecha: 5/3/2024\n\nBuenos días", doc.Body)
	assert.Equal(t, "text/plain; charset=utf-8", doc.ContentType)

	doc, err = svc.Render(&dto.DownloadRequest{
		FileName: "reunion.mp3",
		Format:   "srt",
		Segments: `[{"id":0,"start":0,"end":1.5,"text":" Hola"}]`,
	})
	require.NoError(t, err)
	assert.Equal(t, "transcripcion_reunion.srt", doc.Name)
	assert.Contains(t, doc.Body, "00:00:00,000 --> 00:00:01,500")

	_, err = svc.Render(&dto.DownloadRequest{FileName: "x.mp3", Format: "srt", Segments: "{"})
	requireAPIError(t, err, apierrors.KindValidation)
}

func TestDocumentService_RenderRecord(t *testing.T) {
	db := seededHistory(t)
	svc := NewDocumentService(db)
	svc.now = func() time.Time { return time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	doc, err := svc.RenderRecord(ctx, 1, "srt")
	require.NoError(t, err)
	assert.Equal(t, "transcripcion_uno.txt", doc.Name)
	assert.Equal(t, "TRANSCRIPCIÓN - uno.mp3\n\nFecha: 25/12/2024\n\nprimero", doc.Body)

	_, err = svc.RenderRecord(ctx, 3, "txt")
	requireAPIError(t, err, apierrors.KindConflict)

	_, err = svc.RenderRecord(ctx, 42, "txt")
	requireAPIError(t, err, apierrors.KindNotFound)

	_, err = NewDocumentService(nil).RenderRecord(ctx, 1, "txt")
	requireAPIError(t, err, apierrors.KindServiceUnavailable)
}

func TestStatsService(t *testing.T) {
	stats, err := NewStatsService(seededHistory(t)).GetSystemStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalTranscripts)
	assert.Equal(t, 1, stats.FailedTranscripts)
	assert.InDelta(t, 15.0, stats.TotalAudioSeconds, 0.001)
	assert.Equal(t, 2, stats.ByProvider["openai"])
	assert.Equal(t, 1, stats.ByProvider["gemini"])

	_, err = NewStatsService(nil).GetSystemStats(context.Background())
	requireAPIError(t, err, apierrors.KindServiceUnavailable)
}

func TestExportService(t *testing.T) {
	svc := NewExportService(seededHistory(t))
	ctx := context.Background()

	t.Run("csv skips failed by default", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, svc.ExportTranscriptions(ctx, dto.ExportRequest{Format: "csv"}, &buf))
		rows, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "ID", rows[0][0])
		assert.Equal(t, "uno.mp3", rows[1][2])
		assert.Equal(t, "dos.ogg", rows[2][2])
	})

	t.Run("json with failed and provider filter", func(t *testing.T) {
		var buf bytes.Buffer
		req := dto.ExportRequest{Format: "json", Provider: "openai", IncludeFailed: true}
		require.NoError(t, svc.ExportTranscriptions(ctx, req, &buf))
		var out []dto.RecordResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		require.Len(t, out, 2)
		assert.Equal(t, "completed", out[0].Status)
		assert.Equal(t, "failed", out[1].Status)
	})

	t.Run("xlsx", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, svc.ExportTranscriptions(ctx, dto.ExportRequest{}, &buf))
		file, err := xlsx.OpenBinary(buf.Bytes())
		require.NoError(t, err)
		require.Len(t, file.Sheets, 1)
		assert.Len(t, file.Sheets[0].Rows, 3)
	})

	t.Run("unknown format", func(t *testing.T) {
		err := svc.ExportTranscriptions(ctx, dto.ExportRequest{Format: "pdf"}, &bytes.Buffer{})
		requireAPIError(t, err, apierrors.KindBadRequest)
	})

	t.Run("history disabled", func(t *testing.T) {
		err := NewExportService(nil).ExportTranscriptions(ctx, dto.ExportRequest{}, &bytes.Buffer{})
		requireAPIError(t, err, apierrors.KindServiceUnavailable)
	})
}

func TestExportContentType(t *testing.T) {
	ct, ext := ExportContentType("csv")
	assert.Equal(t, "text/csv; charset=utf-8", ct)
	assert.Equal(t, "csv", ext)
	_, ext = ExportContentType("")
	assert.Equal(t, "xlsx", ext)
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("Nota.WAV", "abcdef0123456789abcdef", time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC))
	assert.Regexp(t, `^audio/2024/03/05/abcdef012345-[0-9a-f]{8}\.wav$`, key)
}
