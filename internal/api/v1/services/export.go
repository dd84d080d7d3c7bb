package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/samber/lo"

	"audio-transcriber/internal/api/errors"
	"audio-transcriber/internal/api/v1/dto"
	"audio-transcriber/internal/app/converter/export"
	"audio-transcriber/internal/app/model"
	"audio-transcriber/internal/app/repository"
)

// Export formats
const (
	ExportXLSX = "xlsx"
	ExportCSV  = "csv"
	ExportJSON = "json"
)

// ExportServiceImpl implements the ExportService interface
type ExportServiceImpl struct {
	repo repository.TranscriptionDAO
}

// NewExportService creates a new export service. repo may be nil.
func NewExportService(repo repository.TranscriptionDAO) *ExportServiceImpl {
	return &ExportServiceImpl{repo: repo}
}

// ExportContentType returns the MIME type and file extension for an export format.
func ExportContentType(format string) (contentType, ext string) {
	switch format {
	case ExportCSV:
		return "text/csv; charset=utf-8", "csv"
	case ExportJSON:
		return "application/json", "json"
	default:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx"
	}
}

// ExportTranscriptions exports transcriptions in the requested format
func (s *ExportServiceImpl) ExportTranscriptions(ctx context.Context, req dto.ExportRequest, writer io.Writer) error {
	if s.repo == nil {
		return historyDisabled()
	}
	records, err := s.repo.All(ctx)
	if err != nil {
		return storeError(err, "Failed to fetch transcriptions")
	}

	records = lo.Filter(records, func(r model.TranscriptionRecord, _ int) bool {
		if !req.IncludeFailed && r.Failed() {
			return false
		}
		return req.Provider == "" || r.Provider == req.Provider
	})

	switch req.Format {
	case ExportCSV:
		return exportCSV(records, writer)
	case ExportJSON:
		return exportJSON(records, writer)
	case ExportXLSX, "":
		return export.ToExcel(records, writer)
	default:
		return errors.NewBadRequestError(fmt.Sprintf("unsupported export format: %s", req.Format))
	}
}

func exportCSV(records []model.TranscriptionRecord, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)

	header := []string{
		"ID", "Created At", "File Name", "File Size", "Provider", "Model",
		"Language", "Duration", "Status", "Transcription", "Error",
	}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range records {
		r := &records[i]
		row := []string{
			strconv.Itoa(r.ID),
			r.CreatedAt.Format(time.RFC3339),
			r.FileName,
			strconv.FormatInt(r.FileSize, 10),
			r.Provider,
			r.Model,
			r.Language,
			strconv.FormatFloat(r.Duration, 'f', 2, 64),
			dto.DetermineStatus(r),
			r.Transcription,
			r.ErrorMessage,
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

func exportJSON(records []model.TranscriptionRecord, writer io.Writer) error {
	responses := make([]dto.RecordResponse, len(records))
	for i := range records {
		responses[i] = dto.ToRecordResponse(&records[i])
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(responses)
}
