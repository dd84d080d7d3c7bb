package export

import (
	"fmt"
	"io"
	"time"

	"github.com/tealeg/xlsx"

	"audio-transcriber/internal/app/model"
)

const SheetName = "Transcripciones"

var excelHeaders = []string{
	"ID", "Fecha", "Archivo", "Tamaño", "Proveedor", "Modelo", "Idioma",
	"Duración (s)", "Transcripción", "Error",
}

// ToExcel writes records as a single-sheet workbook.
func ToExcel(records []model.TranscriptionRecord, w io.Writer) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range excelHeaders {
		headerRow.AddCell().Value = h
	}

	for _, r := range records {
		row := sheet.AddRow()
		row.AddCell().Value = fmt.Sprint(r.ID)
		row.AddCell().Value = r.CreatedAt.Format(time.RFC3339)
		row.AddCell().Value = r.FileName
		row.AddCell().Value = fmt.Sprintf("%.2f MB", float64(r.FileSize)/(1024*1024))
		row.AddCell().Value = r.Provider
		row.AddCell().Value = r.Model
		row.AddCell().Value = r.Language
		row.AddCell().Value = fmt.Sprintf("%.2f", r.Duration)
		row.AddCell().Value = r.Transcription
		row.AddCell().Value = r.ErrorMessage
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
