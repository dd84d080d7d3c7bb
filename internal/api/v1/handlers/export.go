package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"audio-transcriber/internal/api/middleware"
	"audio-transcriber/internal/api/v1/dto"
	"audio-transcriber/internal/api/v1/services"
)

// ExportHandler handles export-related HTTP requests
type ExportHandler struct {
	service services.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(service services.ExportService) *ExportHandler {
	return &ExportHandler{
		service: service,
	}
}

// Export handles GET /api/v1/export
//
// @Summary Export transcription history
// @Tags export
// @Produce octet-stream
// @Param format query string false "Export format" Enums(xlsx,csv,json) default(xlsx)
// @Param provider query string false "Only this provider"
// @Param include_failed query bool false "Include failed transcriptions"
// @Success 200 {file} file "Exported history"
// @Failure 400 {object} errors.APIError "Invalid query parameters"
// @Failure 503 {object} errors.APIError "History disabled"
// @Router /export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if err := middleware.ValidateQuery(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	// Buffered so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := h.service.ExportTranscriptions(c.Request.Context(), req, &buf); err != nil {
		middleware.HandleError(c, err)
		return
	}

	contentType, ext := services.ExportContentType(req.Format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transcripciones.%s\"", ext))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
