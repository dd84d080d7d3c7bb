package handlers

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"audio-transcriber/internal/api/errors"
	"audio-transcriber/internal/api/middleware"
	"audio-transcriber/internal/api/v1/dto"
	"audio-transcriber/internal/api/v1/services"
	"audio-transcriber/internal/app/audio"
)

// maxRequestBytes leaves room for the form fields next to a maximum size upload.
const maxRequestBytes = audio.MaxUploadBytes + 1<<20

// TranscriptionHandler handles transcription-related API endpoints
type TranscriptionHandler struct {
	service   services.TranscriptionService
	documents services.DocumentService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService, documents services.DocumentService) *TranscriptionHandler {
	return &TranscriptionHandler{
		service:   service,
		documents: documents,
	}
}

// Transcribe handles POST /api/v1/transcriptions
//
// @Summary Transcribe an audio file
// @Description Uploads one audio file (max 25MB) and returns its transcription. The API key is
// @Description forwarded to the provider as a bearer token and never stored.
// @Tags transcriptions
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string false "Bearer <provider API key>"
// @Param file formData file true "Audio file"
// @Param api_key formData string false "Provider API key when no Authorization header is sent"
// @Param provider formData string false "Provider name" Enums(openai,gemini)
// @Param language formData string false "Language code" default(es)
// @Success 200 {object} dto.TranscriptionResponse "Transcription result"
// @Failure 413 {object} errors.APIError "File larger than 25MB"
// @Failure 422 {object} errors.APIError "Missing key or file, or not an audio file"
// @Failure 502 {object} errors.APIError "The transcription API rejected the request"
// @Router /transcriptions [post]
func (h *TranscriptionHandler) Transcribe(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	var form dto.TranscribeForm
	if err := middleware.ValidateForm(c, &form); err != nil {
		middleware.HandleError(c, err)
		return
	}

	apiKey := dto.BearerToken(c.GetHeader("Authorization"))
	if apiKey == "" {
		apiKey = form.APIKey
	}

	var upload *audio.Upload
	if form.File != nil {
		var err error
		upload, err = audio.ReadUpload(form.File)
		if err != nil {
			middleware.HandleError(c, services.UploadError(err))
			return
		}
	}

	response, err := h.service.Transcribe(c.Request.Context(), &services.TranscribeInput{
		APIKey:   apiKey,
		Provider: form.Provider,
		Language: form.Language,
		Upload:   upload,
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Download handles POST /api/v1/transcriptions/download
//
// @Summary Download a transcription document
// @Description Renders the text the page is showing as a downloadable file
// @Tags transcriptions
// @Accept x-www-form-urlencoded,json
// @Produce plain
// @Param file_name formData string true "Original audio file name"
// @Param text formData string false "Transcription text"
// @Param format formData string false "Document format" Enums(txt,srt) default(txt)
// @Param segments formData string false "JSON segments, required for srt"
// @Success 200 {string} string "Document body"
// @Failure 422 {object} errors.APIError "Validation error"
// @Router /transcriptions/download [post]
func (h *TranscriptionHandler) Download(c *gin.Context) {
	var req dto.DownloadRequest
	if err := middleware.ValidateForm(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	doc, err := h.documents.Render(&req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	sendDocument(c, doc)
}

// DownloadRecord handles GET /api/v1/transcriptions/:id/download
//
// @Summary Download a stored transcription
// @Tags transcriptions
// @Produce plain
// @Param id path int true "Transcription ID" minimum(1)
// @Param format query string false "Document format" Enums(txt,srt) default(txt)
// @Success 200 {string} string "Document body"
// @Failure 404 {object} errors.APIError "Transcription not found"
// @Failure 503 {object} errors.APIError "History disabled"
// @Router /transcriptions/{id}/download [get]
func (h *TranscriptionHandler) DownloadRecord(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var query dto.DownloadQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	doc, err := h.documents.RenderRecord(c.Request.Context(), id, query.Format)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	sendDocument(c, doc)
}

// Get handles GET /api/v1/transcriptions/:id
//
// @Summary Get transcription by ID
// @Tags transcriptions
// @Produce json
// @Param id path int true "Transcription ID" minimum(1)
// @Success 200 {object} dto.RecordResponse "Transcription details"
// @Failure 400 {object} errors.APIError "Bad request - invalid ID"
// @Failure 404 {object} errors.APIError "Transcription not found"
// @Failure 503 {object} errors.APIError "History disabled"
// @Router /transcriptions/{id} [get]
func (h *TranscriptionHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	response, err := h.service.GetTranscription(c.Request.Context(), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// List handles GET /api/v1/transcriptions
//
// @Summary List transcriptions with pagination
// @Tags transcriptions
// @Produce json
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Items per page" default(20) minimum(1) maximum(100)
// @Param provider query string false "Filter by provider"
// @Param status query string false "Filter by status" Enums(completed,failed,all)
// @Success 200 {object} dto.PaginatedTranscriptionsResponse "List of transcriptions with pagination"
// @Failure 400 {object} errors.APIError "Bad request - invalid query parameters"
// @Failure 503 {object} errors.APIError "History disabled"
// @Header 200 {string} X-Total-Count "Total number of transcriptions"
// @Router /transcriptions [get]
func (h *TranscriptionHandler) List(c *gin.Context) {
	var query dto.ListTranscriptionsQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.ListTranscriptions(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(response.Pagination.Total))
	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /api/v1/transcriptions/:id
//
// @Summary Delete a transcription
// @Description Soft deletes a transcription and removes its archived audio
// @Tags transcriptions
// @Param id path int true "Transcription ID" minimum(1)
// @Success 204 "Transcription deleted successfully"
// @Failure 400 {object} errors.APIError "Bad request - invalid ID"
// @Failure 404 {object} errors.APIError "Transcription not found"
// @Failure 503 {object} errors.APIError "History disabled"
// @Router /transcriptions/{id} [delete]
func (h *TranscriptionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTranscription(c.Request.Context(), id); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Providers handles GET /api/v1/providers
//
// @Summary List transcription providers
// @Tags providers
// @Produce json
// @Success 200 {object} dto.ProvidersResponse
// @Router /providers [get]
func (h *TranscriptionHandler) Providers(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Providers())
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		middleware.HandleError(c, errors.NewBadRequestError("Invalid transcription ID"))
		return 0, false
	}
	return id, true
}

func sendDocument(c *gin.Context, doc *services.Document) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Name}))
	c.Data(http.StatusOK, doc.ContentType, []byte(doc.Body))
}
