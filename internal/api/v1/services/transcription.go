package services

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"audio-transcriber/internal/api/errors"
	"audio-transcriber/internal/api/metrics"
	"audio-transcriber/internal/api/v1/dto"
	"audio-transcriber/internal/app/api"
	"audio-transcriber/internal/app/api/provider"
	"audio-transcriber/internal/app/audio"
	"audio-transcriber/internal/app/cache"
	apperrors "audio-transcriber/internal/app/errors"
	"audio-transcriber/internal/app/model"
	"audio-transcriber/internal/app/repository"
	"audio-transcriber/internal/app/utils"
	"audio-transcriber/internal/config"
)

const audioURLExpiry = time.Hour

// TranscriptionServiceImpl implements TranscriptionService
type TranscriptionServiceImpl struct {
	registry *provider.Registry
	defaults config.TranscriptionDefaults
	timeout  time.Duration
	cache    cache.Cache
	storage  StorageService
	history  repository.TranscriptionDAO
	logger   *zap.Logger
	now      func() time.Time
}

// NewTranscriptionService creates a new transcription service. storage and history may be nil.
func NewTranscriptionService(
	registry *provider.Registry,
	defaults config.TranscriptionDefaults,
	timeout time.Duration,
	resultCache cache.Cache,
	storage StorageService,
	history repository.TranscriptionDAO,
	logger *zap.Logger,
) *TranscriptionServiceImpl {
	if resultCache == nil {
		resultCache = cache.Noop{}
	}
	return &TranscriptionServiceImpl{
		registry: registry,
		defaults: defaults,
		timeout:  timeout,
		cache:    resultCache,
		storage:  storage,
		history:  history,
		logger:   logger,
		now:      time.Now,
	}
}

// Transcribe validates the upload, serves it from cache when possible and otherwise
// calls the selected provider exactly once.
func (s *TranscriptionServiceImpl) Transcribe(ctx context.Context, in *TranscribeInput) (*dto.TranscriptionResponse, error) {
	if in == nil || in.Upload == nil || strings.TrimSpace(in.APIKey) == "" {
		return nil, errors.NewValidationError(apperrors.ErrMissingInput.Message(), nil)
	}
	if err := audio.Validate(in.Upload); err != nil {
		return nil, UploadError(err)
	}
	metrics.ObserveUpload(in.Upload.Size)

	transcriber, err := s.registry.Get(in.Provider)
	if err != nil {
		return nil, errors.NewValidationError("Unknown transcription provider", map[string]string{
			"provider": "must be one of: " + strings.Join(s.registry.Names(), ", "),
		})
	}
	providerName := transcriber.Name()

	language := in.Language
	if language == "" {
		language = s.defaults.Language
	}
	req := &api.Request{
		APIKey:         in.APIKey,
		Upload:         in.Upload,
		Model:          s.defaults.ModelFor(providerName),
		Language:       language,
		ResponseFormat: s.defaults.ResponseFormat,
		Temperature:    s.defaults.Temperature,
	}

	fileHash := utils.HashBytes(in.Upload.Data)
	cacheKey := cache.Key(utils.HashBytes([]byte(in.APIKey)), fileHash, providerName, req.Model, req.Language, req.Temperature)
	log := s.logger.With(
		zap.String("provider", providerName),
		zap.String("file_name", in.Upload.Name),
		zap.Int64("file_size", in.Upload.Size),
		zap.String("file_hash", fileHash),
	)

	if cached, ok, err := s.cache.Get(ctx, cacheKey); err != nil {
		log.Warn("cache lookup failed", zap.Error(err))
	} else if ok {
		cached.Cached = true
		metrics.RecordTranscription(providerName, metrics.OutcomeCached, 0)
		log.Info("transcription served from cache")
		return s.respond(ctx, in.Upload, fileHash, cached, "", log), nil
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := transcriber.Transcribe(callCtx, req)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordTranscription(providerName, metrics.OutcomeError, elapsed)
		log.Warn("transcription failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		s.recordFailure(ctx, in.Upload, fileHash, providerName, req, err, log)
		return nil, providerError(err)
	}
	metrics.RecordTranscription(providerName, metrics.OutcomeSuccess, elapsed)
	log.Info("transcription completed", zap.Duration("elapsed", elapsed), zap.Int("text_length", len(result.Text)))

	if result.Provider == "" {
		result.Provider = providerName
	}
	if err := s.cache.Set(ctx, cacheKey, result); err != nil {
		log.Warn("cache store failed", zap.Error(err))
	}

	storageKey := ""
	if s.storage != nil {
		uploaded, err := s.storage.UploadFile(ctx, in.Upload, fileHash)
		if err != nil {
			log.Warn("audio archive failed", zap.Error(err))
		} else {
			storageKey = uploaded.Key
		}
	}

	return s.respond(ctx, in.Upload, fileHash, result, storageKey, log), nil
}

// respond records history (best effort) and builds the response.
func (s *TranscriptionServiceImpl) respond(ctx context.Context, upload *audio.Upload, fileHash string, result *model.TranscriptionResult, storageKey string, log *zap.Logger) *dto.TranscriptionResponse {
	resp := &dto.TranscriptionResponse{
		FileName:    upload.Name,
		FileSize:    upload.Size,
		SizeLabel:   audio.FormatSizeMB(upload.Size),
		ContentType: upload.ContentType,
		Text:        result.Text,
		Language:    result.Language,
		Duration:    result.Duration,
		Segments:    dto.ToSegments(result.Segments),
		Provider:    result.Provider,
		Model:       result.Model,
		Cached:      result.Cached,
		CreatedAt:   s.now().UTC(),
	}

	if s.history != nil {
		record := &model.TranscriptionRecord{
			FileName:      upload.Name,
			FileSize:      upload.Size,
			FileHash:      fileHash,
			ContentType:   upload.ContentType,
			Provider:      result.Provider,
			Model:         result.Model,
			Language:      result.Language,
			Duration:      result.Duration,
			Transcription: result.Text,
			StorageKey:    storageKey,
			CreatedAt:     resp.CreatedAt,
		}
		if id, err := s.history.Record(ctx, record); err != nil {
			log.Warn("history record failed", zap.Error(err))
		} else {
			resp.ID = id
		}
	}
	return resp
}

func (s *TranscriptionServiceImpl) recordFailure(ctx context.Context, upload *audio.Upload, fileHash, providerName string, req *api.Request, cause error, log *zap.Logger) {
	if s.history == nil {
		return
	}
	record := &model.TranscriptionRecord{
		FileName:     upload.Name,
		FileSize:     upload.Size,
		FileHash:     fileHash,
		ContentType:  upload.ContentType,
		Provider:     providerName,
		Model:        req.Model,
		Language:     req.Language,
		HasError:     1,
		ErrorMessage: cause.Error(),
		CreatedAt:    s.now().UTC(),
	}
	if _, err := s.history.Record(ctx, record); err != nil {
		log.Warn("history record failed", zap.Error(err))
	}
}

// Providers lists the registered providers
func (s *TranscriptionServiceImpl) Providers() dto.ProvidersResponse {
	return dto.ProvidersResponse{
		Providers: s.registry.Names(),
		Default:   s.registry.Default(),
	}
}

// GetTranscription retrieves a transcription by ID
func (s *TranscriptionServiceImpl) GetTranscription(ctx context.Context, id int) (*dto.RecordResponse, error) {
	if s.history == nil {
		return nil, historyDisabled()
	}
	record, err := s.history.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "Failed to retrieve transcription")
	}

	resp := dto.ToRecordResponse(record)
	if s.storage != nil && record.StorageKey != "" {
		presigned, err := s.storage.GeneratePresignedURL(ctx, record.StorageKey, audioURLExpiry)
		if err != nil {
			s.logger.Warn("presign failed", zap.Int("id", id), zap.Error(err))
		} else {
			resp.AudioURL = presigned.URL
		}
	}
	return &resp, nil
}

// ListTranscriptions lists transcriptions with pagination and filtering
func (s *TranscriptionServiceImpl) ListTranscriptions(ctx context.Context, query dto.ListTranscriptionsQuery) (*dto.PaginatedTranscriptionsResponse, error) {
	if s.history == nil {
		return nil, historyDisabled()
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = repository.DefaultPageSize
	}

	records, total, err := s.history.List(ctx, repository.ListOptions{
		Limit:         query.Limit,
		Offset:        (query.Page - 1) * query.Limit,
		Provider:      query.Provider,
		IncludeFailed: query.Status == "all",
		OnlyFailed:    query.Status == "failed",
	})
	if err != nil {
		return nil, storeError(err, "Failed to list transcriptions")
	}

	responses := make([]dto.RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, dto.ToRecordResponse(&records[i]))
	}

	return &dto.PaginatedTranscriptionsResponse{
		Transcriptions: responses,
		Pagination:     dto.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// DeleteTranscription soft-deletes a record and removes its archived audio
func (s *TranscriptionServiceImpl) DeleteTranscription(ctx context.Context, id int) error {
	if s.history == nil {
		return historyDisabled()
	}
	record, err := s.history.Get(ctx, id)
	if err != nil {
		return storeError(err, "Failed to check transcription")
	}
	if err := s.history.SoftDelete(ctx, id); err != nil {
		return storeError(err, "Failed to delete transcription")
	}

	if s.storage != nil && record.StorageKey != "" {
		if err := s.storage.DeleteFile(ctx, record.StorageKey); err != nil {
			s.logger.Warn("archived audio delete failed", zap.Int("id", id), zap.Error(err))
		}
	}
	return nil
}

// UploadError maps an audio validation or read error to its API error.
func UploadError(err error) *errors.APIError {
	var appErr *apperrors.Error
	msg := err.Error()
	if stderrors.As(err, &appErr) {
		msg = appErr.Message()
	}
	if stderrors.Is(err, apperrors.ErrFileTooLarge) {
		return errors.NewPayloadTooLargeError(msg)
	}
	return errors.NewValidationError(msg, map[string]string{"file": msg})
}

// providerError maps a provider failure to a 502, or to a 401 when the upstream
// rejected the user's credential. Both keep the upstream status in Code.
func providerError(err error) *errors.APIError {
	var upstream *api.UpstreamError
	if !stderrors.As(err, &upstream) {
		return errors.NewUpstreamError(api.UserMessage(err), 0)
	}

	apiErr := errors.NewUpstreamError(api.UserMessage(upstream), upstream.StatusCode)
	if upstream.StatusCode == http.StatusUnauthorized {
		unauthorized := errors.NewUnauthorizedError(apiErr.Message)
		unauthorized.Code = apiErr.Code
		return unauthorized
	}
	return apiErr
}

func storeError(err error, message string) *errors.APIError {
	if stderrors.Is(err, apperrors.ErrNotFound) {
		return errors.NewNotFoundError("transcription")
	}
	return errors.WrapError(err, errors.KindInternal, message)
}

func historyDisabled() *errors.APIError {
	return errors.NewServiceUnavailableError(apperrors.ErrHistoryDisabled.Message())
}
