package services

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apierrors "audio-transcriber/internal/api/errors"
	"audio-transcriber/internal/api/metrics"
	"audio-transcriber/internal/api/v1/dto"
	"audio-transcriber/internal/app/api"
	"audio-transcriber/internal/app/api/provider"
	"audio-transcriber/internal/app/audio"
	"audio-transcriber/internal/app/cache"
	"audio-transcriber/internal/app/model"
	"audio-transcriber/internal/app/repository"
	"audio-transcriber/internal/app/repository/sqlite"
	"audio-transcriber/internal/config"
)

const testKey = "sk-test-1234567890abcdefghij"

type fakeTranscriber struct {
	name  string
	calls atomic.Int32
	last  *api.Request
	fn    func(ctx context.Context, req *api.Request) (*model.TranscriptionResult, error)
}

func (f *fakeTranscriber) Name() string { return f.name }

func (f *fakeTranscriber) Transcribe(ctx context.Context, req *api.Request) (*model.TranscriptionResult, error) {
	f.calls.Add(1)
	f.last = req
	if f.fn != nil {
		return f.fn(ctx, req)
	}
	return &model.TranscriptionResult{
		Text:     "Hola, esto es una prueba.",
		Language: "spanish",
		Duration: 3.5,
		Segments: []model.Segment{{ID: 0, Start: 0, End: 3.5, Text: "Hola, esto es una prueba."}},
		Provider: f.name,
		Model:    req.Model,
	}, nil
}

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) UploadFile(ctx context.Context, upload *audio.Upload, fileHash string) (*FileUploadResult, error) {
	args := m.Called(ctx, upload, fileHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FileUploadResult), args.Error(1)
}

func (m *MockStorageService) GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (*PresignedURLResult, error) {
	args := m.Called(ctx, key, expiration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PresignedURLResult), args.Error(1)
}

func (m *MockStorageService) GetFileURL(key string) string {
	return m.Called(key).String(0)
}

func (m *MockStorageService) DeleteFile(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type fixture struct {
	svc         *TranscriptionServiceImpl
	transcriber *fakeTranscriber
	history     repository.TranscriptionDAO
}

func newFixture(t *testing.T, storage StorageService, withCache bool) *fixture {
	t.Helper()
	fake := &fakeTranscriber{name: "openai"}
	registry, err := provider.NewRegistry(fake, &fakeTranscriber{name: "gemini"})
	require.NoError(t, err)

	db, err := sqlite.NewSQLiteDB(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var resultCache cache.Cache = cache.Noop{}
	if withCache {
		mr := miniredis.RunT(t)
		rc, err := cache.NewRedisCache(context.Background(), mr.Addr(), time.Hour)
		require.NoError(t, err)
		t.Cleanup(func() { rc.Close() })
		resultCache = rc
	}

	svc := NewTranscriptionService(registry, config.DefaultTranscription(), time.Second, resultCache, storage, db, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC) }
	return &fixture{svc: svc, transcriber: fake, history: db}
}

func testUpload() *audio.Upload {
	data := []byte("RIFF....WAVEfmt fake audio payload")
	return &audio.Upload{Name: "nota.wav", ContentType: "audio/wav", Size: int64(len(data)), Data: data}
}

func requireAPIError(t *testing.T, err error, kind apierrors.ErrorKind) *apierrors.APIError {
	t.Helper()
	var apiErr *apierrors.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	assert.Equal(t, kind, apiErr.Kind)
	return apiErr
}

func TestTranscribe_Validation(t *testing.T) {
	f := newFixture(t, nil, false)
	ctx := context.Background()

	tests := []struct {
		name    string
		in      *TranscribeInput
		kind    apierrors.ErrorKind
		message string
	}{
		{
			name:    "missing key",
			in:      &TranscribeInput{Upload: testUpload()},
			kind:    apierrors.KindValidation,
			message: "Por favor selecciona un archivo y proporciona tu API key",
		},
		{
			name:    "missing file",
			in:      &TranscribeInput{APIKey: testKey},
			kind:    apierrors.KindValidation,
			message: "Por favor selecciona un archivo y proporciona tu API key",
		},
		{
			name: "not audio",
			in: &TranscribeInput{APIKey: testKey, Upload: &audio.Upload{
				Name: "doc.pdf", ContentType: "application/pdf", Size: 10, Data: make([]byte, 10),
			}},
			kind:    apierrors.KindValidation,
			message: "Por favor selecciona un archivo de audio válido",
		},
		{
			name: "too large",
			in: &TranscribeInput{APIKey: testKey, Upload: &audio.Upload{
				Name: "big.mp3", ContentType: "audio/mpeg", Size: audio.MaxUploadBytes + 1,
			}},
			kind:    apierrors.KindPayloadTooLarge,
			message: "El archivo es muy grande. El límite es 25MB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Transcribe(ctx, tt.in)
			apiErr := requireAPIError(t, err, tt.kind)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
	assert.Zero(t, f.transcriber.calls.Load())
}

func TestTranscribe_UnknownProvider(t *testing.T) {
	f := newFixture(t, nil, false)

	_, err := f.svc.Transcribe(context.Background(), &TranscribeInput{APIKey: testKey, Provider: "azure", Upload: testUpload()})
	apiErr := requireAPIError(t, err, apierrors.KindValidation)
	assert.Equal(t, "must be one of: gemini, openai", apiErr.Details["provider"])
	assert.Zero(t, f.transcriber.calls.Load())
}

func TestTranscribe_Success(t *testing.T) {
	storage := new(MockStorageService)
	storage.On("UploadFile", mock.Anything, mock.AnythingOfType("*audio.Upload"), mock.AnythingOfType("string")).
		Return(&FileUploadResult{Key: "audio/2024/03/05/abc-123.wav"}, nil)
	f := newFixture(t, storage, false)
	ctx := context.Background()

	resp, err := f.svc.Transcribe(ctx, &TranscribeInput{APIKey: testKey, Upload: testUpload()})
	require.NoError(t, err)

	assert.Equal(t, int32(1), f.transcriber.calls.Load())
	assert.Equal(t, testKey, f.transcriber.last.APIKey)
	assert.Equal(t, "whisper-1", f.transcriber.last.Model)
	assert.Equal(t, "es", f.transcriber.last.Language)
	assert.Equal(t, "verbose_json", f.transcriber.last.ResponseFormat)
	assert.Zero(t, f.transcriber.last.Temperature)

	assert.Equal(t, "Hola, esto es una prueba.", resp.Text)
	assert.Equal(t, "nota.wav", resp.FileName)
	assert.Equal(t, "0.00 MB", resp.SizeLabel)
	assert.Equal(t, "openai", resp.Provider)
	assert.False(t, resp.Cached)
	assert.Len(t, resp.Segments, 1)
	require.NotZero(t, resp.ID)

	stored, err := f.history.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "audio/2024/03/05/abc-123.wav", stored.StorageKey)
	assert.Equal(t, "Hola, esto es una prueba.", stored.Transcription)
	assert.Len(t, stored.FileHash, 64)
	storage.AssertExpectations(t)
}

func TestTranscribe_CacheHitSkipsProvider(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	first, err := f.svc.Transcribe(ctx, &TranscribeInput{APIKey: testKey, Upload: testUpload()})
	require.NoError(t, err)
	second, err := f.svc.Transcribe(ctx, &TranscribeInput{APIKey: testKey, Upload: testUpload()})
	require.NoError(t, err)

	assert.Equal(t, int32(1), f.transcriber.calls.Load())
	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Text, second.Text)

	// a different language is a different cache entry
	_, err = f.svc.Transcribe(ctx, &TranscribeInput{APIKey: testKey, Language: "en", Upload: testUpload()})
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.transcriber.calls.Load())

	_, total, err := f.history.List(ctx, repository.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestTranscribe_UpstreamError(t *testing.T) {
	f := newFixture(t, nil, true)
	f.transcriber.fn = func(ctx context.Context, req *api.Request) (*model.TranscriptionResult, error) {
		return nil, api.NewUpstreamError("openai", 429, "Rate limit reached", errors.New("429"))
	}
	ctx := context.Background()

	_, err := f.svc.Transcribe(ctx, &TranscribeInput{APIKey: testKey, Upload: testUpload()})
	apiErr := requireAPIError(t, err, apierrors.KindUpstream)
	assert.Equal(t, "Error en la transcripción: Rate limit reached", apiErr.Message)
	assert.Equal(t, "429", apiErr.Code)
	assert.Equal(t, http.StatusBadGateway, apiErr.HTTPStatus())

	records, total, err := f.history.List(ctx, repository.ListOptions{IncludeFailed: true})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.True(t, records[0].Failed())
	assert.NotContains(t, records[0].ErrorMessage, testKey)

	// failures are not cached
	_, err = f.svc.Transcribe(ctx, &TranscribeInput{APIKey: testKey, Upload: testUpload()})
	require.Error(t, err)
	assert.Equal(t, int32(2), f.transcriber.calls.Load())
}

func TestTranscribe_RejectedCredential(t *testing.T) {
	f := newFixture(t, nil, false)
	f.transcriber.fn = func(ctx context.Context, req *api.Request) (*model.TranscriptionResult, error) {
		return nil, api.NewUpstreamError("openai", 401, "Incorrect API key provided", errors.New("401"))
	}

	_, err := f.svc.Transcribe(context.Background(), &TranscribeInput{APIKey: testKey, Upload: testUpload()})
	apiErr := requireAPIError(t, err, apierrors.KindUnauthorized)
	assert.Equal(t, "Error en la transcripción: Incorrect API key provided", apiErr.Message)
	assert.Equal(t, "401", apiErr.Code)
	assert.Equal(t, http.StatusUnauthorized, apiErr.HTTPStatus())
}

func TestTranscribe_CacheIsScopedToCredential(t *testing.T) {
	f := newFixture(t, nil, true)
	ctx := context.Background()

	first, err := f.svc.Transcribe(ctx, &TranscribeInput{APIKey: testKey, Upload: testUpload()})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	f.transcriber.fn = func(ctx context.Context, req *api.Request) (*model.TranscriptionResult, error) {
		return nil, api.NewUpstreamError("openai", 401, "Incorrect API key provided", nil)
	}

	_, err = f.svc.Transcribe(ctx, &TranscribeInput{APIKey: "not-a-real-key", Upload: testUpload()})
	requireAPIError(t, err, apierrors.KindUnauthorized)
	assert.Equal(t, int32(2), f.transcriber.calls.Load())

	// the original credential still hits its own entry
	again, err := f.svc.Transcribe(ctx, &TranscribeInput{APIKey: testKey, Upload: testUpload()})
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, int32(2), f.transcriber.calls.Load())
}

func uploadObservations(t *testing.T, reg *prometheus.Registry) uint64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "transcriber_upload_bytes" {
			return mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	t.Fatal("transcriber_upload_bytes not registered")
	return 0
}

func TestTranscribe_ObservesEveryValidUpload(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.Register(reg)

	f := newFixture(t, nil, true)
	ctx := context.Background()
	start := uploadObservations(t, reg)

	_, err := f.svc.Transcribe(ctx, &TranscribeInput{APIKey: testKey, Upload: testUpload()})
	require.NoError(t, err)
	_, err = f.svc.Transcribe(ctx, &TranscribeInput{APIKey: testKey, Upload: testUpload()})
	require.NoError(t, err)

	f.transcriber.fn = func(ctx context.Context, req *api.Request) (*model.TranscriptionResult, error) {
		return nil, api.NewUpstreamError("openai", 500, "", nil)
	}
	_, err = f.svc.Transcribe(ctx, &TranscribeInput{APIKey: testKey, Language: "en", Upload: testUpload()})
	require.Error(t, err)

	// rejected before validation passes
	_, err = f.svc.Transcribe(ctx, &TranscribeInput{APIKey: testKey, Upload: &audio.Upload{Name: "a.txt", ContentType: "text/plain", Size: 3, Data: []byte("abc")}})
	require.Error(t, err)

	assert.Equal(t, uint64(3), uploadObservations(t, reg)-start)
}

func TestTranscribe_Timeout(t *testing.T) {
	f := newFixture(t, nil, false)
	f.svc.timeout = 20 * time.Millisecond
	f.transcriber.fn = func(ctx context.Context, req *api.Request) (*model.TranscriptionResult, error) {
		<-ctx.Done()
		return nil, api.NewUpstreamError("openai", 0, "", ctx.Err())
	}

	_, err := f.svc.Transcribe(context.Background(), &TranscribeInput{APIKey: testKey, Upload: testUpload()})
	apiErr := requireAPIError(t, err, apierrors.KindUpstream)
	assert.Contains(t, apiErr.Message, "deadline exceeded")
	assert.Empty(t, apiErr.Code)
}

func TestTranscribe_SideStoreFailuresAreIgnored(t *testing.T) {
	storage := new(MockStorageService)
	storage.On("UploadFile", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("minio down"))
	f := newFixture(t, storage, false)
	require.NoError(t, f.history.Close())

	resp, err := f.svc.Transcribe(context.Background(), &TranscribeInput{APIKey: testKey, Upload: testUpload()})
	require.NoError(t, err)
	assert.Equal(t, "Hola, esto es una prueba.", resp.Text)
	assert.Zero(t, resp.ID)
}

func TestTranscribe_SelectsProvider(t *testing.T) {
	f := newFixture(t, nil, false)

	resp, err := f.svc.Transcribe(context.Background(), &TranscribeInput{APIKey: testKey, Provider: "gemini", Upload: testUpload()})
	require.NoError(t, err)
	assert.Equal(t, "gemini", resp.Provider)
	assert.Equal(t, "gemini-2.5-flash", resp.Model)
	assert.Zero(t, f.transcriber.calls.Load())
}

func TestProviders(t *testing.T) {
	f := newFixture(t, nil, false)
	assert.Equal(t, dto.ProvidersResponse{Providers: []string{"gemini", "openai"}, Default: "openai"}, f.svc.Providers())
}

func TestHistory_Disabled(t *testing.T) {
	registry, err := provider.NewRegistry(&fakeTranscriber{name: "openai"})
	require.NoError(t, err)
	svc := NewTranscriptionService(registry, config.DefaultTranscription(), 0, nil, nil, nil, zap.NewNop())
	ctx := context.Background()

	_, err = svc.GetTranscription(ctx, 1)
	requireAPIError(t, err, apierrors.KindServiceUnavailable)
	_, err = svc.ListTranscriptions(ctx, dto.ListTranscriptionsQuery{})
	requireAPIError(t, err, apierrors.KindServiceUnavailable)
	err = svc.DeleteTranscription(ctx, 1)
	requireAPIError(t, err, apierrors.KindServiceUnavailable)

	// transcription itself still works
	resp, err := svc.Transcribe(ctx, &TranscribeInput{APIKey: testKey, Upload: testUpload()})
	require.NoError(t, err)
	assert.Zero(t, resp.ID)
}

func TestGetTranscription_WithAudioURL(t *testing.T) {
	storage := new(MockStorageService)
	storage.On("UploadFile", mock.Anything, mock.Anything, mock.Anything).Return(&FileUploadResult{Key: "audio/k.wav"}, nil)
	storage.On("GeneratePresignedURL", mock.Anything, "audio/k.wav", time.Hour).
		Return(&PresignedURLResult{URL: "http://minio/audio/k.wav?sig=1"}, nil)
	f := newFixture(t, storage, false)
	ctx := context.Background()

	created, err := f.svc.Transcribe(ctx, &TranscribeInput{APIKey: testKey, Upload: testUpload()})
	require.NoError(t, err)

	got, err := f.svc.GetTranscription(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "http://minio/audio/k.wav?sig=1", got.AudioURL)
	assert.Equal(t, "completed", got.Status)

	_, err = f.svc.GetTranscription(ctx, 9999)
	requireAPIError(t, err, apierrors.KindNotFound)
}

func TestDeleteTranscription(t *testing.T) {
	storage := new(MockStorageService)
	storage.On("UploadFile", mock.Anything, mock.Anything, mock.Anything).Return(&FileUploadResult{Key: "audio/k.wav"}, nil)
	storage.On("DeleteFile", mock.Anything, "audio/k.wav").Return(nil).Once()
	f := newFixture(t, storage, false)
	ctx := context.Background()

	created, err := f.svc.Transcribe(ctx, &TranscribeInput{APIKey: testKey, Upload: testUpload()})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteTranscription(ctx, created.ID))
	_, err = f.svc.GetTranscription(ctx, created.ID)
	requireAPIError(t, err, apierrors.KindNotFound)

	err = f.svc.DeleteTranscription(ctx, created.ID)
	requireAPIError(t, err, apierrors.KindNotFound)
	storage.AssertExpectations(t)
}

func TestListTranscriptions_StatusFilter(t *testing.T) {
	f := newFixture(t, nil, false)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	_, err := f.history.Record(ctx, &model.TranscriptionRecord{
		FileName: "clave.wav", Provider: "openai", HasError: 1,
		ErrorMessage: "Error 500: Internal Server Error", CreatedAt: base,
	})
	require.NoError(t, err)
	for i := 1; i <= 3; i++ {
		_, err := f.history.Record(ctx, &model.TranscriptionRecord{
			FileName: "nota.wav", Provider: "openai", Transcription: "hola",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	failed, err := f.svc.ListTranscriptions(ctx, dto.ListTranscriptionsQuery{Page: 1, Limit: 2, Status: "failed"})
	require.NoError(t, err)
	require.Len(t, failed.Transcriptions, 1)
	assert.Equal(t, "failed", failed.Transcriptions[0].Status)
	assert.Equal(t, "Error 500: Internal Server Error", failed.Transcriptions[0].Error)
	assert.Equal(t, 1, failed.Pagination.Total)
	assert.Equal(t, 1, failed.Pagination.TotalPages)
	assert.False(t, failed.Pagination.HasNext)

	completed, err := f.svc.ListTranscriptions(ctx, dto.ListTranscriptionsQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, completed.Transcriptions, 1)
	assert.Equal(t, "completed", completed.Transcriptions[0].Status)
	assert.Equal(t, 3, completed.Pagination.Total)
	assert.Equal(t, 2, completed.Pagination.TotalPages)
	assert.True(t, completed.Pagination.HasPrev)

	all, err := f.svc.ListTranscriptions(ctx, dto.ListTranscriptionsQuery{Status: "all"})
	require.NoError(t, err)
	assert.Len(t, all.Transcriptions, 4)
	assert.Equal(t, 4, all.Pagination.Total)
	assert.Equal(t, 1, all.Pagination.Page)
	assert.Equal(t, 20, all.Pagination.Limit)
}
