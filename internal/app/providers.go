package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"audio-transcriber/internal/api/metrics"
	"audio-transcriber/internal/api/server"
	"audio-transcriber/internal/api/v1/routes"
	"audio-transcriber/internal/api/v1/services"
	"audio-transcriber/internal/app/api/gemini"
	"audio-transcriber/internal/app/api/openai/whisper"
	"audio-transcriber/internal/app/api/provider"
	"audio-transcriber/internal/app/cache"
	"audio-transcriber/internal/app/converter"
	"audio-transcriber/internal/app/repository"
	"audio-transcriber/internal/app/repository/pg"
	"audio-transcriber/internal/app/repository/sqlite"
	"audio-transcriber/internal/config"
)

// Build metadata, set with -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// provideRegistry registers the OpenAI Whisper transcriber (default) and Gemini.
func provideRegistry(cfg *config.Config) (*provider.Registry, error) {
	t := cfg.Transcription

	var geminiOpts []gemini.Option
	if t.GeminiBaseURL != "" {
		geminiOpts = append(geminiOpts, gemini.WithBaseURL(t.GeminiBaseURL))
	}

	registry, err := provider.NewRegistry(
		whisper.NewRemoteTranscriberForBaseURL(t.BaseURL),
		gemini.NewTranscriber(t.GeminiModel, geminiOpts...),
	)
	if err != nil {
		return nil, err
	}
	if t.Provider != "" {
		if err := registry.SetDefault(t.Provider); err != nil {
			return nil, fmt.Errorf("default provider: %w", err)
		}
	}
	return registry, nil
}

// OpenHistory opens the history store for driver. Driver "none" yields a nil DAO.
func OpenHistory(ctx context.Context, driver, dsn string) (repository.TranscriptionDAO, error) {
	switch driver {
	case "sqlite", repository.DriverSQLite:
		db, err := sqlite.NewSQLiteDB(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return db, nil
	case repository.DriverPostgres:
		db, err := pg.NewPostgresDB(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return db, nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported history driver %q", driver)
	}
}

func provideHistory(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.TranscriptionDAO, func(), error) {
	history, err := OpenHistory(ctx, cfg.Stores.HistoryDriver, cfg.Stores.HistoryDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open history store: %w", err)
	}
	if history == nil {
		logger.Info("transcription history disabled")
		return nil, func() {}, nil
	}

	logger.Info("transcription history enabled", zap.String("driver", cfg.Stores.HistoryDriver))
	cleanup := func() {
		if err := history.Close(); err != nil {
			logger.Warn("failed to close history store", zap.Error(err))
		}
	}
	return history, cleanup, nil
}

// provideCache connects to Redis when REDIS_URL is set. An unreachable Redis downgrades
// to no caching rather than failing startup.
func provideCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (cache.Cache, func()) {
	if cfg.Stores.RedisURL == "" {
		return cache.Noop{}, func() {}
	}

	redisCache, err := cache.NewRedisCache(ctx, cfg.Stores.RedisURL, cfg.Stores.CacheTTL)
	if err != nil {
		logger.Warn("result cache unavailable, continuing without it", zap.Error(err))
		return cache.Noop{}, func() {}
	}

	logger.Info("result cache enabled", zap.Duration("ttl", cfg.Stores.CacheTTL))
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			logger.Warn("failed to close result cache", zap.Error(err))
		}
	}
}

func provideStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) services.StorageService {
	if !cfg.Stores.ArchiveEnabled() {
		return nil
	}

	storage, err := services.NewMinioStorageService(ctx, cfg.Stores)
	if err != nil {
		logger.Warn("audio archive unavailable, continuing without it", zap.Error(err))
		return nil
	}

	logger.Info("audio archive enabled",
		zap.String("endpoint", cfg.Stores.MinioEndpoint),
		zap.String("bucket", cfg.Stores.MinioBucket),
	)
	return storage
}

func provideTranscriptionService(
	cfg *config.Config,
	registry *provider.Registry,
	resultCache cache.Cache,
	storage services.StorageService,
	history repository.TranscriptionDAO,
	logger *zap.Logger,
) services.TranscriptionService {
	return services.NewTranscriptionService(registry, cfg.Transcription, cfg.Server.TranscribeTimeout, resultCache, storage, history, logger)
}

func provideServiceContainer(transcription services.TranscriptionService, history repository.TranscriptionDAO) *routes.ServiceContainer {
	return &routes.ServiceContainer{
		TranscriptionService: transcription,
		DocumentService:      services.NewDocumentService(history),
		StatsService:         services.NewStatsService(history),
		ExportService:        services.NewExportService(history),
	}
}

func provideGatherer() prometheus.Gatherer {
	reg := prometheus.NewRegistry()
	metrics.Register(reg)
	metrics.SetBuildInfo(Version, Commit, Date)
	return reg
}

func provideServer(cfg *config.Config, container *routes.ServiceContainer, gatherer prometheus.Gatherer, logger *zap.Logger) *server.Server {
	return server.NewServer(cfg.Server, container, gatherer, logger)
}

func provideConverter(transcription services.TranscriptionService, logger *zap.Logger) *converter.Converter {
	return converter.NewConverter(transcription, logger)
}
