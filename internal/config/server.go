package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host              string
	Port              string
	Environment       string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	TranscribeTimeout time.Duration
}

// StoreConfig holds the optional backing stores. Empty values disable a store.
type StoreConfig struct {
	HistoryDriver string // sqlite, postgres or none
	HistoryDSN    string

	RedisURL string
	CacheTTL time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioRegion    string
	MinioUseSSL    bool
}

// ArchiveEnabled reports whether uploaded audio is copied to MinIO.
func (s StoreConfig) ArchiveEnabled() bool {
	return s.MinioEndpoint != ""
}

// HistoryEnabled reports whether transcriptions are recorded.
func (s StoreConfig) HistoryEnabled() bool {
	return s.HistoryDriver != "none"
}

// Config is the full runtime configuration.
type Config struct {
	Server        ServerConfig
	Stores        StoreConfig
	Transcription TranscriptionDefaults
	LogLevel      string
}

// Development reports whether the server runs outside production.
func (c *Config) Development() bool {
	return c.Server.Environment != "production"
}

// Load reads the configuration from the environment (after LoadEnv) and the optional
// transcription defaults file.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	stores, err := loadStoreConfig()
	if err != nil {
		return nil, err
	}

	defaults, err := LoadTranscriptionDefaults(getEnvOrDefault("TRANSCRIBER_CONFIG", DefaultTranscriptionConfigPath))
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:        server,
		Stores:        stores,
		Transcription: *defaults,
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
	}, nil
}

func loadServerConfig() (ServerConfig, error) {
	cfg := ServerConfig{
		Host:        getEnvOrDefault("HOST", "0.0.0.0"),
		Port:        getEnvOrDefault("PORT", "8080"),
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),
	}

	var err error
	if cfg.ReadTimeout, err = getDurationOrDefault("READ_TIMEOUT", 60*time.Second); err != nil {
		return cfg, err
	}
	if cfg.WriteTimeout, err = getDurationOrDefault("WRITE_TIMEOUT", 180*time.Second); err != nil {
		return cfg, err
	}
	if cfg.IdleTimeout, err = getDurationOrDefault("IDLE_TIMEOUT", 120*time.Second); err != nil {
		return cfg, err
	}
	if cfg.TranscribeTimeout, err = getDurationOrDefault("TRANSCRIBE_TIMEOUT", 120*time.Second); err != nil {
		return cfg, err
	}

	if err := ValidateTimeout(cfg.TranscribeTimeout, "transcribe"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadStoreConfig() (StoreConfig, error) {
	cfg := StoreConfig{
		HistoryDriver:  getEnvOrDefault("HISTORY_DRIVER", "sqlite"),
		HistoryDSN:     getEnvOrDefault("HISTORY_DSN", "data/transcriptions.db"),
		RedisURL:       getEnvOrDefault("REDIS_URL", ""),
		MinioEndpoint:  getEnvOrDefault("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnvOrDefault("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnvOrDefault("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getEnvOrDefault("MINIO_BUCKET", "audio-transcriber"),
		MinioRegion:    getEnvOrDefault("MINIO_REGION", "us-east-1"),
		MinioUseSSL:    getBoolOrDefault("MINIO_USE_SSL", false),
	}

	switch cfg.HistoryDriver {
	case "sqlite", "postgres", "none":
	default:
		return cfg, fmt.Errorf("invalid HISTORY_DRIVER %q: must be sqlite, postgres or none", cfg.HistoryDriver)
	}

	var err error
	if cfg.CacheTTL, err = getDurationOrDefault("CACHE_TTL", 24*time.Hour); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Address returns host:port.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}
