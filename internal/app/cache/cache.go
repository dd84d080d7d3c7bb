package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"audio-transcriber/internal/app/model"
)

const keyPrefix = "transcriber:result"

// Cache stores transcription results keyed by audio content and request parameters.
type Cache interface {
	Get(ctx context.Context, key string) (*model.TranscriptionResult, bool, error)
	Set(ctx context.Context, key string, result *model.TranscriptionResult) error
	Close() error
}

// Key identifies one transcription of one audio file for one credential. credentialHash
// is a digest of the API key; the key itself never reaches the cache.
func Key(credentialHash, audioHash, provider, modelName, language string, temperature float32) string {
	return strings.Join([]string{
		keyPrefix,
		credentialHash,
		provider,
		modelName,
		language,
		strconv.FormatFloat(float64(temperature), 'f', -1, 32),
		audioHash,
	}, ":")
}

// RedisCache keeps results in Redis with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to addr, which is either a redis:// URL or a bare host:port.
func NewRedisCache(ctx context.Context, addr string, ttl time.Duration) (*RedisCache, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (*model.TranscriptionResult, bool, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var result model.TranscriptionResult
	if err := json.Unmarshal(b, &result); err != nil {
		return nil, false, fmt.Errorf("decode cached result: %w", err)
	}
	return &result, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, result *model.TranscriptionResult) error {
	stored := *result
	stored.Cached = false
	b, err := json.Marshal(&stored)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, b, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Noop is used when no cache is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) (*model.TranscriptionResult, bool, error) {
	return nil, false, nil
}

func (Noop) Set(context.Context, string, *model.TranscriptionResult) error { return nil }

func (Noop) Close() error { return nil }
