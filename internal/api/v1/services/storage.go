package services

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"audio-transcriber/internal/app/audio"
	"audio-transcriber/internal/config"
)

// StorageService archives uploaded audio
type StorageService interface {
	UploadFile(ctx context.Context, upload *audio.Upload, fileHash string) (*FileUploadResult, error)
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (*PresignedURLResult, error)
	GetFileURL(key string) string
	DeleteFile(ctx context.Context, key string) error
}

// FileUploadResult contains the result of a file upload
type FileUploadResult struct {
	URL        string    `json:"url"`
	Key        string    `json:"key"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// PresignedURLResult contains a presigned download URL
type PresignedURLResult struct {
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expiresAt"`
	Key       string    `json:"key"`
}

// MinioStorageService implements StorageService using MinIO
type MinioStorageService struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

// NewMinioStorageService connects to MinIO and makes sure the bucket exists
func NewMinioStorageService(ctx context.Context, cfg config.StoreConfig) (*MinioStorageService, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	service := &MinioStorageService{
		client:   client,
		bucket:   cfg.MinioBucket,
		endpoint: cfg.MinioEndpoint,
		useSSL:   cfg.MinioUseSSL,
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{Region: cfg.MinioRegion})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return service, nil
}

// ObjectKey is audio/<yyyy>/<mm>/<dd>/<hash prefix>-<random><ext>.
func ObjectKey(fileName, fileHash string, now time.Time) string {
	prefix := fileHash
	if len(prefix) > 12 {
		prefix = prefix[:12]
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("audio/%s/%s-%s%s", now.UTC().Format("2006/01/02"), prefix, uuid.New().String()[:8], ext)
}

// UploadFile uploads audio to MinIO storage
func (s *MinioStorageService) UploadFile(ctx context.Context, upload *audio.Upload, fileHash string) (*FileUploadResult, error) {
	now := time.Now()
	key := ObjectKey(upload.Name, fileHash, now)

	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(upload.Data), int64(len(upload.Data)), minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-name": url.QueryEscape(upload.Name),
			"sha256":        fileHash,
			"uploaded-at":   now.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file to MinIO: %w", err)
	}

	return &FileUploadResult{
		URL:        s.GetFileURL(key),
		Key:        key,
		Name:       upload.Name,
		Size:       int64(len(upload.Data)),
		UploadedAt: now,
	}, nil
}

// GeneratePresignedURL returns a time-limited GET URL for an archived file
func (s *MinioStorageService) GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (*PresignedURLResult, error) {
	presignedURL, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiration, url.Values{})
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &PresignedURLResult{
		URL:       presignedURL.String(),
		Method:    "GET",
		ExpiresAt: time.Now().Add(expiration),
		Key:       key,
	}, nil
}

// GetFileURL returns the URL for accessing a file
func (s *MinioStorageService) GetFileURL(key string) string {
	protocol := "http"
	if s.useSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, s.endpoint, s.bucket, key)
}

// DeleteFile deletes a file from storage
func (s *MinioStorageService) DeleteFile(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
