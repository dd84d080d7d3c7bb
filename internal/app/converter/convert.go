package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"audio-transcriber/internal/api/v1/dto"
	"audio-transcriber/internal/api/v1/services"
	"audio-transcriber/internal/app/audio"
	"audio-transcriber/internal/app/converter/export"
)

// Options controls a batch of local transcriptions.
type Options struct {
	APIKey    string
	Provider  string
	Language  string
	Format    string // txt or srt
	OutputDir string // empty keeps documents in memory only
	Parallel  int
	Progress  ProgressConfig
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Path       string
	Response   *dto.TranscriptionResponse
	Document   string
	OutputPath string
	Err        error
}

// Converter transcribes local audio files through the same service the HTTP API uses,
// so validation, caching and history behave identically.
type Converter struct {
	service services.TranscriptionService
	logger  *zap.Logger
	now     func() time.Time
}

func NewConverter(service services.TranscriptionService, logger *zap.Logger) *Converter {
	return &Converter{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// TranscribeFile validates and transcribes one file and renders its download document.
func (c *Converter) TranscribeFile(ctx context.Context, path string, opts Options) FileResult {
	result := FileResult{Path: path}

	upload, err := readFile(path)
	if err != nil {
		result.Err = err
		return result
	}

	resp, err := c.service.Transcribe(ctx, &services.TranscribeInput{
		APIKey:   opts.APIKey,
		Provider: opts.Provider,
		Language: opts.Language,
		Upload:   upload,
	})
	if err != nil {
		result.Err = err
		return result
	}
	result.Response = resp

	body, name := export.Render(opts.Format, upload.Name, resp.Text, dto.FromSegments(resp.Segments), c.now())
	result.Document = body

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			result.Err = fmt.Errorf("create output directory: %w", err)
			return result
		}
		result.OutputPath = filepath.Join(opts.OutputDir, name)
		if err := os.WriteFile(result.OutputPath, []byte(body), 0644); err != nil {
			result.Err = fmt.Errorf("write %s: %w", result.OutputPath, err)
			return result
		}
	}
	return result
}

// TranscribeFiles runs TranscribeFile for every path with at most opts.Parallel calls in
// flight. Results keep the order of paths.
func (c *Converter) TranscribeFiles(ctx context.Context, paths []string, opts Options) []FileResult {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results
	}

	parallel := opts.Parallel
	if parallel < 1 {
		parallel = 1
	}

	progress := NewProgressManager(opts.Progress)
	bar := progress.CreateBar(len(paths), "Transcribing")

	var wg sync.WaitGroup
	sem := make(chan struct{}, parallel)

	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer bar.Increment()

			sem <- struct{}{}
			results[i] = c.TranscribeFile(ctx, path, opts)
			<-sem

			if err := results[i].Err; err != nil {
				c.logger.Warn("transcription failed", zap.String("file", path), zap.Error(err))
			} else {
				c.logger.Info("transcription completed",
					zap.String("file", path),
					zap.Bool("cached", results[i].Response.Cached),
					zap.String("output", results[i].OutputPath),
				)
			}
		}(i, path)
	}
	wg.Wait()
	progress.Wait()

	return results
}

func readFile(path string) (*audio.Upload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return audio.FromReader(filepath.Base(path), "", info.Size(), f)
}
