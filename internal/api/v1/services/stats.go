package services

import (
	"context"

	"audio-transcriber/internal/api/v1/dto"
	"audio-transcriber/internal/app/repository"
)

// StatsServiceImpl implements the StatsService interface
type StatsServiceImpl struct {
	repo repository.TranscriptionDAO
}

// NewStatsService creates a new stats service. repo may be nil.
func NewStatsService(repo repository.TranscriptionDAO) *StatsServiceImpl {
	return &StatsServiceImpl{repo: repo}
}

// GetSystemStats returns history-wide statistics
func (s *StatsServiceImpl) GetSystemStats(ctx context.Context) (*dto.SystemStats, error) {
	if s.repo == nil {
		return nil, historyDisabled()
	}
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, storeError(err, "Failed to get statistics")
	}

	byProvider := stats.ByProvider
	if byProvider == nil {
		byProvider = map[string]int{}
	}
	return &dto.SystemStats{
		TotalTranscripts:  stats.Total,
		FailedTranscripts: stats.Failed,
		TotalAudioSeconds: stats.TotalDuration,
		ByProvider:        byProvider,
	}, nil
}
