package migrate

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"audio-transcriber/internal/app/repository"
)

// Copy appends every live record of src to dst, oldest first, and returns how many
// were written. Records without a file name are skipped.
func Copy(ctx context.Context, src, dst repository.TranscriptionDAO, logger *zap.Logger) (int, error) {
	records, err := src.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("read source history: %w", err)
	}

	copied := 0
	for i := range records {
		r := records[i]
		if strings.TrimSpace(r.FileName) == "" {
			logger.Warn("skipping record without file name", zap.Int("id", r.ID))
			continue
		}

		sourceID := r.ID
		if _, err := dst.Record(ctx, &r); err != nil {
			return copied, fmt.Errorf("insert record %d: %w", sourceID, err)
		}
		copied++
	}

	logger.Info("history migration completed", zap.Int("copied", copied), zap.Int("read", len(records)))
	return copied, nil
}
