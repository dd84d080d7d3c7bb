package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "audio-transcriber/internal/app/errors"
	"audio-transcriber/internal/app/model"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"

	DefaultPageSize = 20
	MaxPageSize     = 100
)

const recordColumns = `id, file_name, file_size, file_hash, content_type, provider, model, language,
	duration, transcription, has_error, error_message, storage_key, created_at, deleted_at`

// CommonDB implements TranscriptionDAO over database/sql for both supported dialects.
type CommonDB struct {
	db           *sql.DB
	driverName   string
	placeholders PlaceholderFunc
}

// PlaceholderFunc generates parameter placeholders for different SQL dialects
type PlaceholderFunc func(n int) string

// NewCommonDB creates a new CommonDB instance
func NewCommonDB(db *sql.DB, driverName string) *CommonDB {
	var placeholders PlaceholderFunc

	switch driverName {
	case DriverPostgres:
		placeholders = func(n int) string { return fmt.Sprintf("$%d", n) }
	default:
		placeholders = func(n int) string { return "?" }
	}

	return &CommonDB{
		db:           db,
		driverName:   driverName,
		placeholders: placeholders,
	}
}

// DB exposes the underlying handle.
func (c *CommonDB) DB() *sql.DB {
	return c.db
}

func (c *CommonDB) Close() error {
	return c.db.Close()
}

// Record inserts a history entry and returns its id.
func (c *CommonDB) Record(ctx context.Context, r *model.TranscriptionRecord) (int, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	params := make([]string, 13)
	for i := range params {
		params[i] = c.placeholders(i + 1)
	}
	query := fmt.Sprintf(
		`INSERT INTO transcriptions (file_name, file_size, file_hash, content_type, provider, model,
			language, duration, transcription, has_error, error_message, storage_key, created_at)
		 VALUES (%s)`,
		strings.Join(params, ", "),
	)
	args := []interface{}{
		r.FileName, r.FileSize, r.FileHash, r.ContentType, r.Provider, r.Model,
		r.Language, r.Duration, r.Transcription, r.HasError, r.ErrorMessage, r.StorageKey, r.CreatedAt,
	}

	if c.driverName == DriverPostgres {
		var id int
		if err := c.db.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("insert failed: %w", err)
		}
		r.ID = id
		return id, nil
	}

	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert failed: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	r.ID = int(id)
	return r.ID, nil
}

// Get returns one live record, or ErrNotFound.
func (c *CommonDB) Get(ctx context.Context, id int) (*model.TranscriptionRecord, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM transcriptions WHERE id = %s AND deleted_at IS NULL",
		recordColumns, c.placeholders(1),
	)
	r, err := scanRecord(c.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "transcription %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return r, nil
}

// List returns one page of live records and the total number matching the filter.
func (c *CommonDB) List(ctx context.Context, opts ListOptions) ([]model.TranscriptionRecord, int, error) {
	opts = normalizeListOptions(opts)

	where := []string{"deleted_at IS NULL"}
	var args []interface{}
	switch {
	case opts.OnlyFailed:
		where = append(where, "has_error = 1")
	case !opts.IncludeFailed:
		where = append(where, "has_error = 0")
	}
	if opts.Provider != "" {
		args = append(args, opts.Provider)
		where = append(where, "provider = "+c.placeholders(len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM transcriptions WHERE " + whereClause
	if err := c.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count failed: %w", err)
	}

	pageArgs := append(append([]interface{}{}, args...), opts.Limit, opts.Offset)
	query := fmt.Sprintf(
		"SELECT %s FROM transcriptions WHERE %s ORDER BY created_at DESC, id DESC LIMIT %s OFFSET %s",
		recordColumns, whereClause, c.placeholders(len(args)+1), c.placeholders(len(args)+2),
	)
	records, err := c.query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// All returns every live record, oldest first.
func (c *CommonDB) All(ctx context.Context) ([]model.TranscriptionRecord, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM transcriptions WHERE deleted_at IS NULL ORDER BY created_at ASC, id ASC",
		recordColumns,
	)
	return c.query(ctx, query)
}

// SoftDelete hides a record from every read.
func (c *CommonDB) SoftDelete(ctx context.Context, id int) error {
	query := fmt.Sprintf(
		"UPDATE transcriptions SET deleted_at = %s WHERE id = %s AND deleted_at IS NULL",
		c.placeholders(1), c.placeholders(2),
	)
	res, err := c.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("soft delete failed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperrors.Wrapf(apperrors.ErrNotFound, "transcription %d", id)
	}
	return nil
}

func (c *CommonDB) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByProvider: make(map[string]int)}

	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(has_error), 0), COALESCE(SUM(duration), 0)
		 FROM transcriptions WHERE deleted_at IS NULL`,
	).Scan(&stats.Total, &stats.Failed, &stats.TotalDuration)
	if err != nil {
		return nil, fmt.Errorf("stats query failed: %w", err)
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT provider, COUNT(*) FROM transcriptions
		 WHERE deleted_at IS NULL GROUP BY provider`,
	)
	if err != nil {
		return nil, fmt.Errorf("stats query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var provider string
		var count int
		if err := rows.Scan(&provider, &count); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		stats.ByProvider[provider] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return stats, nil
}

func (c *CommonDB) query(ctx context.Context, query string, args ...interface{}) ([]model.TranscriptionRecord, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	records := make([]model.TranscriptionRecord, 0)
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		records = append(records, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (*model.TranscriptionRecord, error) {
	var (
		r         model.TranscriptionRecord
		deletedAt sql.NullTime
	)
	err := s.Scan(
		&r.ID, &r.FileName, &r.FileSize, &r.FileHash, &r.ContentType, &r.Provider, &r.Model,
		&r.Language, &r.Duration, &r.Transcription, &r.HasError, &r.ErrorMessage, &r.StorageKey,
		&r.CreatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		r.DeletedAt = &t
	}
	return &r, nil
}

func normalizeListOptions(opts ListOptions) ListOptions {
	if opts.Limit <= 0 {
		opts.Limit = DefaultPageSize
	}
	if opts.Limit > MaxPageSize {
		opts.Limit = MaxPageSize
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return opts
}
