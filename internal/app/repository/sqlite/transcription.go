package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"audio-transcriber/internal/app/repository"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	file_name     TEXT    NOT NULL,
	file_size     INTEGER NOT NULL DEFAULT 0,
	file_hash     TEXT    NOT NULL DEFAULT '',
	content_type  TEXT    NOT NULL DEFAULT '',
	provider      TEXT    NOT NULL DEFAULT '',
	model         TEXT    NOT NULL DEFAULT '',
	language      TEXT    NOT NULL DEFAULT '',
	duration      REAL    NOT NULL DEFAULT 0,
	transcription TEXT    NOT NULL DEFAULT '',
	has_error     INTEGER NOT NULL DEFAULT 0,
	error_message TEXT    NOT NULL DEFAULT '',
	storage_key   TEXT    NOT NULL DEFAULT '',
	created_at    TIMESTAMP NOT NULL,
	deleted_at    TIMESTAMP NULL
);
CREATE INDEX IF NOT EXISTS idx_transcriptions_created_at ON transcriptions(created_at);
CREATE INDEX IF NOT EXISTS idx_transcriptions_file_hash ON transcriptions(file_hash);
`

// SQLiteDB is the default history store: a single local file.
type SQLiteDB struct {
	*repository.CommonDB
}

var _ repository.TranscriptionDAO = (*SQLiteDB)(nil)

// NewSQLiteDB opens (creating if needed) the database at dbFilePath and its schema.
func NewSQLiteDB(ctx context.Context, dbFilePath string) (*SQLiteDB, error) {
	if dbFilePath != ":memory:" {
		if dir := filepath.Dir(dbFilePath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open(repository.DriverSQLite, dbFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer keeps sqlite from returning SQLITE_BUSY under concurrent requests
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return &SQLiteDB{CommonDB: repository.NewCommonDB(db, repository.DriverSQLite)}, nil
}
