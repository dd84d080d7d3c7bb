package pg

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"audio-transcriber/internal/app/repository"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id            SERIAL PRIMARY KEY,
	file_name     TEXT             NOT NULL,
	file_size     BIGINT           NOT NULL DEFAULT 0,
	file_hash     TEXT             NOT NULL DEFAULT '',
	content_type  TEXT             NOT NULL DEFAULT '',
	provider      TEXT             NOT NULL DEFAULT '',
	model         TEXT             NOT NULL DEFAULT '',
	language      TEXT             NOT NULL DEFAULT '',
	duration      DOUBLE PRECISION NOT NULL DEFAULT 0,
	transcription TEXT             NOT NULL DEFAULT '',
	has_error     INTEGER          NOT NULL DEFAULT 0,
	error_message TEXT             NOT NULL DEFAULT '',
	storage_key   TEXT             NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ      NOT NULL,
	deleted_at    TIMESTAMPTZ      NULL
);
CREATE INDEX IF NOT EXISTS idx_transcriptions_created_at ON transcriptions(created_at);
CREATE INDEX IF NOT EXISTS idx_transcriptions_file_hash ON transcriptions(file_hash);
`

// PostgresDB stores history in PostgreSQL.
type PostgresDB struct {
	*repository.CommonDB
}

var _ repository.TranscriptionDAO = (*PostgresDB)(nil)

// NewPostgresDB connects with connectionString and creates the schema if missing.
func NewPostgresDB(ctx context.Context, connectionString string) (*PostgresDB, error) {
	db, err := sql.Open(repository.DriverPostgres, connectionString)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	pdb := newPostgresDB(db)
	if err := pdb.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return pdb, nil
}

func newPostgresDB(db *sql.DB) *PostgresDB {
	return &PostgresDB{CommonDB: repository.NewCommonDB(db, repository.DriverPostgres)}
}

func (pdb *PostgresDB) EnsureSchema(ctx context.Context) error {
	if _, err := pdb.DB().ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}
