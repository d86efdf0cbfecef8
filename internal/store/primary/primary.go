package primary

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS search_history (
	id           UUID PRIMARY KEY,
	raw_query    TEXT NOT NULL,
	list_id      TEXT NOT NULL DEFAULT '',
	keywords     TEXT NOT NULL DEFAULT '',
	min_likes    INTEGER NOT NULL DEFAULT 0,
	result_type  TEXT NOT NULL,
	pages        INTEGER NOT NULL,
	raw_count    INTEGER NOT NULL,
	result_count INTEGER NOT NULL,
	status       TEXT NOT NULL,
	executed_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS search_history_executed_at_idx ON search_history (executed_at DESC);`

// StoreImpl keeps search history in PostgreSQL.
type StoreImpl struct {
	db *pgxpool.Pool
}

// NewPrimaryStore connects to dsn and creates the history table if needed.
func NewPrimaryStore(ctx context.Context, dsn string) (*StoreImpl, error) {
	if dsn == "" {
		return nil, errors.New("database DSN cannot be empty")
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database DSN: %w", err)
	}

	dbpool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if _, err := dbpool.Exec(ctx, schema); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("unable to apply history schema: %w", err)
	}

	return &StoreImpl{db: dbpool}, nil
}

func (s *StoreImpl) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *StoreImpl) Close() error {
	s.db.Close()
	return nil
}
