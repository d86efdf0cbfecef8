// Package local keeps search history in an embedded SQLite database.
package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"hookhunter/internal/models"
	"hookhunter/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS search_history (
	id           TEXT PRIMARY KEY,
	raw_query    TEXT NOT NULL,
	list_id      TEXT NOT NULL DEFAULT '',
	keywords     TEXT NOT NULL DEFAULT '',
	min_likes    INTEGER NOT NULL DEFAULT 0,
	result_type  TEXT NOT NULL,
	pages        INTEGER NOT NULL,
	raw_count    INTEGER NOT NULL,
	result_count INTEGER NOT NULL,
	status       TEXT NOT NULL,
	executed_at  DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS search_history_executed_at_idx ON search_history (executed_at DESC);`

var _ store.SearchHistoryStore = (*Store)(nil)

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path. ":memory:" is accepted.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite path cannot be empty")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) RecordSearch(ctx context.Context, rec *models.SearchRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO search_history (id, raw_query, list_id, keywords, min_likes, result_type,
			pages, raw_count, result_count, status, executed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.RawQuery, rec.ListID, rec.Keywords, rec.MinLikes, rec.ResultType,
		rec.Pages, rec.RawCount, rec.ResultCount, rec.Status, rec.ExecutedAt.UTC(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("search %s: %w", rec.ID, store.ErrDuplicate)
		}
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

func (s *Store) ListSearches(ctx context.Context, limit int) ([]*models.SearchRecord, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, raw_query, list_id, keywords, min_likes, result_type,
			pages, raw_count, result_count, status, executed_at
		FROM search_history
		ORDER BY executed_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}
	defer rows.Close()

	var records []*models.SearchRecord
	for rows.Next() {
		var (
			rec        models.SearchRecord
			id         string
			executedAt time.Time
		)
		if err := rows.Scan(&id, &rec.RawQuery, &rec.ListID, &rec.Keywords, &rec.MinLikes, &rec.ResultType,
			&rec.Pages, &rec.RawCount, &rec.ResultCount, &rec.Status, &executedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("bad search id %q: %w", id, err)
		}
		rec.ExecutedAt = executedAt.UTC()
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search rows: %w", err)
	}
	return records, nil
}
