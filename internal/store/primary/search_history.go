package primary

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"hookhunter/internal/models"
	"hookhunter/internal/store"
)

var _ store.SearchHistoryStore = (*StoreImpl)(nil)

func (s *StoreImpl) RecordSearch(ctx context.Context, rec *models.SearchRecord) error {
	sql := `
		INSERT INTO search_history (id, raw_query, list_id, keywords, min_likes, result_type,
			pages, raw_count, result_count, status, executed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := s.db.Exec(ctx, sql,
		rec.ID, rec.RawQuery, rec.ListID, rec.Keywords, rec.MinLikes, rec.ResultType,
		rec.Pages, rec.RawCount, rec.ResultCount, rec.Status, rec.ExecutedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("search %s: %w", rec.ID, store.ErrDuplicate)
		}
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

func (s *StoreImpl) ListSearches(ctx context.Context, limit int) ([]*models.SearchRecord, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}
	sql := `
		SELECT id, raw_query, list_id, keywords, min_likes, result_type,
			pages, raw_count, result_count, status, executed_at
		FROM search_history
		ORDER BY executed_at DESC
		LIMIT $1`

	rows, err := s.db.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[models.SearchRecord])
	if err != nil {
		return nil, fmt.Errorf("failed to scan search rows: %w", err)
	}
	return records, nil
}
