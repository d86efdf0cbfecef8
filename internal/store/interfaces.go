package store

import (
	"context"

	"hookhunter/internal/models"
)

// JobClient hands search records to the background worker.
type JobClient interface {
	EnqueueHistoryRecord(ctx context.Context, rec *models.SearchRecord) error
	Close() error
}

// SearchHistoryStore persists executed searches.
type SearchHistoryStore interface {
	RecordSearch(ctx context.Context, rec *models.SearchRecord) error
	ListSearches(ctx context.Context, limit int) ([]*models.SearchRecord, error)
	Ping(ctx context.Context) error
	Close() error
}

// DefaultListLimit applies when ListSearches is called with a non-positive limit.
const DefaultListLimit = 20
