package store

import (
	"context"

	"hookhunter/internal/models"
)

// DirectRecorder writes records synchronously to a history store.
type DirectRecorder struct {
	Store SearchHistoryStore
}

func (r DirectRecorder) Record(ctx context.Context, rec *models.SearchRecord) error {
	return r.Store.RecordSearch(ctx, rec)
}

// QueuedRecorder defers writes to the worker through a JobClient.
type QueuedRecorder struct {
	Jobs JobClient
}

func (r QueuedRecorder) Record(ctx context.Context, rec *models.SearchRecord) error {
	return r.Jobs.EnqueueHistoryRecord(ctx, rec)
}
