// Package worker holds the asynq handlers run by the worker command.
package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"hookhunter/internal/store"
	"hookhunter/internal/tasks"
)

// HistoryDeps are the dependencies of the history handler.
type HistoryDeps struct {
	Store store.SearchHistoryStore
}

// RegisterHandlers attaches every task handler to mux.
func RegisterHandlers(mux *asynq.ServeMux, deps HistoryDeps) {
	mux.HandleFunc(tasks.TypeHistoryRecord, HandleHistoryRecord(deps))
}

// HandleHistoryRecord writes a queued search record. Redelivered records that
// are already stored are treated as done.
func HandleHistoryRecord(deps HistoryDeps) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		rec, err := tasks.ParseHistoryRecord(t)
		if err != nil {
			return err
		}
		logger := log.WithFields(log.Fields{"task": t.Type(), "record_id": rec.ID})

		if err := deps.Store.RecordSearch(ctx, rec); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				logger.Debug("history record already stored")
				return nil
			}
			return fmt.Errorf("record search %s: %w", rec.ID, err)
		}
		logger.Debug("history record stored")
		return nil
	}
}
