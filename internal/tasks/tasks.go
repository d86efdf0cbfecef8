package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"hookhunter/internal/models"
)

const (
	// TypeHistoryRecord persists one executed search.
	TypeHistoryRecord = "history:record"

	QueueHistory = "history"
)

func NewHistoryRecordTask(rec *models.SearchRecord) (*asynq.Task, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal history record: %w", err)
	}
	return asynq.NewTask(TypeHistoryRecord, payload), nil
}

// ParseHistoryRecord decodes a TypeHistoryRecord payload.
func ParseHistoryRecord(t *asynq.Task) (*models.SearchRecord, error) {
	var rec models.SearchRecord
	if err := json.Unmarshal(t.Payload(), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal history record: %w: %w", err, asynq.SkipRetry)
	}
	return &rec, nil
}
