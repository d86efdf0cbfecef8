package store

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"hookhunter/internal/models"
	"hookhunter/internal/tasks"
)

var _ JobClient = (*AsynqJobClient)(nil)

// AsynqJobClient enqueues history writes on the Redis-backed queue.
type AsynqJobClient struct {
	client *asynq.Client
}

func NewAsynqJobClient(opt asynq.RedisClientOpt) *AsynqJobClient {
	return &AsynqJobClient{client: asynq.NewClient(opt)}
}

func (jc *AsynqJobClient) Close() error {
	return jc.client.Close()
}

func (jc *AsynqJobClient) EnqueueHistoryRecord(ctx context.Context, rec *models.SearchRecord) error {
	task, err := tasks.NewHistoryRecordTask(rec)
	if err != nil {
		return err
	}
	info, err := jc.client.EnqueueContext(ctx, task,
		asynq.Queue(tasks.QueueHistory),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
		asynq.TaskID(rec.ID.String()),
	)
	if err != nil {
		return fmt.Errorf("enqueue history record %s: %w", rec.ID, err)
	}
	log.WithFields(log.Fields{
		"task_id": info.ID,
		"queue":   info.Queue,
	}).Debug("history record enqueued")
	return nil
}
