package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hookhunter/internal/models"
	"hookhunter/internal/store"
	"hookhunter/internal/tasks"
)

type mockHistoryStore struct {
	mock.Mock
}

func (m *mockHistoryStore) RecordSearch(ctx context.Context, rec *models.SearchRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockHistoryStore) ListSearches(ctx context.Context, limit int) ([]*models.SearchRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SearchRecord), args.Error(1)
}

func (m *mockHistoryStore) Ping(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *mockHistoryStore) Close() error                   { return m.Called().Error(0) }

func newTask(t *testing.T) (*asynq.Task, *models.SearchRecord) {
	rec := &models.SearchRecord{
		ID:         uuid.New(),
		RawQuery:   "list:42",
		ResultType: "top",
		Status:     models.RecordStatusComplete,
		ExecutedAt: time.Now().UTC().Truncate(time.Second),
	}
	task, err := tasks.NewHistoryRecordTask(rec)
	require.NoError(t, err)
	return task, rec
}

func matchID(id uuid.UUID) interface{} {
	return mock.MatchedBy(func(r *models.SearchRecord) bool { return r.ID == id })
}

func TestHandleHistoryRecord_Stores(t *testing.T) {
	ms := new(mockHistoryStore)
	task, rec := newTask(t)
	ms.On("RecordSearch", mock.Anything, matchID(rec.ID)).Return(nil).Once()

	err := HandleHistoryRecord(HistoryDeps{Store: ms})(context.Background(), task)
	require.NoError(t, err)
	ms.AssertExpectations(t)
}

func TestHandleHistoryRecord_DuplicateIsDone(t *testing.T) {
	ms := new(mockHistoryStore)
	task, rec := newTask(t)
	ms.On("RecordSearch", mock.Anything, matchID(rec.ID)).Return(store.ErrDuplicate).Once()

	err := HandleHistoryRecord(HistoryDeps{Store: ms})(context.Background(), task)
	assert.NoError(t, err)
}

func TestHandleHistoryRecord_StoreErrorRetries(t *testing.T) {
	ms := new(mockHistoryStore)
	task, rec := newTask(t)
	ms.On("RecordSearch", mock.Anything, matchID(rec.ID)).Return(errors.New("db down")).Once()

	err := HandleHistoryRecord(HistoryDeps{Store: ms})(context.Background(), task)
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleHistoryRecord_BadPayloadSkipsRetry(t *testing.T) {
	ms := new(mockHistoryStore)
	task := asynq.NewTask(tasks.TypeHistoryRecord, []byte("{not json"))

	err := HandleHistoryRecord(HistoryDeps{Store: ms})(context.Background(), task)
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	ms.AssertNotCalled(t, "RecordSearch", mock.Anything, mock.Anything)
}

func TestRegisterHandlers(t *testing.T) {
	mux := asynq.NewServeMux()
	RegisterHandlers(mux, HistoryDeps{Store: new(mockHistoryStore)})

	_, pattern := mux.Handler(asynq.NewTask(tasks.TypeHistoryRecord, nil))
	assert.Equal(t, tasks.TypeHistoryRecord, pattern)
}
