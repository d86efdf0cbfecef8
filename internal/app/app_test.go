package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hookhunter/internal/config"
	"hookhunter/internal/store"
)

func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.Search.TargetCount = 50
	cfg.Search.PageSize = 20
	cfg.Search.ResultType = "top"
	cfg.Twitter.BaseURL = "http://127.0.0.1:1"
	cfg.Twitter.QueryID = "q"
	cfg.History.Driver = "none"
	return cfg
}

func TestNewApp_NoHistory(t *testing.T) {
	a, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.SearchService)
	assert.NotNil(t, a.SubscriptionService)
	assert.NotNil(t, a.EmbedService)
	assert.Nil(t, a.HistoryStore)
	assert.Nil(t, a.JobClient)
	assert.False(t, a.HistoryService.Enabled())
}

func TestNewApp_SQLiteHistory(t *testing.T) {
	cfg := testConfig(t)
	cfg.History.Driver = "sqlite"
	cfg.History.DSN = filepath.Join(t.TempDir(), "history.db")

	a, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.HistoryStore)
	assert.True(t, a.HistoryService.Enabled())
	assert.IsType(t, store.DirectRecorder{}, a.recorder())
}

func TestNewApp_BadRanking(t *testing.T) {
	cfg := testConfig(t)
	cfg.Search.ResultType = "random"
	_, err := NewApp(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOpenHistoryStore_UnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.History.Driver = "mongo"
	_, err := OpenHistoryStore(context.Background(), cfg)
	assert.ErrorIs(t, err, store.ErrUnsupportedDriver)
}
