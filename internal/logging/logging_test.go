package logging

import (
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"

	"hookhunter/internal/config"
)

func TestSetup_LevelAndFormat(t *testing.T) {
	cfg := &config.Config{}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	_, err := Setup(cfg)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	_, isJSON := log.StandardLogger().Formatter.(*log.JSONFormatter)
	assert.True(t, isJSON)
}

func TestSetup_FileOutput(t *testing.T) {
	cfg := &config.Config{}
	cfg.Log.File = filepath.Join(t.TempDir(), "hookhunter.log")
	cfg.Log.MaxSizeMB = 1

	out, err := Setup(cfg)
	require.NoError(t, err)
	lj, ok := out.(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, cfg.Log.File, lj.Filename)
	t.Cleanup(func() { _ = lj.Close() })
}

func TestSetup_InvalidLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Log.Level = "loud"
	_, err := Setup(cfg)
	assert.Error(t, err)
}
