package logging

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"hookhunter/internal/config"
)

// Setup configures the global logrus logger from cfg and returns the writer it
// logs to so gin can be pointed at it.
func Setup(cfg *config.Config) (io.Writer, error) {
	level, err := log.ParseLevel(defaultString(cfg.Log.Level, "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid log.level: %w", err)
	}
	log.SetLevel(level)

	switch cfg.Log.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	var out io.Writer = os.Stderr
	if cfg.Log.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			LocalTime:  true,
		}
	}
	log.SetOutput(out)
	return out, nil
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
