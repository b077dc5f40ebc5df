// Package logger builds the logrus logger the binaries share: console
// output always, plus a size-rotated file when one is configured.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tradeforge/futures-order-bot/internal/config"
)

// New creates a configured logger. An unknown level name falls back to
// info rather than failing startup.
func New(cfg config.LogConfig) (*logrus.Logger, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	writers := []io.Writer{os.Stdout}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		})
	}

	log.SetOutput(io.MultiWriter(writers...))
	return log, nil
}
