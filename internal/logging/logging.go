package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"receiptpoints/internal/config"
)

// Setup routes log output to both standard output and a size-rotated file,
// and installs the logger as the slog default.
func Setup(cfg *config.Config) *slog.Logger {
	rotator := &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}

	handler := slog.NewTextHandler(io.MultiWriter(os.Stdout, rotator), nil)

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
