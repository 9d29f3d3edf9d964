package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the process-wide structured logger. It starts as a plain text
// logger on stdout and is replaced by InitLogger once config is loaded.
var Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

// LoggerConfig определяет конфигурацию для логгера
type LoggerConfig struct {
	// Level is one of debug, info, error.
	Level string
	// Формат логов (text/json)
	Format string
	// Выходной поток (os.Stdout, файл и т.д.)
	Output io.Writer
}

// InitLogger инициализирует и возвращает логгер
func InitLogger(config ...LoggerConfig) (*slog.Logger, error) {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	level, levelErr := ParseLogLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	Logger = slog.New(handler).With("app", "study-tracker")
	return Logger, levelErr
}

// ParseLogLevel maps a config value to a slog level. Empty input means info.
func ParseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", value)
	}
}
