package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"studytracker/backend/utils"
)

const (
	defaultSlowThreshold = 200 * time.Millisecond
	defaultGormLogLevel  = gormlogger.Warn
)

// gormSlogLogger forwards gorm's statement tracing to utils.Logger.
type gormSlogLogger struct {
	slowThreshold             time.Duration
	ignoreRecordNotFoundError bool
	logLevel                  gormlogger.LogLevel
}

func newGormLogger(levelValue string) (gormlogger.Interface, error) {
	level := defaultGormLogLevel
	var levelErr error
	if strings.TrimSpace(levelValue) != "" {
		level, levelErr = parseGormLogLevel(levelValue)
	}
	return &gormSlogLogger{
		slowThreshold:             defaultSlowThreshold,
		ignoreRecordNotFoundError: true,
		logLevel:                  level,
	}, levelErr
}

func (l *gormSlogLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.logLevel = level
	return &clone
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= gormlogger.Info {
		l.log(ctx, slog.LevelInfo, fmt.Sprintf(msg, data...))
	}
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= gormlogger.Warn {
		l.log(ctx, slog.LevelWarn, fmt.Sprintf(msg, data...))
	}
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= gormlogger.Error {
		l.log(ctx, slog.LevelError, fmt.Sprintf(msg, data...))
	}
}

func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.logLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.logLevel >= gormlogger.Error:
		if l.ignoreRecordNotFoundError && errors.Is(err, gorm.ErrRecordNotFound) {
			return
		}
		sql, rows := fc()
		l.log(ctx, slog.LevelError, "gorm query error",
			"elapsed", elapsed,
			"rows", rows,
			"sql", sql,
			"error", err,
		)
	case err == nil && l.slowThreshold > 0 && elapsed > l.slowThreshold && l.logLevel >= gormlogger.Warn:
		sql, rows := fc()
		l.log(ctx, slog.LevelWarn, "gorm slow query",
			"elapsed", elapsed,
			"rows", rows,
			"sql", sql,
			"threshold", l.slowThreshold,
		)
	case err == nil && l.logLevel >= gormlogger.Info:
		sql, rows := fc()
		l.log(ctx, slog.LevelInfo, "gorm query",
			"elapsed", elapsed,
			"rows", rows,
			"sql", sql,
		)
	}
}

// log tags the record with the request id the statement ran under.
func (l *gormSlogLogger) log(ctx context.Context, level slog.Level, msg string, attrs ...any) {
	if id := utils.RequestID(ctx); id != "" {
		attrs = append(attrs, "request_id", id)
	}
	utils.Logger.Log(ctx, level, msg, attrs...)
}

func parseGormLogLevel(value string) (gormlogger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "silent":
		return gormlogger.Silent, nil
	case "error":
		return gormlogger.Error, nil
	case "warn":
		return gormlogger.Warn, nil
	case "info":
		return gormlogger.Info, nil
	default:
		return defaultGormLogLevel, fmt.Errorf("invalid gorm log level %q", value)
	}
}
