package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"

	"github.com/user/framefix/pkg/ports"
)

// SlogLogger adapts log/slog to ports.Logger. Messages are formatted with
// their arguments and emitted untranslated; the component becomes an attribute.
type SlogLogger struct {
	logger *slog.Logger
}

// NewStructured creates a logger that writes tint-formatted records to w.
// When noColor is set the output carries no ANSI escapes.
func NewStructured(w io.Writer, level ports.LogLevel, noColor bool) *SlogLogger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:      toSlogLevel(level),
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	})
	return &SlogLogger{logger: slog.New(handler)}
}

// NewSlog wraps an existing slog.Logger.
func NewSlog(l *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: l}
}

func (l *SlogLogger) Debug(msg string, args ...interface{}) {
	l.emit(slog.LevelDebug, msg, args...)
}

func (l *SlogLogger) Info(msg string, args ...interface{}) {
	l.emit(slog.LevelInfo, msg, args...)
}

func (l *SlogLogger) Warn(msg string, args ...interface{}) {
	l.emit(slog.LevelWarn, msg, args...)
}

func (l *SlogLogger) Error(msg string, args ...interface{}) {
	l.emit(slog.LevelError, msg, args...)
}

func (l *SlogLogger) WithComponent(component string) ports.Logger {
	return &SlogLogger{logger: l.logger.With(slog.String("component", component))}
}

func (l *SlogLogger) emit(level slog.Level, msg string, args ...interface{}) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.logger.Log(ctx, level, msg)
}

// toSlogLevel maps LevelQuiet above every slog level.
func toSlogLevel(level ports.LogLevel) slog.Level {
	switch level {
	case ports.LevelDebug:
		return slog.LevelDebug
	case ports.LevelWarn:
		return slog.LevelWarn
	case ports.LevelError:
		return slog.LevelError
	case ports.LevelQuiet:
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}

var _ ports.Logger = (*SlogLogger)(nil)
