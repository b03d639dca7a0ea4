package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	LevelCritical = slog.Level(12)

	defaultService = "budgetbuddy"
)

type Logger interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
	Critical(message string, args ...any)
	BusinessError(message string, err error, args ...any)
	InternalError(message string, err error, args ...any)
	With(args ...any) Logger
}

type slogLogger struct {
	base *slog.Logger
}

// Options describe a process logger. Zero values fall back to stdout, the
// "budgetbuddy" service name and json output.
type Options struct {
	Env     string
	Level   string
	Format  string
	Service string
	Output  io.Writer
}

func NewFromEnv() Logger {
	return NewFromOptions(Options{
		Env:    os.Getenv("ENV"),
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})
}

// NewFromOptions adds source locations in development.
func NewFromOptions(opts Options) Logger {
	env := normalizeValue(opts.Env)
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	service := strings.TrimSpace(opts.Service)
	if service == "" {
		service = defaultService
	}

	handler := newHandler(output, &slog.HandlerOptions{
		Level:       parseLevel(opts.Level, env),
		AddSource:   env == "development",
		ReplaceAttr: replaceAttr,
	}, parseFormat(opts.Format))
	return &slogLogger{base: slog.New(handler).With("service", service, "env", envOrDefault(env))}
}

// NewNop discards everything.
func NewNop() Logger {
	return New(io.Discard, LevelCritical+1, "text")
}

func New(output io.Writer, level slog.Level, format string) Logger {
	handler := newHandler(output, &slog.HandlerOptions{Level: level, ReplaceAttr: replaceAttr}, format)
	return &slogLogger{base: slog.New(handler)}
}

func newHandler(output io.Writer, options *slog.HandlerOptions, format string) slog.Handler {
	if normalizeValue(format) == "json" {
		return slog.NewJSONHandler(output, options)
	}
	return slog.NewTextHandler(output, options)
}

func (l *slogLogger) Debug(message string, args ...any) {
	l.base.Debug(message, args...)
}

func (l *slogLogger) Info(message string, args ...any) {
	l.base.Info(message, args...)
}

func (l *slogLogger) Warn(message string, args ...any) {
	l.base.Warn(message, args...)
}

func (l *slogLogger) Error(message string, args ...any) {
	l.base.Error(message, args...)
}

func (l *slogLogger) Critical(message string, args ...any) {
	l.base.Log(context.Background(), LevelCritical, message, args...)
}

// BusinessError logs a rejected request at warn. A nil err logs nothing.
func (l *slogLogger) BusinessError(message string, err error, args ...any) {
	l.logErr(slog.LevelWarn, message, err, args)
}

// InternalError logs a failure the caller could not cause. A nil err logs
// nothing.
func (l *slogLogger) InternalError(message string, err error, args ...any) {
	l.logErr(slog.LevelError, message, err, args)
}

func (l *slogLogger) logErr(level slog.Level, message string, err error, args []any) {
	if err == nil {
		return
	}
	l.base.Log(context.Background(), level, message, append([]any{"err", err}, args...)...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{base: l.base.With(args...)}
}

func parseLevel(value string, env string) slog.Level {
	switch normalizeValue(value) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "critical", "fatal":
		return LevelCritical
	}
	if env == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func parseFormat(value string) string {
	if normalizeValue(value) == "text" {
		return "text"
	}
	return "json"
}

func envOrDefault(env string) string {
	if env == "" {
		return "production"
	}
	return env
}

func normalizeValue(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// replaceAttr names the custom critical level.
func replaceAttr(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key != slog.LevelKey {
		return attr
	}
	if level, ok := attr.Value.Any().(slog.Level); ok && level == LevelCritical {
		attr.Value = slog.StringValue("CRITICAL")
	}
	return attr
}
