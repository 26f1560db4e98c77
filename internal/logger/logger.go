package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a simple wrapper around slog
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration
type Config struct {
	Level  string `json:"level" env:"LOG_LEVEL" env-default:"info"`   // debug, info, warn, error
	Format string `json:"format" env:"LOG_FORMAT" env-default:"text"` // text or json
}

// New creates a new slog logger writing to stderr
func New(cfg Config) *Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a new slog logger writing to w
func NewWithWriter(cfg Config, w io.Writer) *Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: !strings.EqualFold(cfg.Format, "json"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// Discard returns a logger that drops everything, used by tests
func Discard() *Logger {
	return NewWithWriter(Config{Level: "error"}, io.Discard)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs debug messages
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.Logger.Debug(formatMessage(msg, args...))
}

// Info logs info messages
func (l *Logger) Info(msg string, args ...interface{}) {
	l.Logger.Info(formatMessage(msg, args...))
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.Logger.Warn(formatMessage(msg, args...))
}

// Error logs error messages
func (l *Logger) Error(msg string, args ...interface{}) {
	l.Logger.Error(formatMessage(msg, args...))
}

// formatMessage formats the message with args using Printf-style formatting
func formatMessage(msg string, args ...interface{}) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// Global logger instance
var defaultLogger *Logger

// Initialize sets up the global logger
func Initialize(cfg Config) {
	defaultLogger = New(cfg)
}

// Default returns the default logger instance
func Default() *Logger {
	if defaultLogger == nil {
		defaultLogger = New(Config{Level: "info", Format: "text"})
	}
	return defaultLogger
}
