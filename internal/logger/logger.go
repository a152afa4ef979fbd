// Package logger provides the process-wide structured logger.
// Records are key/value pairs rendered by log/slog's text handler.
// Values under sensitive keys (API keys, tokens, secrets) are redacted.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

const redacted = "[REDACTED]"

var (
	mu      sync.RWMutex
	verbose bool
	level   = slog.LevelInfo
	output  io.Writer = os.Stderr
	current           = newLogger()
)

// SetVerbose enables or disables debug logging.
// Disabling restores the info level.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		level = slog.LevelDebug
	} else {
		level = slog.LevelInfo
	}
	current = newLogger()
}

// IsVerbose returns true if debug logging is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetLevel sets the minimum level by name: debug, info, warn or error.
func SetLevel(name string) error {
	var l slog.Level
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		l = slog.LevelDebug
	case "info", "":
		l = slog.LevelInfo
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", name)
	}

	mu.Lock()
	defer mu.Unlock()
	level = l
	verbose = l == slog.LevelDebug
	current = newLogger()
	return nil
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	current = newLogger()
}

// Logger returns the underlying slog logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	log(slog.LevelDebug, msg, args)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	log(slog.LevelInfo, msg, args)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	log(slog.LevelWarn, msg, args)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	log(slog.LevelError, msg, args)
}

func log(l slog.Level, msg string, args []any) {
	mu.RLock()
	defer mu.RUnlock()
	current.Log(context.Background(), l, msg, args...)
}

// newLogger must be called with mu held.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redact,
	}))
}

func redact(_ []string, a slog.Attr) slog.Attr {
	if IsSensitiveKey(a.Key) {
		return slog.String(a.Key, redacted)
	}
	return a
}

// IsSensitiveKey reports whether values logged under key must be hidden.
func IsSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, marker := range []string{"key", "token", "secret", "authorization", "password"} {
		if strings.Contains(k, marker) {
			return true
		}
	}
	return false
}
