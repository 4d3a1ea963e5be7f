// Package logging builds the workflow logger. Stdout belongs to the Alfred
// script-filter protocol, so logs never go there: with Alfred's debugger open
// (alfred_debug=1) they go to stderr in a readable form, otherwise to a JSON
// log file under the cache directory.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
)

const appName = "qingping-monitor"

// New returns the logger and a close func for the underlying log file (a
// no-op for stderr logging).
func New(level slog.Level, cacheDir string) (*slog.Logger, func() error) {
	if os.Getenv("alfred_debug") == "1" {
		h := tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
		return slog.New(h).With("app", appName), func() error { return nil }
	}

	path := filepath.Join(cacheDir, "qingping-monitor.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		// Cache dir unwritable; keep logging on stderr rather than fail
		// the invocation.
		h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		return slog.New(h).With("app", appName), func() error { return nil }
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("app", appName), f.Close
}

// Discard returns a logger that drops everything, for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
