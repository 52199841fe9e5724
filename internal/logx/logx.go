// Package logx builds the loggers viu uses while it owns the terminal.
package logx

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pkt.systems/pslog"
	"pkt.systems/viu/schema"
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// Options returns structured logger options for a canonical level name.
func Options(level schema.LogLevel) pslog.Options {
	opts := pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		VerboseFields: true,
	}
	switch level {
	case schema.LogTrace:
		opts.MinLevel = pslog.TraceLevel
	case schema.LogDebug:
		opts.MinLevel = pslog.DebugLevel
	case schema.LogError:
		opts.MinLevel = pslog.ErrorLevel
	default:
		opts.MinLevel = pslog.InfoLevel
	}
	return opts
}

// New returns a structured logger writing to w.
func New(w io.Writer, level string) (pslog.Logger, error) {
	lvl, err := schema.NormalizeLogLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return pslog.NewWithOptions(w, Options(lvl)), nil
}

// Discard returns a logger that drops everything. Used while the alternate
// screen is active and no log file is configured.
func Discard() pslog.Logger {
	return pslog.NewWithOptions(io.Discard, Options(schema.LogError))
}

// OpenFile opens path for appending and returns a structured logger on it.
// The returned closer must be closed after the last log call.
func OpenFile(path, level string) (pslog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := New(f, level)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// ForSession returns the logger to use while the terminal shows the viewer:
// a file logger when path is set, otherwise a discarding one.
func ForSession(path, level string) (pslog.Logger, io.Closer, error) {
	if path == "" {
		return Discard(), io.NopCloser(nil), nil
	}
	return OpenFile(path, level)
}

// WithFile annotates the logger with the viewed file.
func WithFile(log pslog.Logger, path string) pslog.Logger {
	if path != "" {
		log = log.With("file", path)
	}
	return log
}

// WithDocument annotates the logger with the detected language and style.
func WithDocument(log pslog.Logger, language, style string) pslog.Logger {
	if language != "" {
		log = log.With("language", language)
	}
	if style != "" {
		log = log.With("style", style)
	}
	return log
}
