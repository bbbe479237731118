package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation configures the on-disk log file.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func (r Rotation) withDefaults() Rotation {
	if r.MaxSizeMB <= 0 {
		r.MaxSizeMB = 5
	}
	if r.MaxBackups < 0 {
		r.MaxBackups = 0
	} else if r.MaxBackups == 0 {
		r.MaxBackups = 3
	}
	if r.MaxAgeDays <= 0 {
		r.MaxAgeDays = 30
	}
	return r
}

// newRotatingWriter creates the parent directory and returns a size-rotated writer.
func newRotatingWriter(path string, rot Rotation) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	rot = rot.withDefaults()
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    rot.MaxSizeMB,
		MaxBackups: rot.MaxBackups,
		MaxAge:     rot.MaxAgeDays,
		Compress:   false,
	}, nil
}

// NewFile returns a JSON logger writing to a rotated file at path, plus the
// closer for the underlying file.
func NewFile(path string, level slog.Leveler, rot Rotation) (Logger, io.Closer, error) {
	w, err := newRotatingWriter(path, rot)
	if err != nil {
		return nil, nil, err
	}
	return NewJSON(w, level), w, nil
}

// Tee writes to console in the given format ("text" or "json") and JSON lines
// to a rotated file. An empty path returns a console-only logger.
func Tee(console io.Writer, format, path string, level slog.Leveler, rot Rotation) (Logger, io.Closer, error) {
	if console == nil {
		console = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	var primary slog.Handler = slog.NewTextHandler(console, opts)
	if strings.EqualFold(format, "json") {
		primary = slog.NewJSONHandler(console, opts)
	}
	if path == "" {
		return &slogLogger{l: slog.New(primary)}, nopCloser{}, nil
	}
	w, err := newRotatingWriter(path, rot)
	if err != nil {
		return nil, nil, err
	}
	file := slog.NewJSONHandler(w, opts)
	return &slogLogger{l: slog.New(&teeHandler{handlers: []slog.Handler{primary, file}})}, w, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
