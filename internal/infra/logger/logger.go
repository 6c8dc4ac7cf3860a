// Package logger owns the process-wide JSON file logger.
package logger

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	logDir  = ".edqm2fhir/logs"
	logName = "edqm2fhir.log"
)

type Config struct {
	Root  string
	Debug bool

	// File overrides the default <Root>/.edqm2fhir/logs/edqm2fhir.log.
	File string

	// Attrs are attached to every record, e.g. the command name.
	Attrs []any
}

type state struct {
	log  *slog.Logger
	file *os.File
	path string
}

var (
	mu      sync.RWMutex
	current = discard()
)

func discard() state {
	return state{log: slog.New(slog.DiscardHandler)}
}

// Setup opens the log file in append mode and installs the logger returned
// by L. The cleanup func closes the file and restores a discarding logger.
func Setup(cfg Config) (func() error, error) {
	path := cfg.File
	if path == "" {
		root := filepath.Clean(cfg.Root)
		path = filepath.Join(root, filepath.FromSlash(logDir), logName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		reset()
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		reset()
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:       slog.LevelInfo,
		ReplaceAttr: utcTime,
	}
	if cfg.Debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}

	l := slog.New(slog.NewJSONHandler(f, opts))
	if len(cfg.Attrs) > 0 {
		l = l.With(cfg.Attrs...)
	}

	mu.Lock()
	current = state{log: l, file: f, path: path}
	mu.Unlock()

	l.Info("logger initialized", "path", path, "debug", cfg.Debug)

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		var cerr error
		if current.file != nil {
			cerr = current.file.Close()
		}
		current = discard()
		return cerr
	}
	return cleanup, nil
}

// utcTime renders record times as UTC RFC3339Nano.
func utcTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
	}
	return a
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current.log
}

func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return current.path
}

func reset() {
	mu.Lock()
	defer mu.Unlock()
	current = discard()
}

func IsReady() error {
	mu.RLock()
	defer mu.RUnlock()
	if current.file == nil || current.path == "" {
		return errors.New("logger not initialized")
	}
	return nil
}
