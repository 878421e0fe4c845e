package watcher

import (
	"log/slog"
	"time"
)

// Option configures a watcher
type Option func(*Watcher)

// WithDebounce sets the debounce window
func WithDebounce(window time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = window
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithFilter keeps only relative paths the filter accepts, e.g. registry indexable sources
func WithFilter(filter func(path string) bool) Option {
	return func(w *Watcher) {
		w.filter = filter
	}
}
