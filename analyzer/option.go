package analyzer

import (
	"log/slog"
	"time"

	"github.com/viant/afs"
	"github.com/viant/symdiff/cache"
)

// Option configures an analyzer
type Option func(*Analyzer)

// WithReader sets the current file reader
func WithReader(reader Reader) Option {
	return func(a *Analyzer) {
		a.reader = reader
	}
}

// WithFS sets the storage service backing the default reader and source listing
func WithFS(fs afs.Service) Option {
	return func(a *Analyzer) {
		a.fs = fs
	}
}

// WithCache sets a content cache; it must read from the analyzer source
func WithCache(contentCache *cache.ContentCache) Option {
	return func(a *Analyzer) {
		a.cache = contentCache
	}
}

// WithCacheCapacity sets baseline content cache capacity
func WithCacheCapacity(capacity int) Option {
	return func(a *Analyzer) {
		a.cacheCapacity = capacity
	}
}

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithSubscriber registers a subscriber
func WithSubscriber(subscriber Subscriber) Option {
	return func(a *Analyzer) {
		a.subscribers = append(a.subscribers, subscriber)
	}
}

// WithClock sets the time source used to stamp graph diffs
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}
