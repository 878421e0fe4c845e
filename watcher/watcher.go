// Package watcher turns file system notifications under a root into debounced batches of
// slash separated relative paths delivered serially to a handler.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

// Handler receives a batch of changed paths relative to the watched root
type Handler func(ctx context.Context, paths []string)

// Watcher watches a directory tree
type Watcher struct {
	root     string
	debounce time.Duration
	logger   *slog.Logger
	filter   func(path string) bool
	watcher  *fsnotify.Watcher
}

// New creates a watcher for root
func New(root string, opts ...Option) (*Watcher, error) {
	ret := &Watcher{root: root, debounce: DefaultDebounce, logger: slog.Default()}
	for _, opt := range opts {
		opt(ret)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	ret.watcher = watcher
	return ret, nil
}

// Run watches until ctx is done and calls handler with each batch; handler calls never overlap
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	defer w.watcher.Close()
	if err := w.addRecursive(w.root); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	debouncer := NewDebouncer(w.debounce)
	go debouncer.Run(ctx)
	go w.forward(ctx, debouncer)
	for batch := range debouncer.Batches() {
		handler(ctx, batch)
	}
	return nil
}

// forward feeds relevant fsnotify events to the debouncer
func (w *Watcher) forward(ctx context.Context, debouncer *Debouncer) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						w.logger.Warn("failed to watch directory", "path", event.Name, "error", err)
					}
					continue
				}
			}
			location, ok := w.relative(event.Name)
			if !ok {
				continue
			}
			w.logger.Debug("file changed", "path", location, "op", event.Op.String())
			debouncer.Add(location)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// relative returns slash separated path under root, false when skipped or filtered out
func (w *Watcher) relative(name string) (string, bool) {
	location, err := filepath.Rel(w.root, name)
	if err != nil || strings.HasPrefix(location, "..") {
		return "", false
	}
	location = filepath.ToSlash(location)
	for _, element := range strings.Split(location, "/") {
		if skippedDirs[element] {
			return "", false
		}
	}
	if w.filter != nil && !w.filter(location) {
		return "", false
	}
	return location, true
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(location string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if location != root && (skippedDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(location); err != nil {
			return fmt.Errorf("failed to watch %s: %w", location, err)
		}
		return nil
	})
}
