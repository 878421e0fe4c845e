// Package analyzer orchestrates structural diffs of a source tree against a baseline:
// it reads current and baseline content, extracts symbols, diffs them per file, derives
// graph level diffs and publishes each result as one immutable snapshot.
//
// An Analyzer is not safe for concurrent use; callers serialize operations and must not
// swap the baseline while a graph analysis is in flight.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/viant/afs"
	"github.com/viant/symdiff/baseline"
	"github.com/viant/symdiff/cache"
	"github.com/viant/symdiff/diff"
	"github.com/viant/symdiff/digest"
	"github.com/viant/symdiff/inspector"
	"github.com/viant/symdiff/inspector/symbol"
)

const absentContentHash = "absent"

// Analyzer computes symbol level diffs between a baseline and the current tree
type Analyzer struct {
	root          string
	source        baseline.Source
	registry      *inspector.Registry
	fs            afs.Service
	reader        Reader
	cache         *cache.ContentCache
	cacheCapacity int
	engine        *diff.Engine
	logger        *slog.Logger
	subscribers   []Subscriber
	latest        atomic.Pointer[diff.GraphDiff]
	now           func() time.Time
}

// New creates an analyzer for root; the baseline source resolves content at the active baseline
func New(root string, source baseline.Source, registry *inspector.Registry, opts ...Option) *Analyzer {
	ret := &Analyzer{
		root:          root,
		source:        source,
		registry:      registry,
		cacheCapacity: cache.DefaultCapacity,
		engine:        diff.New(),
		logger:        slog.Default(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.registry == nil {
		ret.registry = inspector.New(nil)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	if ret.reader == nil {
		ret.reader = NewReader(root, ret.fs)
	}
	if ret.cache == nil {
		ret.cache = cache.NewContentCache(source, cache.WithCapacity(ret.cacheCapacity), cache.WithLogger(ret.logger))
	}
	return ret
}

// Root returns analyzed root
func (a *Analyzer) Root() string {
	return a.root
}

// SetBaseline activates b, dropping diff results bound to the previous baseline
func (a *Analyzer) SetBaseline(b *baseline.Baseline) error {
	if b == nil {
		return fmt.Errorf("%w: nil baseline", baseline.ErrInvalidBaseline)
	}
	if a.cache.SetBaseline(b) {
		a.logger.Debug("baseline changed", "baseline", b.String(), "hash", a.cache.BaselineHash())
	}
	return nil
}

// Baseline returns active baseline, nil before SetBaseline
func (a *Analyzer) Baseline() *baseline.Baseline {
	return a.cache.Baseline()
}

// AnalyzeFile returns changed top-level symbols of a slash separated path relative to root.
// Returned diffs are copies; mutating them does not affect cached results.
func (a *Analyzer) AnalyzeFile(ctx context.Context, location string) ([]*diff.NodeDiff, error) {
	fileDiff, err := a.FileDiff(ctx, location)
	if err != nil {
		return nil, err
	}
	return fileDiff.Nodes, nil
}

// FileDiff returns a copy of the full diff of one file including line statistics
func (a *Analyzer) FileDiff(ctx context.Context, location string) (*diff.FileDiff, error) {
	fileDiff, err := a.analyzeFile(ctx, location)
	if err != nil {
		return nil, err
	}
	return fileDiff.Clone(), nil
}

// Invalidate drops the cached diff of location
func (a *Analyzer) Invalidate(location string) {
	a.cache.Invalidate(location)
}

// ClearCache drops cached content, listings and diff results
func (a *Analyzer) ClearCache() {
	a.cache.Clear()
}

// CacheStats returns content cache statistics
func (a *Analyzer) CacheStats() cache.Stats {
	return a.cache.Stats()
}

// Latest returns the last published graph diff
func (a *Analyzer) Latest() *diff.GraphDiff {
	return a.latest.Load()
}

// Subscribe registers a subscriber for published graph diffs
func (a *Analyzer) Subscribe(subscriber Subscriber) {
	a.subscribers = append(a.subscribers, subscriber)
}

func (a *Analyzer) analyzeFile(ctx context.Context, location string) (*diff.FileDiff, error) {
	started := time.Now()
	b := a.cache.Baseline()
	if b == nil {
		return nil, ErrNoBaseline
	}
	empty := &diff.FileDiff{Path: location, Nodes: []*diff.NodeDiff{}}
	if b.IsWorkingTree() || !a.registry.Supports(location) {
		return empty, nil
	}
	current, present, err := a.reader.Read(ctx, location)
	if err != nil {
		a.logger.Warn("current content unavailable", "path", location, "error", err)
		current, present = nil, false
	}
	contentHash := absentContentHash
	if present {
		contentHash = digest.Content(current)
	}
	baselineHash := a.cache.BaselineHash()
	if cached, ok := a.cache.Result(ctx, location, contentHash); ok {
		recordAnalyzeFile(ctx, started, true)
		return cached, nil
	}

	previous, existed := a.cache.BaselineContent(ctx, location)
	result := empty
	if present || existed {
		before := a.inspect(ctx, location, previous, existed)
		after := a.inspect(ctx, location, current, present)
		nodes := a.engine.DiffNodes(before, after)
		for _, node := range nodes {
			node.FilePath = location
		}
		if nodes == nil {
			nodes = []*diff.NodeDiff{}
		}
		result = &diff.FileDiff{Path: location, Nodes: nodes}
		result.LinesAdded, result.LinesRemoved = diff.LineStats(previous, current)
	}
	a.cache.StoreResult(baselineHash, location, contentHash, result)
	recordAnalyzeFile(ctx, started, false)
	return result, nil
}

// inspect extracts symbols; parse failures are treated as zero symbols
func (a *Analyzer) inspect(ctx context.Context, location string, src []byte, present bool) *symbol.File {
	if !present {
		return nil
	}
	aFile, err := a.registry.InspectSource(ctx, location, src)
	if err != nil {
		a.logger.Debug("failed to inspect source", "path", location, "error", err)
		return nil
	}
	return aFile
}
