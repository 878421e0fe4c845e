package cache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/viant/symdiff/baseline"
	"github.com/viant/symdiff/diff"
)

// DefaultCapacity is the default number of cached baseline files
const DefaultCapacity = 100

const (
	kindContent = "content"
	kindResult  = "result"
)

type contentEntry struct {
	data    []byte
	present bool
}

type resultEntry struct {
	baselineHash string
	contentHash  string
	result       *diff.FileDiff
}

// Stats represents content cache statistics
type Stats struct {
	Content      LRUStats
	Results      int
	ResultHits   int64
	ResultMisses int64
	Discarded    int64
}

// ContentCache holds baseline content keyed by {baselineHash}:{path} and per file diff results
// stamped with the baseline and content hashes they were computed from.
type ContentCache struct {
	mux          sync.Mutex
	source       baseline.Source
	logger       *slog.Logger
	capacity     int
	content      *LRU[string, contentEntry]
	results      map[string]*resultEntry
	files        []string
	filesHash    string
	baseline     *baseline.Baseline
	baselineHash string

	resultHits   int64
	resultMisses int64
	discarded    int64
}

// Option configures a content cache
type Option func(*ContentCache)

// WithCapacity sets baseline content capacity
func WithCapacity(capacity int) Option {
	return func(c *ContentCache) {
		c.capacity = capacity
	}
}

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *ContentCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewContentCache creates a cache reading baseline content from source
func NewContentCache(source baseline.Source, opts ...Option) *ContentCache {
	ret := &ContentCache{
		source:   source,
		logger:   slog.Default(),
		capacity: DefaultCapacity,
		results:  map[string]*resultEntry{},
	}
	for _, opt := range opts {
		opt(ret)
	}
	ret.content = NewLRU[string, contentEntry](ret.capacity)
	ret.content.OnEvict(func(string, contentEntry) {
		recordEviction(context.Background())
	})
	return ret
}

// SetBaseline activates b; results are cleared when the baseline hash changes.
// Content entries of the previous baseline are left to age out of the LRU.
func (c *ContentCache) SetBaseline(b *baseline.Baseline) bool {
	c.mux.Lock()
	defer c.mux.Unlock()
	hash := b.Hash()
	c.baseline = b
	if hash == c.baselineHash {
		return false
	}
	c.baselineHash = hash
	c.results = map[string]*resultEntry{}
	c.files = nil
	c.filesHash = ""
	return true
}

// Baseline returns active baseline
func (c *ContentCache) Baseline() *baseline.Baseline {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.baseline
}

// BaselineHash returns active baseline hash
func (c *ContentCache) BaselineHash() string {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.baselineHash
}

// BaselineContent returns baseline content of path; source failures are logged and reported as absent
func (c *ContentCache) BaselineContent(ctx context.Context, path string) ([]byte, bool) {
	c.mux.Lock()
	b, hash := c.baseline, c.baselineHash
	c.mux.Unlock()
	if b == nil {
		return nil, false
	}
	key := hash + ":" + path
	if entry, ok := c.content.Get(key); ok {
		recordHit(ctx, kindContent)
		return entry.data, entry.present
	}
	recordMiss(ctx, kindContent)
	data, err := c.source.FileContent(ctx, b, path)
	if err != nil {
		c.logger.Warn("baseline content unavailable", "baseline", b.String(), "path", path, "error", err)
		return nil, false
	}
	entry := contentEntry{data: data, present: data != nil}
	c.content.Set(key, entry)
	return entry.data, entry.present
}

// BaselineFiles lists baseline files; source failures are logged and reported as empty
func (c *ContentCache) BaselineFiles(ctx context.Context) []string {
	c.mux.Lock()
	b, hash := c.baseline, c.baselineHash
	if c.files != nil && c.filesHash == hash {
		files := c.files
		c.mux.Unlock()
		return files
	}
	c.mux.Unlock()
	if b == nil {
		return nil
	}
	files, err := c.source.ListFiles(ctx, b)
	if err != nil {
		c.logger.Warn("baseline listing unavailable", "baseline", b.String(), "error", err)
		return nil
	}
	if files == nil {
		files = []string{}
	}
	c.mux.Lock()
	if c.baselineHash == hash {
		c.files, c.filesHash = files, hash
	}
	c.mux.Unlock()
	return files
}

// Result returns the cached diff of path computed for the active baseline and contentHash
func (c *ContentCache) Result(ctx context.Context, path, contentHash string) (*diff.FileDiff, bool) {
	c.mux.Lock()
	defer c.mux.Unlock()
	entry, ok := c.results[path]
	if !ok || entry.baselineHash != c.baselineHash || entry.contentHash != contentHash {
		c.resultMisses++
		recordMiss(ctx, kindResult)
		return nil, false
	}
	c.resultHits++
	recordHit(ctx, kindResult)
	return entry.result, true
}

// StoreResult caches result unless it was computed against a baseline that is no longer active
func (c *ContentCache) StoreResult(baselineHash, path, contentHash string, result *diff.FileDiff) bool {
	c.mux.Lock()
	defer c.mux.Unlock()
	if baselineHash != c.baselineHash {
		c.discarded++
		c.logger.Debug("discarding stale diff result", "path", path)
		return false
	}
	c.results[path] = &resultEntry{baselineHash: baselineHash, contentHash: contentHash, result: result}
	return true
}

// Invalidate drops the cached result of path
func (c *ContentCache) Invalidate(path string) {
	c.mux.Lock()
	defer c.mux.Unlock()
	delete(c.results, path)
}

// Clear drops cached results, content and listings; the active baseline is kept
func (c *ContentCache) Clear() {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.results = map[string]*resultEntry{}
	c.files = nil
	c.filesHash = ""
	c.content.Purge()
}

// Stats returns cache statistics
func (c *ContentCache) Stats() Stats {
	c.mux.Lock()
	defer c.mux.Unlock()
	return Stats{
		Content:      c.content.Stats(),
		Results:      len(c.results),
		ResultHits:   c.resultHits,
		ResultMisses: c.resultMisses,
		Discarded:    c.discarded,
	}
}
