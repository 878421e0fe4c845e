package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/symdiff/baseline"
	"github.com/viant/symdiff/cache"
	"github.com/viant/symdiff/diff"
)

type memorySource struct {
	files map[string]string
	reads int
	err   error
}

func (m *memorySource) FileContent(_ context.Context, _ *baseline.Baseline, path string) ([]byte, error) {
	m.reads++
	if m.err != nil {
		return nil, m.err
	}
	content, ok := m.files[path]
	if !ok {
		return nil, nil
	}
	return []byte(content), nil
}

func (m *memorySource) FileExists(_ context.Context, _ *baseline.Baseline, path string) (bool, error) {
	_, ok := m.files[path]
	return ok, m.err
}

func (m *memorySource) ListFiles(context.Context, *baseline.Baseline) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []string
	for path := range m.files {
		result = append(result, path)
	}
	return result, nil
}

func TestContentCache_BaselineContent(t *testing.T) {
	ctx := context.Background()
	source := &memorySource{files: map[string]string{"a.go": "package a"}}
	contentCache := cache.NewContentCache(source, cache.WithCapacity(2))

	_, ok := contentCache.BaselineContent(ctx, "a.go")
	assert.False(t, ok, "no baseline set")

	require.True(t, contentCache.SetBaseline(baseline.New(baseline.KindCommit, "HEAD")))
	assert.False(t, contentCache.SetBaseline(baseline.New(baseline.KindCommit, "HEAD")))

	content, ok := contentCache.BaselineContent(ctx, "a.go")
	require.True(t, ok)
	assert.Equal(t, "package a", string(content))
	_, _ = contentCache.BaselineContent(ctx, "a.go")
	_, ok = contentCache.BaselineContent(ctx, "missing.go")
	assert.False(t, ok)
	_, ok = contentCache.BaselineContent(ctx, "missing.go")
	assert.False(t, ok)
	assert.Equal(t, 2, source.reads, "present and absent content are cached")

	contentCache.SetBaseline(baseline.New(baseline.KindBranch, "main"))
	_, _ = contentCache.BaselineContent(ctx, "a.go")
	assert.Equal(t, 3, source.reads, "keys embed the baseline hash")
	stats := contentCache.Stats()
	assert.EqualValues(t, 1, stats.Content.Evictions)
	assert.Equal(t, 2, stats.Content.Size)
}

func TestContentCache_SourceFailure(t *testing.T) {
	ctx := context.Background()
	source := &memorySource{err: errors.New("fatal: not a git repository")}
	contentCache := cache.NewContentCache(source)
	contentCache.SetBaseline(baseline.New(baseline.KindCommit, "HEAD"))

	content, ok := contentCache.BaselineContent(ctx, "a.go")
	assert.False(t, ok)
	assert.Nil(t, content)
	assert.Nil(t, contentCache.BaselineFiles(ctx))
}

func TestContentCache_Results(t *testing.T) {
	ctx := context.Background()
	source := &memorySource{files: map[string]string{"a.go": "", "b.go": ""}}
	contentCache := cache.NewContentCache(source)
	contentCache.SetBaseline(baseline.New(baseline.KindCommit, "HEAD"))
	b1Hash := contentCache.BaselineHash()
	result := &diff.FileDiff{Path: "a.go"}

	assert.True(t, contentCache.StoreResult(b1Hash, "a.go", "c1", result))
	cached, ok := contentCache.Result(ctx, "a.go", "c1")
	require.True(t, ok)
	assert.Same(t, result, cached)

	_, ok = contentCache.Result(ctx, "a.go", "c2")
	assert.False(t, ok, "content hash mismatch")

	contentCache.Invalidate("a.go")
	_, ok = contentCache.Result(ctx, "a.go", "c1")
	assert.False(t, ok)

	contentCache.StoreResult(b1Hash, "a.go", "c1", result)
	contentCache.SetBaseline(baseline.New(baseline.KindCommit, "HEAD~1"))
	_, ok = contentCache.Result(ctx, "a.go", "c1")
	assert.False(t, ok, "baseline swap clears results")

	assert.False(t, contentCache.StoreResult(b1Hash, "a.go", "c1", result), "stale baseline result is discarded")
	assert.Equal(t, 0, contentCache.Stats().Results)
	assert.EqualValues(t, 1, contentCache.Stats().Discarded)

	assert.ElementsMatch(t, []string{"a.go", "b.go"}, contentCache.BaselineFiles(ctx))
	contentCache.Clear()
	assert.Equal(t, 0, contentCache.Stats().Content.Size)
}
