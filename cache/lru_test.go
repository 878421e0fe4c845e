package cache_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/symdiff/cache"
)

func TestLRU_Eviction(t *testing.T) {
	lru := cache.NewLRU[string, int](2)
	var evicted []string
	lru.OnEvict(func(key string, _ int) { evicted = append(evicted, key) })

	lru.Set("a", 1)
	lru.Set("b", 2)
	value, ok := lru.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, value)

	lru.Set("c", 3)
	_, ok = lru.Get("b")
	assert.False(t, ok)
	assert.Equal(t, []string{"b"}, evicted)
	assert.Equal(t, []string{"c", "a"}, lru.Keys())

	stats := lru.Stats()
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, 2, stats.Capacity)
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 1, stats.Misses)
	assert.EqualValues(t, 1, stats.Evictions)
	assert.InDelta(t, 0.5, stats.HitRate(), 0.0001)
}

func TestLRU_UpdateDeletePurge(t *testing.T) {
	lru := cache.NewLRU[int, string](0)
	assert.Equal(t, cache.DefaultCapacity, lru.Stats().Capacity)

	lru.Set(1, "one")
	lru.Set(1, "uno")
	value, _ := lru.Peek(1)
	assert.Equal(t, "uno", value)
	assert.Equal(t, 1, lru.Len())
	assert.EqualValues(t, 0, lru.Stats().Hits)

	assert.True(t, lru.Delete(1))
	assert.False(t, lru.Delete(1))

	lru.Set(2, "two")
	lru.Get(2)
	lru.Purge()
	assert.Equal(t, 0, lru.Len())
	assert.Zero(t, lru.Stats().Hits)
}

func TestLRU_Concurrent(t *testing.T) {
	lru := cache.NewLRU[string, int](16)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("%d-%d", worker, j%20)
				lru.Set(key, j)
				lru.Get(key)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, lru.Len(), 16)
}
