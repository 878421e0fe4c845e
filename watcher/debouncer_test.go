package watcher_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/symdiff/watcher"
)

func TestDebouncer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	debouncer := watcher.NewDebouncer(50 * time.Millisecond)
	go debouncer.Run(ctx)

	debouncer.Add("b.go")
	debouncer.Add("a.go")
	debouncer.Add("b.go")
	select {
	case batch := <-debouncer.Batches():
		assert.Equal(t, []string{"a.go", "b.go"}, batch)
	case <-time.After(5 * time.Second):
		require.Fail(t, "no batch emitted")
	}

	debouncer.Add("c.go")
	select {
	case batch := <-debouncer.Batches():
		assert.Equal(t, []string{"c.go"}, batch)
	case <-time.After(5 * time.Second):
		require.Fail(t, "no batch emitted")
	}

	cancel()
	select {
	case _, ok := <-debouncer.Batches():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		require.Fail(t, "batches not closed")
	}
	debouncer.Add("d.go")
}
