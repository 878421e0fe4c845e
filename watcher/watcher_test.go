package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/symdiff/watcher"
)

func TestWatcher_Run(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules", "dep"), 0o755))

	aWatcher, err := watcher.New(root,
		watcher.WithDebounce(50*time.Millisecond),
		watcher.WithFilter(func(path string) bool { return strings.HasSuffix(path, ".go") }))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	batches := make(chan []string, 8)
	done := make(chan error, 1)
	go func() {
		done <- aWatcher.Run(ctx, func(ctx context.Context, paths []string) {
			batches <- paths
		})
	}()
	// let the watcher register directories
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "a.go"), []byte("package pkg\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "node_modules", "dep", "b.go"), []byte("package dep\n"), 0o644))

	select {
	case batch := <-batches:
		assert.Equal(t, []string{"pkg/a.go"}, batch)
	case <-time.After(5 * time.Second):
		require.Fail(t, "no batch delivered")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.Fail(t, "watcher did not stop")
	}
}
