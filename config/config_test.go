package config_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/symdiff/config"
)

func TestLoad(t *testing.T) {
	var testCases = []struct {
		description string
		content     string
		expect      *config.Config
		expectErr   bool
	}{
		{
			description: "defaults are kept for omitted fields",
			content:     "baseline: branch:main\nskipTests: true\n",
			expect: &config.Config{
				Baseline:          "branch:main",
				CacheCapacity:     100,
				Debounce:          300 * time.Millisecond,
				SnapshotsDir:      ".symdiff/snapshots",
				IncludeUnexported: true,
				SkipTests:         true,
				LogLevel:          "info",
			},
		},
		{
			description: "overrides",
			content: `cacheCapacity: 10
debounce: 1s
snapshotsDir: /tmp/snaps
extensions: [.go, .java]
includeUnexported: false
logLevel: debug
`,
			expect: &config.Config{
				CacheCapacity: 10,
				Debounce:      time.Second,
				SnapshotsDir:  "/tmp/snaps",
				Extensions:    []string{".go", ".java"},
				LogLevel:      "debug",
			},
		},
		{
			description: "invalid capacity",
			content:     "cacheCapacity: 0\n",
			expectErr:   true,
		},
		{
			description: "invalid baseline",
			content:     "baseline: tag:v1\n",
			expectErr:   true,
		},
		{
			description: "invalid log level",
			content:     "logLevel: loud\n",
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		location := filepath.Join(t.TempDir(), "symdiff.yaml")
		require.NoError(t, os.WriteFile(location, []byte(testCase.content), 0o644))
		actual, err := config.Load(context.Background(), location, nil)
		if testCase.expectErr {
			assert.ErrorIs(t, err, config.ErrInvalid, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := config.Load(context.Background(), filepath.Join(t.TempDir(), "none.yaml"), nil)
	assert.Error(t, err)
}

func TestConfig_Level(t *testing.T) {
	aConfig := config.Default()
	level, err := aConfig.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	aConfig.LogLevel = "warn"
	level, err = aConfig.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
	assert.NoError(t, aConfig.Validate())
	assert.True(t, aConfig.Inspection().IncludeUnexported)
}
