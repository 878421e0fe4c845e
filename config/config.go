// Package config loads symdiff settings from YAML.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/symdiff/baseline"
	"github.com/viant/symdiff/cache"
	"github.com/viant/symdiff/inspector/info"
	"github.com/viant/symdiff/watcher"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a loaded config fails validation
var ErrInvalid = errors.New("invalid config")

// Config represents symdiff settings
type Config struct {
	Root              string        `yaml:"root,omitempty"`
	Baseline          string        `yaml:"baseline,omitempty"` // kind:reference, e.g. branch:main
	CacheCapacity     int           `yaml:"cacheCapacity"`
	Debounce          time.Duration `yaml:"debounce"`
	SnapshotsDir      string        `yaml:"snapshotsDir"`
	Extensions        []string      `yaml:"extensions,omitempty"` // empty means all supported
	IncludeUnexported bool          `yaml:"includeUnexported"`
	SkipTests         bool          `yaml:"skipTests"`
	LogLevel          string        `yaml:"logLevel"`
}

// Default returns default config
func Default() *Config {
	return &Config{
		CacheCapacity:     cache.DefaultCapacity,
		Debounce:          watcher.DefaultDebounce,
		SnapshotsDir:      baseline.DefaultSnapshotsDir,
		IncludeUnexported: true,
		LogLevel:          "info",
	}
}

// Load reads YAML config from URL over defaults and validates it
func Load(ctx context.Context, URL string, fs afs.Service) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	ret := Default()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Validate checks config values
func (c *Config) Validate() error {
	if c.CacheCapacity <= 0 {
		return fmt.Errorf("%w: cacheCapacity must be positive, got %d", ErrInvalid, c.CacheCapacity)
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("%w: debounce must be positive, got %s", ErrInvalid, c.Debounce)
	}
	if c.SnapshotsDir == "" {
		return fmt.Errorf("%w: snapshotsDir is empty", ErrInvalid)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Baseline != "" {
		if _, err := baseline.Parse(c.Baseline); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	for _, ext := range c.Extensions {
		if strings.TrimSpace(strings.TrimPrefix(ext, ".")) == "" {
			return fmt.Errorf("%w: empty extension", ErrInvalid)
		}
	}
	return nil
}

// Level returns slog level for LogLevel
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("unsupported log level %q", c.LogLevel)
	}
	return level, nil
}

// Inspection returns inspector config
func (c *Config) Inspection() *info.Config {
	return &info.Config{IncludeUnexported: c.IncludeUnexported, SkipTests: c.SkipTests}
}
