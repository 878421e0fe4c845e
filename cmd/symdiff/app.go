package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/viant/symdiff/analyzer"
	"github.com/viant/symdiff/baseline"
	"github.com/viant/symdiff/config"
	"github.com/viant/symdiff/inspector"
	"github.com/viant/symdiff/inspector/repository"
)

const defaultBaseline = "commit:HEAD"

// options holds persistent flags
type options struct {
	configURL string
	root      string
	baseline  string
	logLevel  string
}

// app wires config, baseline resolution and the analyzer for one command run
type app struct {
	config   *config.Config
	root     string
	logger   *slog.Logger
	registry *inspector.Registry
	resolver *baseline.Resolver
	analyzer *analyzer.Analyzer
}

func newApp(ctx context.Context, opts *options, stderr io.Writer) (*app, error) {
	cfg := config.Default()
	if opts.configURL != "" {
		loaded, err := config.Load(ctx, opts.configURL, nil)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.baseline != "" {
		cfg.Baseline = opts.baseline
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.root != "" {
		cfg.Root = opts.root
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	root, err := resolveRoot(ctx, cfg.Root)
	if err != nil {
		return nil, err
	}
	registry := inspector.New(cfg.Inspection())
	registry.Retain(cfg.Extensions...)
	resolver := baseline.NewResolver(root, baseline.WithSnapshotsDir(cfg.SnapshotsDir))
	ret := &app{
		config:   cfg,
		root:     root,
		logger:   logger,
		registry: registry,
		resolver: resolver,
		analyzer: analyzer.New(root, resolver, registry,
			analyzer.WithCacheCapacity(cfg.CacheCapacity),
			analyzer.WithLogger(logger)),
	}
	logger.Debug("symdiff configured", "root", root, "extensions", registry.Extensions())
	return ret, nil
}

// resolveRoot returns absolute root; without an explicit root the enclosing repository is detected
func resolveRoot(ctx context.Context, root string) (string, error) {
	if root != "" {
		return filepath.Abs(root)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	repo, err := repository.New().Detect(ctx, wd)
	if err != nil {
		return "", fmt.Errorf("failed to detect repository: %w", err)
	}
	return repo.Root, nil
}

// useBaseline parses the configured baseline and sets it on the analyzer;
// snapshot baselines take their timestamp from the sidecar
func (a *app) useBaseline(ctx context.Context) (*baseline.Baseline, error) {
	text := a.config.Baseline
	if text == "" {
		text = defaultBaseline
	}
	b, err := baseline.Parse(text)
	if err != nil {
		return nil, err
	}
	if b.Kind == baseline.KindSnapshot {
		metadata, err := a.resolver.Snapshots().Metadata(ctx, b.Reference)
		if err != nil {
			return nil, err
		}
		if metadata == nil {
			return nil, fmt.Errorf("%w: snapshot %s not found", baseline.ErrInvalidBaseline, b.Reference)
		}
		b = metadata.Baseline()
	}
	if err = a.analyzer.SetBaseline(b); err != nil {
		return nil, err
	}
	a.logger.Info("baseline set", "baseline", b.String())
	return b, nil
}
