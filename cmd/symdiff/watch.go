package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/viant/symdiff/analyzer"
	"github.com/viant/symdiff/watcher"
)

func newWatchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the source tree and log affected nodes after every change batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			anApp, err := newApp(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if _, err = anApp.useBaseline(ctx); err != nil {
				return err
			}
			return anApp.watch(ctx)
		},
	}
}

func (a *app) watch(ctx context.Context) error {
	a.analyzer.Subscribe(func(ctx context.Context, event *analyzer.Event) {
		stats := event.Diff.Stats
		a.logger.Info("graph diff updated",
			"id", event.Diff.ID,
			"affected", len(event.AffectedNodeIDs),
			"added", stats.Nodes.Added,
			"removed", stats.Nodes.Removed,
			"modified", stats.Nodes.Modified)
		for _, id := range event.AffectedNodeIDs {
			if node := event.Diff.Node(id); node != nil {
				a.logger.Info("node", "id", id, "status", node.Status, "severity", node.Severity.String())
			}
		}
	})
	if _, err := a.diff(ctx, nil); err != nil {
		return err
	}
	aWatcher, err := watcher.New(a.root,
		watcher.WithDebounce(a.config.Debounce),
		watcher.WithLogger(a.logger),
		watcher.WithFilter(a.registry.Indexable))
	if err != nil {
		return err
	}
	a.logger.Info("watching", "root", a.root)
	return aWatcher.Run(ctx, func(ctx context.Context, paths []string) {
		graph, err := a.graph(ctx, nil)
		if err != nil {
			a.logger.Error("failed to build graph", "error", err)
			return
		}
		if _, err = a.analyzer.Refresh(ctx, paths, graph); err != nil {
			a.logger.Error("failed to refresh", "paths", paths, "error", err)
		}
	})
}
