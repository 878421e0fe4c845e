package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"github.com/viant/symdiff/analyzer"
	"github.com/viant/symdiff/baseline"
	"github.com/viant/symdiff/diff"
)

func newDiffCommand(opts *options) *cobra.Command {
	var format string
	var patch bool
	var changedOnly bool
	cmd := &cobra.Command{
		Use:   "diff [path...]",
		Short: "Diff the source tree, or the listed files, against the baseline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			anApp, err := newApp(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			b, err := anApp.useBaseline(ctx)
			if err != nil {
				return err
			}
			graphDiff, err := anApp.diff(ctx, args)
			if err != nil {
				return err
			}
			if changedOnly {
				graphDiff = changed(graphDiff)
			}
			if err = encode(cmd.OutOrStdout(), format, graphDiff); err != nil {
				return err
			}
			if patch {
				return anApp.patch(ctx, cmd.OutOrStdout(), b, graphDiff)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "output format: yaml or json")
	cmd.Flags().BoolVar(&patch, "patch", false, "append unified diffs of changed files")
	cmd.Flags().BoolVar(&changedOnly, "changed", false, "omit unchanged nodes and edges")
	return cmd
}

// diff builds a graph over paths, or over all indexable sources, and analyzes it
func (a *app) diff(ctx context.Context, paths []string) (*diff.GraphDiff, error) {
	graph, err := a.graph(ctx, paths)
	if err != nil {
		return nil, err
	}
	return a.analyzer.AnalyzeGraph(ctx, graph)
}

func (a *app) graph(ctx context.Context, paths []string) (*diff.Graph, error) {
	if len(paths) == 0 {
		sources, err := a.analyzer.Sources(ctx)
		if err != nil {
			return nil, err
		}
		paths = sources
	}
	return a.analyzer.BuildGraph(ctx, paths)
}

// patch writes unified diffs for files with changed nodes
func (a *app) patch(ctx context.Context, w io.Writer, b *baseline.Baseline, graphDiff *diff.GraphDiff) error {
	reader := analyzer.NewReader(a.root, nil)
	for _, location := range changedFiles(graphDiff) {
		before, err := a.resolver.FileContent(ctx, b, location)
		if err != nil {
			return err
		}
		after, _, err := reader.Read(ctx, location)
		if err != nil {
			return err
		}
		text, err := diff.Unified(location, before, after, 3)
		if err != nil {
			return fmt.Errorf("failed to diff %s: %w", location, err)
		}
		if _, err = io.WriteString(w, text); err != nil {
			return err
		}
	}
	return nil
}

func changedFiles(graphDiff *diff.GraphDiff) []string {
	files := map[string]bool{}
	for _, node := range graphDiff.Nodes {
		if node.Status != diff.StatusUnchanged && node.FilePath != "" {
			files[node.FilePath] = true
		}
	}
	result := make([]string, 0, len(files))
	for location := range files {
		result = append(result, location)
	}
	sort.Strings(result)
	return result
}

// changed returns a copy of graphDiff without unchanged nodes and edges
func changed(graphDiff *diff.GraphDiff) *diff.GraphDiff {
	result := *graphDiff
	result.Nodes = nil
	for _, node := range graphDiff.Nodes {
		if node.Status != diff.StatusUnchanged {
			result.Nodes = append(result.Nodes, node)
		}
	}
	result.Edges = nil
	for _, edge := range graphDiff.Edges {
		if edge.Status != diff.StatusUnchanged {
			result.Edges = append(result.Edges, edge)
		}
	}
	return &result
}
