package analyzer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/symdiff/analyzer"
	"github.com/viant/symdiff/baseline"
	"github.com/viant/symdiff/diff"
	"github.com/viant/symdiff/inspector/symbol"
	"github.com/viant/symdiff/severity"
)

const widgetBefore = `export class Widget {
  render() {
    return 1
  }
}

export function helper() {
  return 0
}
`

const widgetAfter = `import { fmt } from './util'

export class Widget {
  render() {
    return 2
  }

  mount() {
    return fmt()
  }
}

export function helper() {
  return 0
}
`

func TestAnalyzer_AnalyzeGraph(t *testing.T) {
	ctx := context.Background()
	tree := &memoryTree{
		baseline: map[string]string{
			"web/widget.js": widgetBefore,
			"web/old.js":    "export function legacy() {}\n",
		},
		current: map[string]string{
			"web/widget.js": widgetAfter,
			"web/util.js":   "export function fmt() {\n  return ''\n}\n",
		},
	}
	var events []*analyzer.Event
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	srv := newAnalyzer(tree,
		analyzer.WithClock(func() time.Time { return createdAt }),
		analyzer.WithSubscriber(func(ctx context.Context, event *analyzer.Event) {
			events = append(events, event)
		}))
	require.NoError(t, srv.SetBaseline(baseline.New(baseline.KindBranch, "main")))

	graph, err := srv.BuildGraph(ctx, []string{"web/widget.js", "web/util.js", "web/gone.js"})
	require.NoError(t, err)
	assert.Len(t, graph.Nodes, 7)
	var importEdges []*diff.Edge
	for _, edge := range graph.Edges {
		if edge.Kind == analyzer.EdgeImports {
			importEdges = append(importEdges, edge)
		}
	}
	require.Len(t, importEdges, 1)
	assert.Equal(t, "web/widget.js", importEdges[0].Source)
	assert.Equal(t, "web/util.js", importEdges[0].Target)

	graphDiff, err := srv.AnalyzeGraph(ctx, graph)
	require.NoError(t, err)
	assert.NotEmpty(t, graphDiff.ID)
	assert.Equal(t, createdAt, graphDiff.CreatedAt)
	assert.Same(t, graphDiff, srv.Latest())

	status := map[string]diff.Status{}
	levels := map[string]severity.Level{}
	for _, node := range graphDiff.Nodes {
		status[node.Key()] = node.Status
		levels[node.Key()] = node.Severity
		assert.Equal(t, node.Status == diff.StatusUnchanged, !node.HasChanges(), node.Key())
	}
	assert.Equal(t, map[string]diff.Status{
		"web/widget.js#namespace:web/widget.js": diff.StatusUnchanged,
		"web/widget.js#class:Widget":            diff.StatusModified,
		"web/widget.js#method:Widget.render":    diff.StatusModified,
		"web/widget.js#method:Widget.mount":     diff.StatusAdded,
		"web/widget.js#function:helper":         diff.StatusModified,
		"web/util.js#namespace:web/util.js":     diff.StatusUnchanged,
		"web/util.js#function:fmt":              diff.StatusAdded,
		"web/old.js#function:legacy":            diff.StatusRemoved,
	}, status)
	assert.Equal(t, severity.High, levels["web/widget.js#class:Widget"])
	assert.Equal(t, severity.Medium, levels["web/widget.js#method:Widget.render"])
	assert.Equal(t, severity.High, levels["web/widget.js#function:helper"], "added import forces high")

	assert.Equal(t, []string{"web/util.js#function:fmt"}, graphDiff.AddedNodeIDs)
	assert.Equal(t, []string{"web/old.js#function:legacy"}, graphDiff.RemovedNodeIDs)
	assert.Equal(t, diff.StatusCounts{Added: 2, Removed: 1, Modified: 3, Unchanged: 2}, graphDiff.Stats.Nodes)
	assert.Equal(t, diff.StatusCounts{Added: 2, Modified: 3, Unchanged: 1}, graphDiff.Stats.Edges)
	assert.Equal(t, 3, graphDiff.Stats.Files)
	assert.Equal(t, 5, graphDiff.Stats.Severity[severity.High])
	assert.Positive(t, graphDiff.Stats.LinesAdded)

	for _, edge := range graphDiff.Edges {
		assert.Equal(t, diff.DeriveEdgeStatus(edge.SourceStatus, edge.TargetStatus), edge.Status)
	}

	require.Len(t, events, 1)
	assert.Same(t, graphDiff, events[0].Diff)
	assert.Equal(t, []string{
		"web/old.js#function:legacy",
		"web/util.js#function:fmt",
		"web/widget.js#class:Widget",
		"web/widget.js#function:helper",
		"web/widget.js#method:Widget.mount",
		"web/widget.js#method:Widget.render",
	}, events[0].AffectedNodeIDs)

	tree.current["web/util.js"] = "export function fmt() {\n  return '-'\n}\n"
	refreshed, err := srv.Refresh(ctx, []string{"web/util.js"}, graph)
	require.NoError(t, err)
	assert.NotEqual(t, graphDiff.ID, refreshed.ID)
	assert.Same(t, refreshed, srv.Latest())
	require.Len(t, events, 2)
	assert.Equal(t, []string{"web/util.js#function:fmt", "web/util.js#namespace:web/util.js"}, events[1].AffectedNodeIDs)
	assert.Equal(t, diff.StatusAdded, graphDiff.Node("web/util.js#function:fmt").Status, "published snapshot is not mutated")
}

func TestAnalyzer_AnalyzeGraph_WorkingTree(t *testing.T) {
	ctx := context.Background()
	tree := &memoryTree{
		baseline: map[string]string{"a.go": "package a\n"},
		current:  map[string]string{"b.go": "package b\n\nfunc B() {}\n"},
	}
	srv := newAnalyzer(tree)
	require.NoError(t, srv.SetBaseline(baseline.WorkingTree()))
	graphDiff, err := srv.AnalyzeGraph(ctx, &diff.Graph{
		Nodes: []*diff.Node{{ID: "b", Kind: symbol.KindFunction, Name: "B", FilePath: "b.go"}},
	})
	require.NoError(t, err)
	require.Len(t, graphDiff.Nodes, 1)
	assert.Equal(t, diff.StatusUnchanged, graphDiff.Nodes[0].Status)
	assert.Equal(t, "b", graphDiff.Nodes[0].NodeID)
	assert.Empty(t, graphDiff.RemovedNodeIDs)
}

func TestAnalyzer_BuildGraph_Go(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	files := map[string]string{
		"go.mod":                    "module example.com/app\n\ngo 1.22\n",
		"main.go":                   "package main\n\nimport \"example.com/app/pkg/util\"\n\nfunc main() { util.Run() }\n",
		"pkg/util/util.go":          "package util\n\ntype Runner struct{}\n\nfunc (r *Runner) Run() {}\n\nfunc Run() {}\n",
		"pkg/util/util_test.go":     "package util\n",
		"node_modules/dep/index.js": "export const x = 1\n",
		"README.md":                 "# app\n",
	}
	for name, content := range files {
		location := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
	srv := analyzer.New(root, baseline.WorkingTreeSource{}, nil)
	sources, err := srv.Sources(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go", "pkg/util/util.go", "pkg/util/util_test.go"}, sources)

	graph, err := srv.BuildGraph(ctx, sources)
	require.NoError(t, err)
	edges := map[string]string{}
	for _, edge := range graph.Edges {
		edges[edge.Source+" "+edge.Target] = edge.Kind
	}
	assert.Equal(t, analyzer.EdgeImports, edges["main.go pkg/util/util.go"])
	assert.Equal(t, analyzer.EdgeImports, edges["main.go pkg/util/util_test.go"])
	assert.Equal(t, analyzer.EdgeContains, edges["pkg/util/util.go#class:Runner pkg/util/util.go#method:Runner.Run"])
	assert.Equal(t, analyzer.EdgeContains, edges["pkg/util/util.go pkg/util/util.go#function:Run"])
}
