package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/symdiff/diff"
	"github.com/viant/symdiff/severity"
)

func TestDeriveEdges(t *testing.T) {
	edges := []*diff.Edge{
		{ID: "e1", Source: "a", Target: "b", Kind: "calls"},
		{ID: "e2", Source: "b", Target: "c", Kind: "calls"},
		{ID: "e3", Source: "c", Target: "x", Kind: "imports"},
	}
	statuses := map[string]diff.Status{"a": diff.StatusAdded, "b": diff.StatusModified, "c": diff.StatusUnchanged}
	edgeDiffs := diff.DeriveEdges(edges, statuses)
	assert.Equal(t, diff.StatusAdded, edgeDiffs[0].Status)
	assert.Equal(t, diff.StatusModified, edgeDiffs[1].Status)
	assert.Equal(t, diff.StatusUnchanged, edgeDiffs[2].Status)
	assert.Equal(t, diff.StatusUnchanged, edgeDiffs[2].TargetStatus)

	nodes := []*diff.NodeDiff{
		{ID: "class:a", Status: diff.StatusAdded, Severity: severity.High},
		{ID: "class:b", Status: diff.StatusModified, Severity: severity.Low},
		{ID: "class:c", Status: diff.StatusUnchanged},
	}
	stats := diff.Summarize(nodes, edgeDiffs)
	assert.Equal(t, diff.StatusCounts{Added: 1, Modified: 1, Unchanged: 1}, stats.Nodes)
	assert.Equal(t, 2, stats.Edges.Changed())
	assert.Equal(t, map[severity.Level]int{severity.None: 1, severity.Low: 1, severity.Medium: 0, severity.High: 1}, stats.Severity)
}

func TestNode_SymbolID(t *testing.T) {
	assert.Equal(t, "class:Widget", (&diff.Node{Kind: "class", Name: "Widget"}).SymbolID())
	assert.Equal(t, "method:Widget.render", (&diff.Node{Kind: "method", Name: "render", Parent: "Widget"}).SymbolID())
	graph := &diff.Graph{Nodes: []*diff.Node{{FilePath: "b.js"}, {FilePath: "a.js"}, {FilePath: "b.js"}}}
	assert.Equal(t, []string{"a.js", "b.js"}, graph.Files())
}
