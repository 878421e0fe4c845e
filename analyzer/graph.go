package analyzer

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/viant/symdiff/diff"
	"github.com/viant/symdiff/severity"
)

// AnalyzeGraph diffs every file referenced by the graph, detects deleted baseline files,
// derives edge statuses and publishes a new snapshot
func (a *Analyzer) AnalyzeGraph(ctx context.Context, graph *diff.Graph) (*diff.GraphDiff, error) {
	return a.analyzeGraph(ctx, graph, nil)
}

// Refresh invalidates paths and recomputes the whole graph diff
func (a *Analyzer) Refresh(ctx context.Context, paths []string, graph *diff.Graph) (*diff.GraphDiff, error) {
	for _, location := range paths {
		a.Invalidate(location)
	}
	return a.analyzeGraph(ctx, graph, paths)
}

func (a *Analyzer) analyzeGraph(ctx context.Context, graph *diff.Graph, refreshed []string) (*diff.GraphDiff, error) {
	b := a.cache.Baseline()
	if b == nil {
		return nil, ErrNoBaseline
	}
	if graph == nil {
		graph = &diff.Graph{}
	}
	files := graph.Files()
	fileDiffs := make(map[string]*diff.FileDiff, len(files))
	for _, location := range files {
		fileDiff, err := a.analyzeFile(ctx, location)
		if err != nil {
			return nil, err
		}
		fileDiffs[location] = fileDiff
	}
	for _, location := range a.deletedFiles(ctx, fileDiffs) {
		fileDiff, err := a.analyzeFile(ctx, location)
		if err != nil {
			return nil, err
		}
		fileDiffs[location] = fileDiff
	}

	result := &diff.GraphDiff{
		ID:        uuid.NewString(),
		Baseline:  b,
		CreatedAt: a.now(),
	}
	statusByNodeID := make(map[string]diff.Status, len(graph.Nodes))
	bound := map[string]bool{}
	for _, node := range graph.Nodes {
		nodeDiff := bindNode(node, fileDiffs[node.FilePath])
		bound[nodeDiff.Key()] = true
		statusByNodeID[node.ID] = nodeDiff.Status
		result.Nodes = append(result.Nodes, nodeDiff)
	}
	for _, location := range sortedKeys(fileDiffs) {
		fileDiff := fileDiffs[location]
		result.Stats.LinesAdded += fileDiff.LinesAdded
		result.Stats.LinesRemoved += fileDiff.LinesRemoved
		for _, nodeDiff := range fileDiff.Nodes {
			switch nodeDiff.Status {
			case diff.StatusAdded:
				result.AddedNodeIDs = append(result.AddedNodeIDs, nodeDiff.Key())
			case diff.StatusRemoved:
				result.RemovedNodeIDs = append(result.RemovedNodeIDs, nodeDiff.Key())
			}
			if !bound[nodeDiff.Key()] {
				result.Nodes = append(result.Nodes, nodeDiff.Clone())
			}
		}
	}
	diff.SortNodes(result.Nodes)
	sort.Strings(result.AddedNodeIDs)
	sort.Strings(result.RemovedNodeIDs)
	result.Edges = diff.DeriveEdges(graph.Edges, statusByNodeID)

	stats := diff.Summarize(result.Nodes, result.Edges)
	stats.Files = len(fileDiffs)
	stats.LinesAdded, stats.LinesRemoved = result.Stats.LinesAdded, result.Stats.LinesRemoved
	result.Stats = stats

	previous := a.latest.Swap(result)
	a.publish(ctx, &Event{AffectedNodeIDs: affectedNodeIDs(previous, result, refreshed), Diff: result})
	return result, nil
}

// deletedFiles returns supported baseline files absent from the graph and from the current tree
func (a *Analyzer) deletedFiles(ctx context.Context, known map[string]*diff.FileDiff) []string {
	b := a.cache.Baseline()
	if b.IsWorkingTree() {
		return nil
	}
	var result []string
	for _, location := range a.cache.BaselineFiles(ctx) {
		if _, ok := known[location]; ok || !a.registry.Indexable(location) {
			continue
		}
		_, present, err := a.reader.Read(ctx, location)
		if err != nil {
			a.logger.Warn("current content unavailable", "path", location, "error", err)
			continue
		}
		if !present {
			result = append(result, location)
		}
	}
	return result
}

// bindNode resolves a graph node against the diff of its file; untouched nodes are reported unchanged
func bindNode(node *diff.Node, fileDiff *diff.FileDiff) *diff.NodeDiff {
	id := node.SymbolID()
	unchanged := &diff.NodeDiff{
		ID:       id,
		NodeID:   node.ID,
		Name:     node.Name,
		Kind:     node.Kind,
		FilePath: node.FilePath,
		Status:   diff.StatusUnchanged,
		Severity: severity.None,
	}
	if fileDiff == nil {
		return unchanged
	}
	if node.Parent == "" {
		for _, nodeDiff := range fileDiff.Nodes {
			if nodeDiff.ID == id {
				bound := nodeDiff.Clone()
				bound.NodeID = node.ID
				return bound
			}
		}
		return unchanged
	}
	owner := topLevelOwner(fileDiff, node.Parent)
	if owner == nil {
		return unchanged
	}
	if owner.Name == node.Parent {
		if member := owner.Member(node.Name); member != nil {
			memberClone := *member
			unchanged.Status = member.Status
			unchanged.Severity = member.Severity
			unchanged.Exported = owner.Exported
			unchanged.MemberDiffs = []*diff.MemberDiff{&memberClone}
			return unchanged
		}
	}
	// deeper nesting follows the presence of its top-level owner
	if owner.Status == diff.StatusAdded || owner.Status == diff.StatusRemoved {
		unchanged.Status = owner.Status
		unchanged.Severity = owner.Severity
		unchanged.MemberDiffs = []*diff.MemberDiff{{
			Name:     node.Name,
			Status:   owner.Status,
			Severity: owner.Severity,
			Reason:   severity.ReasonPresence,
		}}
	}
	return unchanged
}

func topLevelOwner(fileDiff *diff.FileDiff, parent string) *diff.NodeDiff {
	name := parent
	if index := strings.Index(parent, "."); index != -1 {
		name = parent[:index]
	}
	for _, nodeDiff := range fileDiff.Nodes {
		if nodeDiff.Name == name {
			return nodeDiff
		}
	}
	return nil
}

// affectedNodeIDs returns keys of nodes in refreshed files plus nodes whose status or severity changed
func affectedNodeIDs(previous, current *diff.GraphDiff, refreshed []string) []string {
	files := make(map[string]bool, len(refreshed))
	for _, location := range refreshed {
		files[location] = true
	}
	before := map[string]*diff.NodeDiff{}
	if previous != nil {
		for _, node := range previous.Nodes {
			before[node.Key()] = node
		}
	}
	affected := map[string]bool{}
	for _, node := range current.Nodes {
		key := node.Key()
		prior, ok := before[key]
		delete(before, key)
		switch {
		case files[node.FilePath]:
			affected[key] = true
		case !ok && node.Status != diff.StatusUnchanged:
			affected[key] = true
		case ok && (prior.Status != node.Status || prior.Severity != node.Severity):
			affected[key] = true
		}
	}
	for key, prior := range before {
		if prior.Status != diff.StatusUnchanged || files[prior.FilePath] {
			affected[key] = true
		}
	}
	result := make([]string, 0, len(affected))
	for key := range affected {
		result = append(result, key)
	}
	sort.Strings(result)
	return result
}

func (a *Analyzer) publish(ctx context.Context, event *Event) {
	histogram := make(map[string]int, len(event.Diff.Stats.Severity))
	for level, count := range event.Diff.Stats.Severity {
		if level > severity.None {
			histogram[level.String()] = count
		}
	}
	recordAnalyzeGraph(ctx, histogram)
	for _, subscriber := range a.subscribers {
		subscriber(ctx, event)
	}
}

func sortedKeys(fileDiffs map[string]*diff.FileDiff) []string {
	result := make([]string, 0, len(fileDiffs))
	for key := range fileDiffs {
		result = append(result, key)
	}
	sort.Strings(result)
	return result
}
