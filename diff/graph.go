package diff

import "github.com/viant/symdiff/severity"

// DeriveEdges returns edge diffs with status taken from endpoint node statuses; unknown endpoints are unchanged
func DeriveEdges(edges []*Edge, statusByNodeID map[string]Status) []*EdgeDiff {
	result := make([]*EdgeDiff, 0, len(edges))
	for _, edge := range edges {
		source := endpointStatus(statusByNodeID, edge.Source)
		target := endpointStatus(statusByNodeID, edge.Target)
		result = append(result, &EdgeDiff{
			Edge:         edge,
			Status:       DeriveEdgeStatus(source, target),
			SourceStatus: source,
			TargetStatus: target,
		})
	}
	return result
}

func endpointStatus(statusByNodeID map[string]Status, id string) Status {
	if status, ok := statusByNodeID[id]; ok {
		return status
	}
	return StatusUnchanged
}

// Summarize counts nodes and edges by status and builds the node severity histogram
func Summarize(nodes []*NodeDiff, edges []*EdgeDiff) Stats {
	stats := Stats{Severity: make(map[severity.Level]int, len(severity.Levels()))}
	for _, level := range severity.Levels() {
		stats.Severity[level] = 0
	}
	for _, node := range nodes {
		stats.Nodes.Add(node.Status)
		stats.Severity[node.Severity]++
	}
	for _, edge := range edges {
		stats.Edges.Add(edge.Status)
	}
	return stats
}
