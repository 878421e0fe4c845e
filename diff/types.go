package diff

import (
	"time"

	"github.com/viant/symdiff/baseline"
	"github.com/viant/symdiff/inspector/symbol"
	"github.com/viant/symdiff/severity"
)

// Status represents change status of a node, member or edge
type Status string

const (
	StatusUnchanged Status = "unchanged"
	StatusAdded     Status = "added"
	StatusRemoved   Status = "removed"
	StatusModified  Status = "modified"
)

func (s Status) order() int {
	switch s {
	case StatusAdded:
		return 0
	case StatusRemoved:
		return 1
	case StatusModified:
		return 2
	}
	return 3
}

// NodeDiff represents change of one symbol between baseline and current state
type NodeDiff struct {
	ID                string             `json:"id" yaml:"id"`
	NodeID            string             `json:"nodeId,omitempty" yaml:"nodeId,omitempty"`
	Name              string             `json:"name" yaml:"name"`
	Kind              symbol.Kind        `json:"kind" yaml:"kind"`
	FilePath          string             `json:"filePath,omitempty" yaml:"filePath,omitempty"`
	Status            Status             `json:"status" yaml:"status"`
	Severity          severity.Level     `json:"severity" yaml:"severity"`
	Exported          bool               `json:"exported" yaml:"exported"`
	MemberDiffs       []*MemberDiff      `json:"memberDiffs,omitempty" yaml:"memberDiffs,omitempty"`
	DependencyChanges DependencyChanges  `json:"dependencyChanges" yaml:"dependencyChanges,omitempty"`
	InheritanceChange *InheritanceChange `json:"inheritanceChange,omitempty" yaml:"inheritanceChange,omitempty"`
}

// NodeKey returns file qualified id
func NodeKey(filePath, id string) string {
	return filePath + "#" + id
}

// Key returns file qualified node id
func (d *NodeDiff) Key() string {
	return NodeKey(d.FilePath, d.ID)
}

// HasChanges reports whether any member, dependency or inheritance change is recorded
func (d *NodeDiff) HasChanges() bool {
	return len(d.MemberDiffs) > 0 || !d.DependencyChanges.IsEmpty() || d.InheritanceChange != nil
}

// Member returns member diff by name
func (d *NodeDiff) Member(name string) *MemberDiff {
	for _, member := range d.MemberDiffs {
		if member.Name == name {
			return member
		}
	}
	return nil
}

// Clone returns a deep copy
func (d *NodeDiff) Clone() *NodeDiff {
	clone := *d
	if d.MemberDiffs != nil {
		clone.MemberDiffs = make([]*MemberDiff, len(d.MemberDiffs))
		for i, member := range d.MemberDiffs {
			memberClone := *member
			clone.MemberDiffs[i] = &memberClone
		}
	}
	clone.DependencyChanges = DependencyChanges{
		Added:   cloneStrings(d.DependencyChanges.Added),
		Removed: cloneStrings(d.DependencyChanges.Removed),
	}
	if d.InheritanceChange != nil {
		inheritance := *d.InheritanceChange
		inheritance.BeforeImplements = cloneStrings(inheritance.BeforeImplements)
		inheritance.AfterImplements = cloneStrings(inheritance.AfterImplements)
		clone.InheritanceChange = &inheritance
	}
	return &clone
}

func cloneStrings(items []string) []string {
	if items == nil {
		return nil
	}
	return append(make([]string, 0, len(items)), items...)
}

// MemberDiff represents change of a method, property, constructor or accessor
type MemberDiff struct {
	Name             string            `json:"name" yaml:"name"`
	Kind             symbol.MemberKind `json:"kind" yaml:"kind"`
	Status           Status            `json:"status" yaml:"status"`
	Severity         severity.Level    `json:"severity" yaml:"severity"`
	Reason           severity.Reason   `json:"reason,omitempty" yaml:"reason,omitempty"`
	SignatureChanged bool              `json:"signatureChanged,omitempty" yaml:"signatureChanged,omitempty"`
	BeforeSignature  string            `json:"beforeSignature,omitempty" yaml:"beforeSignature,omitempty"`
	AfterSignature   string            `json:"afterSignature,omitempty" yaml:"afterSignature,omitempty"`
}

// DependencyChanges represents added and removed import paths
type DependencyChanges struct {
	Added   []string `json:"added" yaml:"added,omitempty"`
	Removed []string `json:"removed" yaml:"removed,omitempty"`
}

// IsEmpty returns true if no import was added or removed
func (c DependencyChanges) IsEmpty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0
}

// InheritanceChange represents changed extends target or implemented types
type InheritanceChange struct {
	BeforeExtends    string   `json:"beforeExtends,omitempty" yaml:"beforeExtends,omitempty"`
	AfterExtends     string   `json:"afterExtends,omitempty" yaml:"afterExtends,omitempty"`
	BeforeImplements []string `json:"beforeImplements,omitempty" yaml:"beforeImplements,omitempty"`
	AfterImplements  []string `json:"afterImplements,omitempty" yaml:"afterImplements,omitempty"`
}

// FileDiff represents node diffs of one file
type FileDiff struct {
	Path         string      `json:"path" yaml:"path"`
	Nodes        []*NodeDiff `json:"nodes" yaml:"nodes"`
	LinesAdded   int         `json:"linesAdded" yaml:"linesAdded"`
	LinesRemoved int         `json:"linesRemoved" yaml:"linesRemoved"`
}

// Clone returns a deep copy of the file diff and its nodes
func (f *FileDiff) Clone() *FileDiff {
	clone := *f
	if f.Nodes != nil {
		clone.Nodes = make([]*NodeDiff, len(f.Nodes))
		for i, node := range f.Nodes {
			clone.Nodes[i] = node.Clone()
		}
	}
	return &clone
}

// Graph is a dependency graph supplied for diffing
type Graph struct {
	Nodes []*Node `json:"nodes" yaml:"nodes"`
	Edges []*Edge `json:"edges" yaml:"edges"`
}

// Node is a graph vertex bound to a symbol of a file
type Node struct {
	ID       string      `json:"id" yaml:"id"`
	Kind     symbol.Kind `json:"kind" yaml:"kind"`
	Name     string      `json:"name" yaml:"name"`
	Parent   string      `json:"parent,omitempty" yaml:"parent,omitempty"`
	FilePath string      `json:"filePath" yaml:"filePath"`
}

// SymbolID returns kind:qualified name, matching NodeDiff.ID
func (n *Node) SymbolID() string {
	if n.Parent == "" {
		return string(n.Kind) + ":" + n.Name
	}
	return string(n.Kind) + ":" + n.Parent + "." + n.Name
}

// Edge is a graph relationship, e.g. imports, calls or contains
type Edge struct {
	ID     string `json:"id" yaml:"id"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Kind   string `json:"kind" yaml:"kind"`
}

// Files returns sorted unique file paths of graph nodes
func (g *Graph) Files() []string {
	if g == nil {
		return nil
	}
	seen := map[string]bool{}
	var result []string
	for _, node := range g.Nodes {
		if node.FilePath == "" || seen[node.FilePath] {
			continue
		}
		seen[node.FilePath] = true
		result = append(result, node.FilePath)
	}
	sortStrings(result)
	return result
}

// EdgeDiff represents a graph edge with status derived from its endpoints
type EdgeDiff struct {
	Edge         *Edge  `json:"edge" yaml:"edge"`
	Status       Status `json:"status" yaml:"status"`
	SourceStatus Status `json:"sourceStatus" yaml:"sourceStatus"`
	TargetStatus Status `json:"targetStatus" yaml:"targetStatus"`
}

// StatusCounts counts items by status
type StatusCounts struct {
	Added     int `json:"added" yaml:"added"`
	Removed   int `json:"removed" yaml:"removed"`
	Modified  int `json:"modified" yaml:"modified"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
}

// Add increments the status counter
func (c *StatusCounts) Add(status Status) {
	switch status {
	case StatusAdded:
		c.Added++
	case StatusRemoved:
		c.Removed++
	case StatusModified:
		c.Modified++
	default:
		c.Unchanged++
	}
}

// Changed returns the number of non unchanged items
func (c StatusCounts) Changed() int {
	return c.Added + c.Removed + c.Modified
}

// Stats represents aggregate statistics of a graph diff
type Stats struct {
	Nodes        StatusCounts           `json:"nodes" yaml:"nodes"`
	Edges        StatusCounts           `json:"edges" yaml:"edges"`
	Severity     map[severity.Level]int `json:"severity" yaml:"severity"`
	Files        int                    `json:"files" yaml:"files"`
	LinesAdded   int                    `json:"linesAdded" yaml:"linesAdded"`
	LinesRemoved int                    `json:"linesRemoved" yaml:"linesRemoved"`
}

// GraphDiff is one immutable snapshot of node and edge diffs for a baseline
type GraphDiff struct {
	ID             string             `json:"id" yaml:"id"`
	Baseline       *baseline.Baseline `json:"baseline" yaml:"baseline"`
	CreatedAt      time.Time          `json:"createdAt" yaml:"createdAt"`
	Nodes          []*NodeDiff        `json:"nodes" yaml:"nodes"`
	Edges          []*EdgeDiff        `json:"edges" yaml:"edges"`
	AddedNodeIDs   []string           `json:"addedNodeIds" yaml:"addedNodeIds"`
	RemovedNodeIDs []string           `json:"removedNodeIds" yaml:"removedNodeIds"`
	Stats          Stats              `json:"stats" yaml:"stats"`
}

// Node returns node diff by file qualified key
func (g *GraphDiff) Node(key string) *NodeDiff {
	if g == nil {
		return nil
	}
	for _, node := range g.Nodes {
		if node.Key() == key {
			return node
		}
	}
	return nil
}
