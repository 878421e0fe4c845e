package baseline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/viant/symdiff/digest"
)

// Kind identifies a baseline variant
type Kind string

const (
	KindCommit      Kind = "commit"
	KindBranch      Kind = "branch"
	KindSnapshot    Kind = "snapshot"
	KindWorktree    Kind = "worktree"
	KindWorkingTree Kind = "working-tree"
)

var (
	// ErrUnsupportedKind is returned when no source handles a baseline kind
	ErrUnsupportedKind = errors.New("unsupported baseline kind")
	// ErrInvalidBaseline is returned for malformed baseline text
	ErrInvalidBaseline = errors.New("invalid baseline")
)

// Kinds returns all known kinds
func Kinds() []Kind {
	return []Kind{KindCommit, KindBranch, KindSnapshot, KindWorktree, KindWorkingTree}
}

// Baseline is the reference point current source is compared against; treat it as immutable
type Baseline struct {
	Kind      Kind              `json:"kind" yaml:"kind"`
	Reference string            `json:"reference,omitempty" yaml:"reference,omitempty"`
	Timestamp time.Time         `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Label     string            `json:"label,omitempty" yaml:"label,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// New creates a baseline
func New(kind Kind, reference string) *Baseline {
	return &Baseline{Kind: kind, Reference: reference}
}

// WorkingTree returns the no comparison baseline
func WorkingTree() *Baseline {
	return &Baseline{Kind: KindWorkingTree}
}

// Parse parses kind:reference text, e.g. commit:HEAD, branch:main, snapshot:2024-01-01, worktree:../app-main
func Parse(text string) (*Baseline, error) {
	text = strings.TrimSpace(text)
	if text == string(KindWorkingTree) {
		return WorkingTree(), nil
	}
	kind, reference, ok := strings.Cut(text, ":")
	if !ok || reference == "" {
		return nil, fmt.Errorf("%w: %q, expected kind:reference", ErrInvalidBaseline, text)
	}
	switch Kind(kind) {
	case KindCommit, KindBranch, KindSnapshot, KindWorktree:
		return New(Kind(kind), reference), nil
	case KindWorkingTree:
		return WorkingTree(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
}

// Hash returns the cache validity digest of kind, reference and timestamp
func (b *Baseline) Hash() string {
	if b == nil {
		return ""
	}
	return digest.Baseline(string(b.Kind), b.Reference, b.Timestamp)
}

// IsWorkingTree reports whether the baseline disables comparison
func (b *Baseline) IsWorkingTree() bool {
	return b != nil && b.Kind == KindWorkingTree
}

func (b *Baseline) String() string {
	if b == nil {
		return "<none>"
	}
	if b.Reference == "" {
		return string(b.Kind)
	}
	return string(b.Kind) + ":" + b.Reference
}
