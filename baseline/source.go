package baseline

import (
	"context"
	"fmt"
	"path/filepath"
)

// Source resolves file content and listings at a baseline.
// Implementations report absence as nil, false or empty results, never as an error.
type Source interface {
	FileContent(ctx context.Context, b *Baseline, path string) ([]byte, error)
	FileExists(ctx context.Context, b *Baseline, path string) (bool, error)
	ListFiles(ctx context.Context, b *Baseline) ([]string, error)
}

// Resolver dispatches to a source registered for the baseline kind
type Resolver struct {
	handlers map[Kind]Source
}

// NewResolver creates a resolver with git, snapshot, worktree and working tree sources for root
func NewResolver(root string, opts ...Option) *Resolver {
	options := newOptions(opts)
	snapshotsDir := options.snapshotsDir
	if !filepath.IsAbs(snapshotsDir) {
		snapshotsDir = filepath.Join(root, snapshotsDir)
	}
	git := NewGitSource(root)
	resolver := &Resolver{handlers: map[Kind]Source{}}
	resolver.Register(KindCommit, git)
	resolver.Register(KindBranch, git)
	resolver.Register(KindSnapshot, NewSnapshotSource(snapshotsDir, options.fs))
	resolver.Register(KindWorktree, NewWorktreeSource(root, options.fs))
	resolver.Register(KindWorkingTree, WorkingTreeSource{})
	return resolver
}

// Register sets the source handling kind
func (r *Resolver) Register(kind Kind, source Source) {
	if r.handlers == nil {
		r.handlers = map[Kind]Source{}
	}
	r.handlers[kind] = source
}

// Source returns the source handling kind
func (r *Resolver) Source(kind Kind) (Source, error) {
	source, ok := r.handlers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
	return source, nil
}

// Snapshots returns the registered snapshot source, nil when replaced by a custom one
func (r *Resolver) Snapshots() *SnapshotSource {
	snapshots, _ := r.handlers[KindSnapshot].(*SnapshotSource)
	return snapshots
}

// FileContent returns baseline content of path
func (r *Resolver) FileContent(ctx context.Context, b *Baseline, path string) ([]byte, error) {
	source, err := r.source(b)
	if err != nil {
		return nil, err
	}
	return source.FileContent(ctx, b, path)
}

// FileExists reports whether path exists at baseline
func (r *Resolver) FileExists(ctx context.Context, b *Baseline, path string) (bool, error) {
	source, err := r.source(b)
	if err != nil {
		return false, err
	}
	return source.FileExists(ctx, b, path)
}

// ListFiles lists baseline files
func (r *Resolver) ListFiles(ctx context.Context, b *Baseline) ([]string, error) {
	source, err := r.source(b)
	if err != nil {
		return nil, err
	}
	return source.ListFiles(ctx, b)
}

func (r *Resolver) source(b *Baseline) (Source, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil baseline", ErrInvalidBaseline)
	}
	return r.Source(b.Kind)
}

// WorkingTreeSource is the no comparison sentinel: everything is absent
type WorkingTreeSource struct{}

// FileContent always reports absence
func (WorkingTreeSource) FileContent(context.Context, *Baseline, string) ([]byte, error) {
	return nil, nil
}

// FileExists always reports absence
func (WorkingTreeSource) FileExists(context.Context, *Baseline, string) (bool, error) {
	return false, nil
}

// ListFiles always returns an empty listing
func (WorkingTreeSource) ListFiles(context.Context, *Baseline) ([]string, error) {
	return nil, nil
}
