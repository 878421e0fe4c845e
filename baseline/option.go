package baseline

import "github.com/viant/afs"

// DefaultSnapshotsDir is resolved relative to the repository root
const DefaultSnapshotsDir = ".symdiff/snapshots"

type options struct {
	snapshotsDir string
	fs           afs.Service
}

// Option configures a resolver
type Option func(*options)

// WithSnapshotsDir sets the snapshot storage directory
func WithSnapshotsDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.snapshotsDir = dir
		}
	}
}

// WithFS sets the storage service used by snapshot and worktree sources
func WithFS(fs afs.Service) Option {
	return func(o *options) {
		if fs != nil {
			o.fs = fs
		}
	}
}

func newOptions(opts []Option) *options {
	result := &options{snapshotsDir: DefaultSnapshotsDir}
	for _, opt := range opts {
		opt(result)
	}
	if result.fs == nil {
		result.fs = afs.New()
	}
	return result
}
