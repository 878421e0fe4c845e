package baseline

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

const (
	snapshotFilesDir     = "files"
	snapshotMetadataFile = "metadata.json"
)

// Metadata is the snapshot sidecar
type Metadata struct {
	ID        string    `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Label     string    `json:"label,omitempty" yaml:"label,omitempty"`
	FileCount int       `json:"fileCount" yaml:"fileCount"`
}

// Baseline converts metadata into a snapshot baseline
func (m *Metadata) Baseline() *Baseline {
	return &Baseline{
		Kind:      KindSnapshot,
		Reference: m.ID,
		Timestamp: m.Timestamp,
		Label:     m.Label,
		Metadata:  map[string]string{"fileCount": fmt.Sprint(m.FileCount)},
	}
}

// SnapshotSource reads snapshot trees stored as <dir>/<id>/files with a <dir>/<id>/metadata.json sidecar
type SnapshotSource struct {
	dir string
	fs  afs.Service
}

// NewSnapshotSource creates a snapshot source rooted at dir
func NewSnapshotSource(dir string, fs afs.Service) *SnapshotSource {
	if fs == nil {
		fs = afs.New()
	}
	return &SnapshotSource{dir: dir, fs: fs}
}

// Dir returns the snapshot storage directory
func (s *SnapshotSource) Dir() string {
	return s.dir
}

// FileContent returns the snapshot copy of location, nil when absent
func (s *SnapshotSource) FileContent(ctx context.Context, b *Baseline, location string) ([]byte, error) {
	exists, err := s.FileExists(ctx, b, location)
	if err != nil || !exists {
		return nil, err
	}
	content, err := s.fs.DownloadWithURL(ctx, s.fileURL(b, location))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s file %s: %w", b.Reference, location, err)
	}
	return content, nil
}

// FileExists reports whether the snapshot holds location
func (s *SnapshotSource) FileExists(ctx context.Context, b *Baseline, location string) (bool, error) {
	if b == nil || b.Reference == "" {
		return false, nil
	}
	exists, err := s.fs.Exists(ctx, s.fileURL(b, location))
	if err != nil {
		return false, fmt.Errorf("failed to check snapshot %s file %s: %w", b.Reference, location, err)
	}
	return exists, nil
}

// ListFiles lists snapshot files relative to the snapshot tree
func (s *SnapshotSource) ListFiles(ctx context.Context, b *Baseline) ([]string, error) {
	if b == nil || b.Reference == "" {
		return nil, nil
	}
	return listTree(ctx, s.fs, url.Join(s.dir, b.Reference, snapshotFilesDir), nil)
}

// Metadata reads the sidecar of snapshot id, nil when absent
func (s *SnapshotSource) Metadata(ctx context.Context, id string) (*Metadata, error) {
	URL := url.Join(s.dir, id, snapshotMetadataFile)
	if ok, _ := s.fs.Exists(ctx, URL); !ok {
		return nil, nil
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot metadata %s: %w", id, err)
	}
	metadata := &Metadata{}
	if err := json.Unmarshal(data, metadata); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot metadata %s: %w", id, err)
	}
	if metadata.ID == "" {
		metadata.ID = id
	}
	return metadata, nil
}

// Snapshots lists snapshots that carry a sidecar, newest first
func (s *SnapshotSource) Snapshots(ctx context.Context) ([]*Metadata, error) {
	if ok, _ := s.fs.Exists(ctx, s.dir); !ok {
		return nil, nil
	}
	objects, err := s.fs.List(ctx, s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots in %s: %w", s.dir, err)
	}
	var result []*Metadata
	for i, object := range objects {
		if i == 0 || !object.IsDir() {
			continue // first entry is the listed directory
		}
		metadata, err := s.Metadata(ctx, object.Name())
		if err != nil {
			return nil, err
		}
		if metadata != nil {
			result = append(result, metadata)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].ID < result[j].ID
		}
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}

func (s *SnapshotSource) fileURL(b *Baseline, location string) string {
	return url.Join(s.dir, b.Reference, snapshotFilesDir, path.Clean(strings.TrimPrefix(location, "/")))
}
