package analyzer

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// Reader reads current file content; absence is reported as false, not an error
type Reader interface {
	Read(ctx context.Context, location string) ([]byte, bool, error)
}

// fsReader reads files relative to a root through afs
type fsReader struct {
	root string
	fs   afs.Service
}

// NewReader creates a reader resolving slash separated paths against root
func NewReader(root string, fs afs.Service) Reader {
	if fs == nil {
		fs = afs.New()
	}
	return &fsReader{root: root, fs: fs}
}

func (r *fsReader) Read(ctx context.Context, location string) ([]byte, bool, error) {
	URL := url.Join(r.root, path.Clean(strings.TrimPrefix(location, "/")))
	exists, err := r.fs.Exists(ctx, URL)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check %s: %w", location, err)
	}
	if !exists {
		return nil, false, nil
	}
	content, err := r.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return content, true, nil
}
