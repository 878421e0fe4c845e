package baseline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// WorktreeSource reads a sibling worktree directory
type WorktreeSource struct {
	root string
	fs   afs.Service
}

// NewWorktreeSource creates a worktree source; relative references resolve against the parent of root
func NewWorktreeSource(root string, fs afs.Service) *WorktreeSource {
	if fs == nil {
		fs = afs.New()
	}
	return &WorktreeSource{root: root, fs: fs}
}

// Dir returns the worktree directory of the baseline
func (s *WorktreeSource) Dir(b *Baseline) string {
	if filepath.IsAbs(b.Reference) {
		return filepath.Clean(b.Reference)
	}
	return filepath.Join(filepath.Dir(s.root), b.Reference)
}

// FileContent returns the worktree copy of location, nil when absent
func (s *WorktreeSource) FileContent(ctx context.Context, b *Baseline, location string) ([]byte, error) {
	exists, err := s.FileExists(ctx, b, location)
	if err != nil || !exists {
		return nil, err
	}
	content, err := s.fs.DownloadWithURL(ctx, s.fileURL(b, location))
	if err != nil {
		return nil, fmt.Errorf("failed to read worktree file %s: %w", location, err)
	}
	return content, nil
}

// FileExists reports whether the worktree holds location
func (s *WorktreeSource) FileExists(ctx context.Context, b *Baseline, location string) (bool, error) {
	if b == nil || b.Reference == "" {
		return false, nil
	}
	exists, err := s.fs.Exists(ctx, s.fileURL(b, location))
	if err != nil {
		return false, fmt.Errorf("failed to check worktree file %s: %w", location, err)
	}
	return exists, nil
}

// ListFiles lists worktree files skipping .git and .gitignore matches
func (s *WorktreeSource) ListFiles(ctx context.Context, b *Baseline) ([]string, error) {
	if b == nil || b.Reference == "" {
		return nil, nil
	}
	dir := s.Dir(b)
	if ok, _ := s.fs.Exists(ctx, dir); !ok {
		return nil, nil
	}
	var matcher *ignore.GitIgnore
	if ignoreFile := filepath.Join(dir, ".gitignore"); fileExists(ignoreFile) {
		compiled, err := ignore.CompileIgnoreFile(ignoreFile)
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s: %w", ignoreFile, err)
		}
		matcher = compiled
	}
	return listTree(ctx, s.fs, dir, matcher)
}

func (s *WorktreeSource) fileURL(b *Baseline, location string) string {
	return url.Join(s.Dir(b), path.Clean(strings.TrimPrefix(location, "/")))
}

// listTree walks URL returning sorted slash separated relative file paths
func listTree(ctx context.Context, fs afs.Service, URL string, matcher *ignore.GitIgnore) ([]string, error) {
	if ok, _ := fs.Exists(ctx, URL); !ok {
		return nil, nil
	}
	var result []string
	err := fs.Walk(ctx, URL, func(ctx context.Context, baseURL string, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		relative := path.Join(parent, info.Name())
		if skipped(relative, matcher) {
			return false, nil
		}
		if !info.IsDir() {
			result = append(result, relative)
		}
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", URL, err)
	}
	sort.Strings(result)
	return result, nil
}

func skipped(relative string, matcher *ignore.GitIgnore) bool {
	if relative == ".git" || strings.HasPrefix(relative, ".git/") {
		return true
	}
	return matcher != nil && matcher.MatchesPath(relative)
}

func fileExists(location string) bool {
	_, err := os.Stat(location)
	return err == nil
}
