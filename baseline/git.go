package baseline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strings"
)

// GitSource resolves commit and branch baselines by shelling out to git
type GitSource struct {
	root string
}

// NewGitSource creates a git source running commands in root
func NewGitSource(root string) *GitSource {
	return &GitSource{root: root}
}

// FileContent returns the blob at reference:path, nil when the path or reference does not exist
func (s *GitSource) FileContent(ctx context.Context, b *Baseline, location string) ([]byte, error) {
	exists, err := s.FileExists(ctx, b, location)
	if err != nil || !exists {
		return nil, err
	}
	output, err := s.run(ctx, "show", objectName(b, location))
	if err != nil {
		if isExitError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to show %s: %w", objectName(b, location), err)
	}
	return output, nil
}

// FileExists reports whether reference:path names an object
func (s *GitSource) FileExists(ctx context.Context, b *Baseline, location string) (bool, error) {
	if b == nil || b.Reference == "" {
		return false, nil
	}
	if _, err := s.run(ctx, "cat-file", "-e", objectName(b, location)); err != nil {
		if isExitError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check %s: %w", objectName(b, location), err)
	}
	return true, nil
}

// ListFiles lists files tracked at reference, relative to the source root
func (s *GitSource) ListFiles(ctx context.Context, b *Baseline) ([]string, error) {
	if b == nil || b.Reference == "" {
		return nil, nil
	}
	output, err := s.run(ctx, "ls-tree", "-r", "-z", "--name-only", b.Reference)
	if err != nil {
		if isExitError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list files at %s: %w", b.Reference, err)
	}
	var result []string
	// NUL separated names are not quoted, unlike core.quotePath escaped lines
	for _, name := range strings.Split(string(output), "\x00") {
		if name != "" {
			result = append(result, name)
		}
	}
	return result, nil
}

func (s *GitSource) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = s.root
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil && stderr.Len() > 0 {
		return nil, fmt.Errorf("%s: %w", strings.TrimSpace(stderr.String()), err)
	}
	return output, err
}

// objectName builds reference:./path, resolved relative to the working directory
func objectName(b *Baseline, location string) string {
	return b.Reference + ":./" + path.Clean(strings.TrimPrefix(location, "/"))
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}
