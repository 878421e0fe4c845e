package repository

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// Detector locates repository roots and their worktrees
type Detector struct {
	fs      afs.Service
	markers []string
}

// New creates a new repository detector
func New() *Detector {
	return &Detector{
		fs: afs.New(),
		markers: []string{
			"go.mod",       // Go projects
			"pom.xml",      // Java/Maven projects
			"build.gradle", // Java/Gradle projects
			"package.json", // JavaScript/Node projects
		},
	}
}

// Detect identifies the repository containing the given path
func (d *Detector) Detect(ctx context.Context, location string) (*Repository, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}
	repo := &Repository{Kind: "unknown", Root: startDir}
	if gitRoot := FindGitRoot(startDir); gitRoot != "" {
		repo.Kind = "git"
		repo.Root = gitRoot
	} else if root, kind := d.findProjectRoot(startDir); root != "" {
		repo.Kind = kind
		repo.Root = root
	}
	repo.Module = d.ModulePath(ctx, repo.Root)
	return repo, nil
}

// ModulePath returns the module path declared in root/go.mod or empty
func (d *Detector) ModulePath(ctx context.Context, root string) string {
	goModPath := filepath.Join(root, "go.mod")
	if ok, _ := d.fs.Exists(ctx, goModPath); !ok {
		return ""
	}
	content, err := d.fs.DownloadWithURL(ctx, goModPath)
	if err != nil {
		return ""
	}
	mod, err := modfile.ParseLax(goModPath, content, nil)
	if err != nil || mod.Module == nil {
		return ""
	}
	return mod.Module.Mod.Path
}

// findProjectRoot searches up from the start directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, projectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ""
		}
		dir = parent
	}
}

// FindGitRoot returns the closest ancestor holding .git; linked worktrees carry a .git file
func FindGitRoot(startDir string) string {
	dir := startDir
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Worktrees lists worktrees attached to the repository at root
func Worktrees(ctx context.Context, root string) ([]*Worktree, error) {
	cmd := exec.CommandContext(ctx, "git", "worktree", "list", "--porcelain")
	cmd.Dir = root
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %w", err)
	}
	return ParseWorktrees(output), nil
}

// ParseWorktrees parses `git worktree list --porcelain` output
func ParseWorktrees(output []byte) []*Worktree {
	var result []*Worktree
	var current *Worktree
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "worktree":
			current = &Worktree{Path: value}
			result = append(result, current)
		case "HEAD":
			if current != nil {
				current.Head = value
			}
		case "branch":
			if current != nil {
				current.Branch = strings.TrimPrefix(value, "refs/heads/")
			}
		case "bare":
			if current != nil {
				current.Bare = true
			}
		case "detached":
			if current != nil {
				current.Detached = true
			}
		}
	}
	return result
}

func projectType(marker string) string {
	switch marker {
	case "go.mod":
		return "go"
	case "pom.xml", "build.gradle":
		return "java"
	case "package.json":
		return "javascript"
	}
	return "unknown"
}
