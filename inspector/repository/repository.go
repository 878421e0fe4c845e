package repository

// Repository represents a detected source repository
type Repository struct {
	Kind   string // git or a project marker type
	Root   string // absolute root directory
	Module string // Go module path when go.mod is present
}

// Worktree represents one entry of `git worktree list`
type Worktree struct {
	Path     string `json:"path" yaml:"path"`
	Head     string `json:"head,omitempty" yaml:"head,omitempty"`
	Branch   string `json:"branch,omitempty" yaml:"branch,omitempty"`
	Bare     bool   `json:"bare,omitempty" yaml:"bare,omitempty"`
	Detached bool   `json:"detached,omitempty" yaml:"detached,omitempty"`
}
