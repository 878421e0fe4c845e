package inspector

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/symdiff/inspector/golang"
	"github.com/viant/symdiff/inspector/info"
	"github.com/viant/symdiff/inspector/java"
	"github.com/viant/symdiff/inspector/jsx"
	"github.com/viant/symdiff/inspector/symbol"
)

// ErrUnsupportedLanguage is returned when no inspector is registered for a file extension
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Inspector parses source code and extracts symbols, members and imports.
// A parse failure is returned as an error; callers treat it as zero symbols.
type Inspector interface {
	// Language returns language identifier, e.g. go, java, javascript
	Language() string

	// Inspect parses source code and extracts symbol information
	Inspect(ctx context.Context, src []byte) (*symbol.File, error)
}

// Registry maps file extensions to inspectors. It is constructed once and passed explicitly.
type Registry struct {
	config      *info.Config
	byExtension map[string]Inspector
	byLanguage  map[string]Inspector
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		config:      info.DefaultConfig(),
		byExtension: make(map[string]Inspector),
		byLanguage:  make(map[string]Inspector),
	}
}

// New creates a registry with Go, Java and JavaScript inspectors
func New(config *info.Config) *Registry {
	if config == nil {
		config = info.DefaultConfig()
	}
	ret := NewRegistry()
	ret.config = config
	ret.Register(golang.NewInspector(config), ".go")
	ret.Register(java.NewInspector(config), ".java")
	ret.Register(jsx.NewInspector(config), ".js", ".jsx", ".mjs", ".cjs")
	return ret
}

// Register registers inspector for the supplied extensions
func (r *Registry) Register(inspector Inspector, extensions ...string) {
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.byExtension[ext] = inspector
	}
	r.byLanguage[inspector.Language()] = inspector
}

// Lookup returns inspector for a file name
func (r *Registry) Lookup(filename string) (Inspector, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if inspector, ok := r.byExtension[ext]; ok {
		return inspector, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, ext)
}

// Language returns inspector for a language identifier
func (r *Registry) Language(language string) (Inspector, error) {
	if inspector, ok := r.byLanguage[language]; ok {
		return inspector, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
}

// Supports returns true if a file can be inspected
func (r *Registry) Supports(filename string) bool {
	_, ok := r.byExtension[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Indexable returns true if a file is supported and not excluded by config, e.g. a skipped test source
func (r *Registry) Indexable(filename string) bool {
	return r.Supports(filename) && !r.config.Skipped(filename)
}

// Retain unregisters every extension not listed
func (r *Registry) Retain(extensions ...string) {
	if len(extensions) == 0 {
		return
	}
	keep := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		keep[ext] = true
	}
	for ext := range r.byExtension {
		if !keep[ext] {
			delete(r.byExtension, ext)
		}
	}
}

// Extensions returns sorted registered extensions
func (r *Registry) Extensions() []string {
	var result []string
	for ext := range r.byExtension {
		result = append(result, ext)
	}
	sort.Strings(result)
	return result
}

// InspectSource inspects source of the supplied file name
func (r *Registry) InspectSource(ctx context.Context, filename string, src []byte) (*symbol.File, error) {
	inspector, err := r.Lookup(filename)
	if err != nil {
		return nil, err
	}
	file, err := inspector.Inspect(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", filename, err)
	}
	file.Path = filename
	file.Language = inspector.Language()
	return file, nil
}
