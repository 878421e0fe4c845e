package analyzer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/viant/symdiff/diff"
	"github.com/viant/symdiff/inspector/repository"
	"github.com/viant/symdiff/inspector/symbol"
)

// Edge kinds produced by BuildGraph
const (
	EdgeContains = "contains"
	EdgeImports  = "imports"
)

var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

// Sources lists indexable files under root as sorted slash separated relative paths
func (a *Analyzer) Sources(ctx context.Context) ([]string, error) {
	var result []string
	err := a.fs.Walk(ctx, a.root, func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return !skippedDirs[info.Name()] && !strings.HasPrefix(info.Name(), "."), nil
		}
		if location := path.Join(parent, info.Name()); a.registry.Indexable(location) {
			result = append(result, location)
		}
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sources in %s: %w", a.root, err)
	}
	sort.Strings(result)
	return result, nil
}

// BuildGraph builds a dependency graph of the current tree: a namespace node per file, a node per
// symbol, contains edges from owners to symbols and imports edges between files
func (a *Analyzer) BuildGraph(ctx context.Context, paths []string) (*diff.Graph, error) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	graph := &diff.Graph{}
	files := map[string]*symbol.File{}
	dirs := map[string][]string{}
	edges := map[string]bool{}
	addEdge := func(source, target, kind string) {
		id := source + "->" + target + ":" + kind
		if source == target || edges[id] {
			return
		}
		edges[id] = true
		graph.Edges = append(graph.Edges, &diff.Edge{ID: id, Source: source, Target: target, Kind: kind})
	}

	for _, location := range sorted {
		content, present, err := a.reader.Read(ctx, location)
		if err != nil {
			return nil, err
		}
		if !present {
			continue
		}
		aFile := a.inspect(ctx, location, content, true)
		if aFile == nil {
			aFile = &symbol.File{Path: location}
		}
		files[location] = aFile
		dirs[path.Dir(location)] = append(dirs[path.Dir(location)], location)
		graph.Nodes = append(graph.Nodes, &diff.Node{ID: location, Kind: symbol.KindNamespace, Name: location, FilePath: location})

		byQualifiedName := map[string]string{}
		var symbolNodes []*diff.Node
		for _, aSymbol := range aFile.Symbols {
			node := &diff.Node{Kind: aSymbol.Kind, Name: aSymbol.Name, Parent: aSymbol.Parent, FilePath: location}
			node.ID = diff.NodeKey(location, node.SymbolID())
			if _, ok := byQualifiedName[aSymbol.QualifiedName()]; !ok {
				byQualifiedName[aSymbol.QualifiedName()] = node.ID
			}
			symbolNodes = append(symbolNodes, node)
		}
		graph.Nodes = append(graph.Nodes, symbolNodes...)
		for _, node := range symbolNodes {
			owner := location
			if node.Parent != "" {
				if parentID, ok := byQualifiedName[node.Parent]; ok {
					owner = parentID
				}
			}
			addEdge(owner, node.ID, EdgeContains)
		}
	}

	resolver := &importResolver{files: files, dirs: dirs, module: repository.New().ModulePath(ctx, a.root)}
	for _, location := range sorted {
		aFile, ok := files[location]
		if !ok {
			continue
		}
		for _, imp := range aFile.Imports {
			for _, target := range resolver.resolve(location, aFile.Language, imp.Path) {
				addEdge(location, target, EdgeImports)
			}
		}
	}
	return graph, nil
}

// importResolver maps import paths to analyzed files
type importResolver struct {
	files  map[string]*symbol.File
	dirs   map[string][]string
	module string
}

func (r *importResolver) resolve(from, language, importPath string) []string {
	switch language {
	case "go":
		if r.module == "" || (importPath != r.module && !strings.HasPrefix(importPath, r.module+"/")) {
			return nil
		}
		dir := strings.TrimPrefix(strings.TrimPrefix(importPath, r.module), "/")
		if dir == "" {
			dir = "."
		}
		return r.dirs[dir]
	case "java":
		if pkg, ok := strings.CutSuffix(importPath, ".*"); ok {
			return r.withDirSuffix(strings.ReplaceAll(pkg, ".", "/"))
		}
		return r.withSuffix(strings.ReplaceAll(importPath, ".", "/") + ".java")
	case "javascript":
		if !strings.HasPrefix(importPath, ".") {
			return nil
		}
		base := path.Join(path.Dir(from), importPath)
		for _, candidate := range []string{base, base + ".js", base + ".jsx", base + ".mjs", base + ".cjs", base + "/index.js", base + "/index.jsx"} {
			if _, ok := r.files[candidate]; ok {
				return []string{candidate}
			}
		}
	}
	return nil
}

func (r *importResolver) withSuffix(suffix string) []string {
	var result []string
	for location := range r.files {
		if location == suffix || strings.HasSuffix(location, "/"+suffix) {
			result = append(result, location)
		}
	}
	sort.Strings(result)
	return result
}

func (r *importResolver) withDirSuffix(suffix string) []string {
	var result []string
	for dir, locations := range r.dirs {
		if dir == suffix || strings.HasSuffix(dir, "/"+suffix) {
			result = append(result, locations...)
		}
	}
	sort.Strings(result)
	return result
}
