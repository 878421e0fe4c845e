package symbol

import "sort"

// File represents symbols and imports extracted from one source file
type File struct {
	Path     string
	Language string
	Symbols  []*Symbol
	Imports  []Import
}

// TopLevel returns top-level symbols indexed by name, first declaration wins
func (f *File) TopLevel() map[string]*Symbol {
	result := make(map[string]*Symbol)
	if f == nil {
		return result
	}
	for _, symbol := range f.Symbols {
		if symbol == nil || !symbol.IsTopLevel() {
			continue
		}
		if _, ok := result[symbol.Name]; ok {
			continue
		}
		result[symbol.Name] = symbol
	}
	return result
}

// ImportPaths returns sorted unique import paths
func (f *File) ImportPaths() []string {
	if f == nil {
		return nil
	}
	seen := make(map[string]bool, len(f.Imports))
	var result []string
	for _, imp := range f.Imports {
		if imp.Path == "" || seen[imp.Path] {
			continue
		}
		seen[imp.Path] = true
		result = append(result, imp.Path)
	}
	sort.Strings(result)
	return result
}

// AddSymbol appends a symbol
func (f *File) AddSymbol(symbol *Symbol) {
	f.Symbols = append(f.Symbols, symbol)
}

// Lookup returns a symbol by qualified name
func (f *File) Lookup(qualifiedName string) *Symbol {
	if f == nil {
		return nil
	}
	for _, symbol := range f.Symbols {
		if symbol.QualifiedName() == qualifiedName {
			return symbol
		}
	}
	return nil
}
