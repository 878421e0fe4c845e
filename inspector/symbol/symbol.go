// Package symbol defines the language independent facts an inspector extracts from a parsed
// source file: top-level and nested symbols, their members and the file imports.
package symbol

import (
	"sort"

	"github.com/viant/symdiff/digest"
)

// Kind represents symbol kind
type Kind string

const (
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindFunction  Kind = "function"
	KindMethod    Kind = "method"
	KindNamespace Kind = "namespace"
	KindExport    Kind = "export"
)

// MemberKind represents member kind
type MemberKind string

const (
	MemberMethod      MemberKind = "method"
	MemberProperty    MemberKind = "property"
	MemberConstructor MemberKind = "constructor"
	MemberGetter      MemberKind = "getter"
	MemberSetter      MemberKind = "setter"
)

// Range represents 1-based inclusive line range
type Range struct {
	StartLine int `json:"startLine" yaml:"startLine"`
	EndLine   int `json:"endLine" yaml:"endLine"`
}

// Symbol represents an extracted class, interface, function, method or namespace
type Symbol struct {
	Name       string    // Symbol name
	Parent     string    // Qualified enclosing scope, empty for top-level symbols
	Kind       Kind      // Symbol kind
	Range      Range     // Declaration line range
	Exported   bool      // Visibility, computed once by the inspector
	Signature  string    // Declaration header text
	Extends    string    // Extended type, if any
	Implements []string  // Implemented (or embedded) types
	Members    []*Member // Methods, properties, constructors and accessors
	Body       string    // Body text, used for function kind symbols
	Text       string    // Raw declaration text
	Synthetic  bool      // Owner inferred from method receivers, declared in another file

	memberMap map[string]int
}

// QualifiedName returns parent qualified symbol name
func (s *Symbol) QualifiedName() string {
	if s.Parent == "" {
		return s.Name
	}
	return s.Parent + "." + s.Name
}

// IsTopLevel returns true if symbol is not nested
func (s *Symbol) IsTopLevel() bool {
	return s.Parent == ""
}

// AddMember adds a member to the symbol
func (s *Symbol) AddMember(member *Member) {
	if s.memberMap == nil {
		s.memberMap = make(map[string]int)
	}
	if member.BodyHash == "" {
		member.BodyHash = digest.Body(member.Body)
	}
	if idx, ok := s.memberMap[member.Name]; ok {
		s.Members[idx] = member
		return
	}
	s.Members = append(s.Members, member)
	s.memberMap[member.Name] = len(s.Members) - 1
}

// Member returns a member by name
func (s *Symbol) Member(name string) *Member {
	if len(s.memberMap) != len(s.Members) {
		s.indexMembers()
	}
	if idx, ok := s.memberMap[name]; ok && idx < len(s.Members) {
		return s.Members[idx]
	}
	return nil
}

func (s *Symbol) indexMembers() {
	s.memberMap = make(map[string]int, len(s.Members))
	for i, member := range s.Members {
		if member == nil {
			continue
		}
		s.memberMap[member.Name] = i
	}
}

// ComparableMembers returns members used for symbol comparison.
// A function owns exactly one synthetic member: its own body.
func (s *Symbol) ComparableMembers() []*Member {
	if s.Kind != KindFunction {
		return s.Members
	}
	return []*Member{{
		Name:      s.Name,
		Kind:      MemberMethod,
		Signature: s.Signature,
		Body:      s.Body,
		BodyHash:  digest.Body(s.Body),
		Text:      s.Text,
		Range:     s.Range,
		Exported:  s.Exported,
	}}
}

// SortedImplements returns a sorted copy of implemented types
func (s *Symbol) SortedImplements() []string {
	result := make([]string, len(s.Implements))
	copy(result, s.Implements)
	sort.Strings(result)
	return result
}

// Member represents a method, property, constructor or accessor
type Member struct {
	Name      string
	Kind      MemberKind
	Signature string
	Body      string
	BodyHash  string // digest of whitespace normalized body
	Text      string
	Range     Range
	Exported  bool
	IsStatic  bool
}

// Import represents an imported module or package
type Import struct {
	Name string // Local name (may be empty)
	Path string // Import path
}
