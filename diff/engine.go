package diff

import (
	"sort"

	"github.com/viant/symdiff/digest"
	"github.com/viant/symdiff/inspector/symbol"
	"github.com/viant/symdiff/severity"
)

// Engine matches symbols and members between two versions of one file
type Engine struct{}

// New creates an engine
func New() *Engine {
	return &Engine{}
}

// DiffNodes returns diffs of top-level symbols; a nil file stands for zero symbols and imports.
// Symbols without any change are omitted.
func (e *Engine) DiffNodes(before, after *symbol.File) []*NodeDiff {
	beforeSymbols := before.TopLevel()
	afterSymbols := after.TopLevel()
	dependencies := dependencyChanges(before.ImportPaths(), after.ImportPaths())

	var result []*NodeDiff
	for name, afterSymbol := range afterSymbols {
		beforeSymbol, ok := beforeSymbols[name]
		switch {
		case !ok && afterSymbol.Synthetic:
			beforeSymbol = declaredElsewhere(afterSymbol)
		case !ok:
			result = append(result, presenceDiff(afterSymbol, StatusAdded))
			continue
		}
		if nodeDiff := e.modification(beforeSymbol, afterSymbol, dependencies); nodeDiff != nil {
			result = append(result, nodeDiff)
		}
	}
	for name, beforeSymbol := range beforeSymbols {
		if _, ok := afterSymbols[name]; ok {
			continue
		}
		if beforeSymbol.Synthetic {
			if nodeDiff := e.modification(beforeSymbol, declaredElsewhere(beforeSymbol), dependencies); nodeDiff != nil {
				result = append(result, nodeDiff)
			}
			continue
		}
		result = append(result, presenceDiff(beforeSymbol, StatusRemoved))
	}
	SortNodes(result)
	return result
}

// Removed returns a removed diff for every top-level symbol of a deleted file
func (e *Engine) Removed(before *symbol.File) []*NodeDiff {
	return e.DiffNodes(before, nil)
}

// modification compares a symbol present in both versions, nil when nothing changed
func (e *Engine) modification(before, after *symbol.Symbol, dependencies DependencyChanges) *NodeDiff {
	nodeDiff := &NodeDiff{
		ID:                nodeID(after),
		Name:              after.Name,
		Kind:              after.Kind,
		Status:            StatusModified,
		Exported:          after.Exported,
		MemberDiffs:       diffMembers(before.ComparableMembers(), after.ComparableMembers()),
		DependencyChanges: dependencies,
		InheritanceChange: inheritanceChange(before, after),
	}
	if !nodeDiff.HasChanges() {
		return nil
	}
	levels := make([]severity.Level, 0, len(nodeDiff.MemberDiffs))
	for _, member := range nodeDiff.MemberDiffs {
		levels = append(levels, member.Severity)
	}
	nodeDiff.Severity = severity.Node(levels, nodeDiff.InheritanceChange != nil, !dependencies.IsEmpty())
	return nodeDiff
}

// declaredElsewhere returns a memberless stand-in for a receiver type declared in another file;
// its methods appearing or disappearing modify the type rather than add or remove it
func declaredElsewhere(aSymbol *symbol.Symbol) *symbol.Symbol {
	return &symbol.Symbol{
		Name:      aSymbol.Name,
		Kind:      aSymbol.Kind,
		Exported:  aSymbol.Exported,
		Synthetic: true,
	}
}

// presenceDiff reports a symbol and all its members as added or removed
func presenceDiff(aSymbol *symbol.Symbol, status Status) *NodeDiff {
	nodeDiff := &NodeDiff{
		ID:       nodeID(aSymbol),
		Name:     aSymbol.Name,
		Kind:     aSymbol.Kind,
		Status:   status,
		Severity: severity.Presence(aSymbol.Exported),
		Exported: aSymbol.Exported,
	}
	for _, member := range aSymbol.ComparableMembers() {
		nodeDiff.MemberDiffs = append(nodeDiff.MemberDiffs, memberPresence(member, status))
	}
	sortMembers(nodeDiff.MemberDiffs)
	return nodeDiff
}

func memberPresence(member *symbol.Member, status Status) *MemberDiff {
	memberDiff := &MemberDiff{
		Name:     member.Name,
		Kind:     member.Kind,
		Status:   status,
		Severity: severity.Presence(member.Exported),
		Reason:   severity.ReasonPresence,
	}
	if status == StatusAdded {
		memberDiff.AfterSignature = member.Signature
	} else {
		memberDiff.BeforeSignature = member.Signature
	}
	return memberDiff
}

// diffMembers matches members by name
func diffMembers(before, after []*symbol.Member) []*MemberDiff {
	beforeMembers := make(map[string]*symbol.Member, len(before))
	for _, member := range before {
		beforeMembers[member.Name] = member
	}
	afterMembers := make(map[string]*symbol.Member, len(after))
	var result []*MemberDiff
	for _, afterMember := range after {
		afterMembers[afterMember.Name] = afterMember
		beforeMember, ok := beforeMembers[afterMember.Name]
		if !ok {
			result = append(result, memberPresence(afterMember, StatusAdded))
			continue
		}
		if memberDiff := diffMember(beforeMember, afterMember); memberDiff != nil {
			result = append(result, memberDiff)
		}
	}
	for _, beforeMember := range before {
		if _, ok := afterMembers[beforeMember.Name]; !ok {
			result = append(result, memberPresence(beforeMember, StatusRemoved))
		}
	}
	sortMembers(result)
	return result
}

func diffMember(before, after *symbol.Member) *MemberDiff {
	signatureChanged := digest.NormalizeWhitespace(before.Signature) != digest.NormalizeWhitespace(after.Signature)
	if !signatureChanged && bodyHash(before) == bodyHash(after) {
		return nil
	}
	level, reason := severity.Modification(signatureChanged, before.Body, after.Body)
	if level == severity.None {
		return nil
	}
	return &MemberDiff{
		Name:             after.Name,
		Kind:             after.Kind,
		Status:           StatusModified,
		Severity:         level,
		Reason:           reason,
		SignatureChanged: signatureChanged,
		BeforeSignature:  before.Signature,
		AfterSignature:   after.Signature,
	}
}

func bodyHash(member *symbol.Member) string {
	if member.BodyHash != "" {
		return member.BodyHash
	}
	return digest.Body(member.Body)
}

func inheritanceChange(before, after *symbol.Symbol) *InheritanceChange {
	beforeImplements := before.SortedImplements()
	afterImplements := after.SortedImplements()
	if before.Extends == after.Extends && equalStrings(beforeImplements, afterImplements) {
		return nil
	}
	return &InheritanceChange{
		BeforeExtends:    before.Extends,
		AfterExtends:     after.Extends,
		BeforeImplements: beforeImplements,
		AfterImplements:  afterImplements,
	}
}

// dependencyChanges returns the symmetric difference of sorted import paths
func dependencyChanges(before, after []string) DependencyChanges {
	result := DependencyChanges{}
	beforeSet := toSet(before)
	afterSet := toSet(after)
	for _, item := range after {
		if !beforeSet[item] {
			result.Added = append(result.Added, item)
		}
	}
	for _, item := range before {
		if !afterSet[item] {
			result.Removed = append(result.Removed, item)
		}
	}
	return result
}

// DeriveEdgeStatus returns edge status from its endpoint statuses
func DeriveEdgeStatus(source, target Status) Status {
	switch {
	case source == StatusAdded || target == StatusAdded:
		return StatusAdded
	case source == StatusRemoved || target == StatusRemoved:
		return StatusRemoved
	case source == StatusModified || target == StatusModified:
		return StatusModified
	}
	return StatusUnchanged
}

// SortNodes orders diffs by status then id
func SortNodes(nodes []*NodeDiff) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Status != nodes[j].Status {
			return nodes[i].Status.order() < nodes[j].Status.order()
		}
		if nodes[i].FilePath != nodes[j].FilePath {
			return nodes[i].FilePath < nodes[j].FilePath
		}
		return nodes[i].ID < nodes[j].ID
	})
}

func sortMembers(members []*MemberDiff) {
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Name < members[j].Name
	})
}

func nodeID(aSymbol *symbol.Symbol) string {
	return string(aSymbol.Kind) + ":" + aSymbol.QualifiedName()
}

func toSet(items []string) map[string]bool {
	result := make(map[string]bool, len(items))
	for _, item := range items {
		result[item] = true
	}
	return result
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortStrings(items []string) {
	sort.Strings(items)
}
