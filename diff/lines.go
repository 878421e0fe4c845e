package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// LineStats counts added and removed lines using sequence alignment
func LineStats(before, after []byte) (added int, removed int) {
	matcher := difflib.NewMatcher(splitLines(before), splitLines(after))
	for _, opCode := range matcher.GetOpCodes() {
		switch opCode.Tag {
		case 'r':
			removed += opCode.I2 - opCode.I1
			added += opCode.J2 - opCode.J1
		case 'd':
			removed += opCode.I2 - opCode.I1
		case 'i':
			added += opCode.J2 - opCode.J1
		}
	}
	return added, removed
}

// Unified returns a unified patch between baseline and current content
func Unified(path string, before, after []byte, context int) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(before),
		B:        splitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  context,
	})
}

// splitLines keeps line terminators and drops the empty tail after a final newline
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	lines := strings.SplitAfter(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
