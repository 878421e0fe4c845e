package severity

import (
	"github.com/viant/symdiff/digest"
)

// Presence classifies an added or removed member or symbol
func Presence(exported bool) Level {
	if exported {
		return High
	}
	return Medium
}

// Modification classifies a member present on both sides
func Modification(signatureChanged bool, before, after string) (Level, Reason) {
	if signatureChanged {
		return High, ReasonSignature
	}
	if before == after {
		return None, ReasonNone
	}
	if digest.NormalizeWhitespace(before) == digest.NormalizeWhitespace(after) {
		return Low, ReasonFormatting
	}
	if digest.NormalizeWhitespace(StripComments(before)) == digest.NormalizeWhitespace(StripComments(after)) {
		return Low, ReasonComment
	}
	return Medium, ReasonLogic
}

// Node computes symbol level; inheritance or dependency changes override member levels
func Node(members []Level, inheritanceChanged, dependenciesChanged bool) Level {
	if inheritanceChanged || dependenciesChanged {
		return High
	}
	return Aggregate(members...)
}

// Aggregate returns the highest level, None for an empty set
func Aggregate(levels ...Level) Level {
	result := None
	for _, level := range levels {
		if level > result {
			result = level
		}
	}
	return result
}
