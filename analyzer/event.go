package analyzer

import (
	"context"

	"github.com/viant/symdiff/diff"
)

// Event carries a freshly published graph diff with keys of nodes affected by the recomputation
type Event struct {
	AffectedNodeIDs []string
	Diff            *diff.GraphDiff
}

// Subscriber receives events in publication order
type Subscriber func(ctx context.Context, event *Event)
