package watcher

import (
	"context"
	"sort"
	"time"
)

// DefaultDebounce is the quiet window after which pending paths are emitted
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces paths until no new path arrives for the window, then emits them as one sorted batch
type Debouncer struct {
	window  time.Duration
	input   chan string
	batches chan []string
	done    chan struct{}
}

// NewDebouncer creates a debouncer; a non positive window falls back to DefaultDebounce
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Debouncer{
		window:  window,
		input:   make(chan string, 1024),
		batches: make(chan []string, 16),
		done:    make(chan struct{}),
	}
}

// Add schedules a path; it is a no-op once Run returned
func (d *Debouncer) Add(path string) {
	select {
	case d.input <- path:
	case <-d.done:
	}
}

// Batches returns the channel of coalesced batches, closed when Run returns
func (d *Debouncer) Batches() <-chan []string {
	return d.batches
}

// Run coalesces paths until ctx is done
func (d *Debouncer) Run(ctx context.Context) {
	defer close(d.batches)
	defer close(d.done)
	pending := map[string]bool{}
	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case path := <-d.input:
			pending[path] = true
			if timer == nil {
				timer = time.NewTimer(d.window)
				timerC = timer.C
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(d.window)
		case <-timerC:
			timer, timerC = nil, nil
			batch := make([]string, 0, len(pending))
			for path := range pending {
				batch = append(batch, path)
			}
			sort.Strings(batch)
			pending = map[string]bool{}
			select {
			case d.batches <- batch:
			case <-ctx.Done():
				return
			}
		}
	}
}
