package db

import (
	"slices"
	"sync"
	"time"
)

// latencyWindow is the number of recent samples kept per statement.
const latencyWindow = 512

// QueryLatency summarizes the recent samples of one named statement.
type QueryLatency struct {
	Name  string
	Count int
	P50   time.Duration
	P95   time.Duration
	Max   time.Duration
}

type latencyRing struct {
	samples [latencyWindow]time.Duration
	next    int
	filled  bool
}

func (r *latencyRing) add(d time.Duration) {
	r.samples[r.next] = d
	r.next = (r.next + 1) % latencyWindow
	if r.next == 0 {
		r.filled = true
	}
}

func (r *latencyRing) values() []time.Duration {
	if r.filled {
		return slices.Clone(r.samples[:])
	}
	return slices.Clone(r.samples[:r.next])
}

type latencyTracker struct {
	mu    sync.Mutex
	rings map[string]*latencyRing
}

func newLatencyTracker() *latencyTracker {
	return &latencyTracker{rings: make(map[string]*latencyRing)}
}

func (t *latencyTracker) observe(name string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ring, ok := t.rings[name]
	if !ok {
		ring = &latencyRing{}
		t.rings[name] = ring
	}
	ring.add(d)
}

// summary orders statements slowest p95 first.
func (t *latencyTracker) summary() []QueryLatency {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]QueryLatency, 0, len(t.rings))
	for name, ring := range t.rings {
		values := ring.values()
		if len(values) == 0 {
			continue
		}
		slices.Sort(values)
		last := len(values) - 1
		out = append(out, QueryLatency{
			Name:  name,
			Count: len(values),
			P50:   values[last/2],
			P95:   values[last*95/100],
			Max:   values[last],
		})
	}
	slices.SortFunc(out, func(a, b QueryLatency) int {
		if a.P95 != b.P95 {
			if a.P95 > b.P95 {
				return -1
			}
			return 1
		}
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return out
}

// QueryLatencyStats returns per-statement latency over the recent window.
func (c *Database) QueryLatencyStats() []QueryLatency {
	if c == nil || c.tracker == nil {
		return nil
	}
	return c.tracker.summary()
}
