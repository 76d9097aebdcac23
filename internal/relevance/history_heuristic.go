package relevance

import (
	"fmt"
	"sort"
	"time"
)

// FailureCounter supplies recent failure counts per test name.
// store.RunStore satisfies this.
type FailureCounter interface {
	FailureCounts(since time.Time) (map[string]int, error)
}

// Failure count thresholds for the history tiers.
const (
	// DefaultHighlyFailures is the minimum recent failures for the highly
	// relevant tier.
	DefaultHighlyFailures = 3
	// DefaultHistoryWindow is how far back failures count.
	DefaultHistoryWindow = 14 * 24 * time.Hour
)

// HistoryHeuristic tiers tests by how often they failed recently: frequent
// failers are highly relevant, occasional ones probably relevant.
type HistoryHeuristic struct {
	counter        FailureCounter
	window         time.Duration
	highlyFailures int
}

// HistoryOption tunes a HistoryHeuristic.
type HistoryOption func(*HistoryHeuristic)

// WithWindow overrides the failure lookback window.
func WithWindow(d time.Duration) HistoryOption {
	return func(h *HistoryHeuristic) { h.window = d }
}

// WithHighlyFailures overrides the highly-relevant failure threshold.
func WithHighlyFailures(n int) HistoryOption {
	return func(h *HistoryHeuristic) { h.highlyFailures = n }
}

// NewHistoryHeuristic builds a heuristic over the given failure source.
func NewHistoryHeuristic(counter FailureCounter, opts ...HistoryOption) *HistoryHeuristic {
	h := &HistoryHeuristic{
		counter:        counter,
		window:         DefaultHistoryWindow,
		highlyFailures: DefaultHighlyFailures,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *HistoryHeuristic) Name() string { return "history" }

// TestPriorities orders each ranked tier by descending failure count, with
// input order breaking ties, so equal histories always shard identically.
func (h *HistoryHeuristic) TestPriorities(tests []string) (*TestPrioritizations, error) {
	counts, err := h.counter.FailureCounts(time.Now().Add(-h.window))
	if err != nil {
		return nil, fmt.Errorf("load failure history: %w", err)
	}

	type ranked struct {
		name  string
		count int
		pos   int
	}
	var highly, probably []ranked
	var unranked []string
	for i, test := range tests {
		switch n := counts[test]; {
		case n >= h.highlyFailures:
			highly = append(highly, ranked{test, n, i})
		case n > 0:
			probably = append(probably, ranked{test, n, i})
		default:
			unranked = append(unranked, test)
		}
	}

	byCount := func(list []ranked) []string {
		sort.Slice(list, func(a, b int) bool {
			if list[a].count != list[b].count {
				return list[a].count > list[b].count
			}
			return list[a].pos < list[b].pos
		})
		out := make([]string, len(list))
		for i, r := range list {
			out[i] = r.name
		}
		return out
	}

	return New(byCount(highly), byCount(probably), unranked)
}
