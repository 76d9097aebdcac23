package relevance

import (
	"fmt"

	"rankbench/internal/logging"
)

// Heuristic is a pluggable policy that ranks test identifiers by likely
// relevance. Implementations must return deterministic orderings for a given
// input; the sharding downstream depends on it.
type Heuristic interface {
	// TestPriorities splits the given tests into relevance tiers.
	TestPriorities(tests []string) (*TestPrioritizations, error)
	// Name identifies the heuristic in logs and reports.
	Name() string
}

// Aggregate runs each heuristic over the test list and folds the opinions
// into one container, in order. Later heuristics can promote tests that
// earlier ones left lower, but never demote. Tests a heuristic mentions that
// are not in the input list are dropped by Integrate; the drop is logged so
// the data loss is visible.
func Aggregate(tests []string, heuristics ...Heuristic) (*TestPrioritizations, error) {
	combined, err := Unranked(tests)
	if err != nil {
		return nil, err
	}
	universe := newOrderedSet(tests...)
	logger := logging.New("relevance")

	for _, h := range heuristics {
		tp, err := h.TestPriorities(tests)
		if err != nil {
			return nil, fmt.Errorf("heuristic %s: %w", h.Name(), err)
		}

		dropped := 0
		for _, test := range tp.All() {
			if !universe.has(test) {
				dropped++
			}
		}
		if dropped > 0 {
			logger.Warn("heuristic ranked tests outside the requested list; dropping them",
				"heuristic", h.Name(), "dropped", dropped)
		}

		if err := combined.Integrate(tp); err != nil {
			return nil, fmt.Errorf("heuristic %s: %w", h.Name(), err)
		}
		logger.Info("integrated heuristic",
			"heuristic", h.Name(),
			"highly", len(tp.HighlyRelevant),
			"probably", len(tp.ProbablyRelevant))
	}
	return combined, nil
}
