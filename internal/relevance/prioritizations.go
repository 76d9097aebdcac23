// Package relevance ranks test files by likely relevance to a change.
//
// TestPrioritizations is the shared result container every heuristic
// produces: three ordered tiers of test identifiers. Lists must always come
// out in a deterministic order; downstream test sharding depends on it.
package relevance

import (
	"fmt"
	"io"
	"strings"

	"rankbench/internal/display"
)

// TestPrioritizations holds a heuristic's opinion of a test list, split into
// three tiers. A test belongs to at most one tier; FindConflicts exists
// because merging can only detect, not prevent, violations in its inputs.
//
// A heuristic can leave any tier empty; an empty UnrankedRelevance implies
// all unmentioned tests are irrelevant to it.
type TestPrioritizations struct {
	HighlyRelevant    []string
	ProbablyRelevant  []string
	UnrankedRelevance []string
}

// New builds a container from the three tiers, rejecting empty identifiers.
func New(highly, probably, unranked []string) (*TestPrioritizations, error) {
	p := &TestPrioritizations{
		HighlyRelevant:    highly,
		ProbablyRelevant:  probably,
		UnrankedRelevance: unranked,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Unranked builds a container with every test in the unranked tier, the
// neutral starting point for aggregation.
func Unranked(tests []string) (*TestPrioritizations, error) {
	return New(nil, nil, tests)
}

func (p *TestPrioritizations) validate() error {
	for _, tier := range [][]string{p.HighlyRelevant, p.ProbablyRelevant, p.UnrankedRelevance} {
		for _, test := range tier {
			if strings.TrimSpace(test) == "" {
				return fmt.Errorf("empty test identifier in prioritization")
			}
		}
	}
	return nil
}

// All returns the three tiers concatenated, highest first.
func (p *TestPrioritizations) All() []string {
	out := make([]string, 0, len(p.HighlyRelevant)+len(p.ProbablyRelevant)+len(p.UnrankedRelevance))
	out = append(out, p.HighlyRelevant...)
	out = append(out, p.ProbablyRelevant...)
	out = append(out, p.UnrankedRelevance...)
	return out
}

// Integrate folds another container's opinion into this one. Tests from
// other can move up a tier or reorder within one, but tests other knows and
// self does not are dropped: the caller's universe is fixed at call time.
// After the call no test appears in more than one tier (pre-existing
// conflicts excepted).
func (p *TestPrioritizations) Integrate(other *TestPrioritizations) error {
	if other == nil {
		return fmt.Errorf("integrate: other is nil")
	}
	if err := other.validate(); err != nil {
		return fmt.Errorf("integrate: %w", err)
	}

	orig := newOrderedSet(p.All()...)

	p.HighlyRelevant = mergeTests(p.HighlyRelevant, other.HighlyRelevant, nil, orig)
	p.ProbablyRelevant = mergeTests(p.ProbablyRelevant, other.ProbablyRelevant, p.HighlyRelevant, orig)
	// Unranked gains nothing new; it only loses tests promoted above.
	promoted := append(append([]string{}, p.HighlyRelevant...), p.ProbablyRelevant...)
	p.UnrankedRelevance = mergeTests(p.UnrankedRelevance, nil, promoted, orig)
	return nil
}

// mergeTests appends newTests to current, keeps only tests that were in the
// original universe and not excluded, and deduplicates preserving the first
// occurrence.
func mergeTests(current, newTests, exclude []string, orig *orderedSet) []string {
	excluded := newOrderedSet(exclude...)
	out := newOrderedSet()
	for _, test := range append(append([]string{}, current...), newTests...) {
		if orig.has(test) && !excluded.has(test) {
			out.add(test)
		}
	}
	return out.slice()
}

// FindConflicts returns the tests present in more than one tier, in
// first-seen order. Diagnostic only; it does not repair the container.
func (p *TestPrioritizations) FindConflicts() []string {
	counts := make(map[string]int)
	for _, test := range p.All() {
		counts[test]++
	}
	var conflicts []string
	reported := make(map[string]bool)
	for _, test := range p.All() {
		if counts[test] > 1 && !reported[test] {
			conflicts = append(conflicts, test)
			reported[test] = true
		}
	}
	return conflicts
}

// UnexpectedTests returns the tests in the container that are absent from
// the caller-supplied expected universe.
func (p *TestPrioritizations) UnexpectedTests(expected []string) []string {
	want := newOrderedSet(expected...)
	var unexpected []string
	for _, test := range p.All() {
		if !want.has(test) {
			unexpected = append(unexpected, test)
		}
	}
	return unexpected
}

// tierFor reports which tiers contain the given test (conflict diagnostics).
func (p *TestPrioritizations) tiersFor(test string) []string {
	var tiers []string
	for _, t := range []struct {
		code string
		list []string
	}{
		{"highly", p.HighlyRelevant},
		{"probably", p.ProbablyRelevant},
		{"unranked", p.UnrankedRelevance},
	} {
		for _, name := range t.list {
			if name == test {
				tiers = append(tiers, display.Tier(t.code))
				break
			}
		}
	}
	return tiers
}

// WriteInfo dumps the tiers plus conflict and unexpected-test diagnostics.
func (p *TestPrioritizations) WriteInfo(w io.Writer, expected []string) {
	writeTier := func(code string, tests []string) {
		if len(tests) == 0 {
			return
		}
		fmt.Fprintf(w, "%s tests (%d):\n", display.Tier(code), len(tests))
		for _, test := range tests {
			fmt.Fprintf(w, "  %s\n", test)
		}
	}
	writeTier("highly", p.HighlyRelevant)
	writeTier("probably", p.ProbablyRelevant)
	writeTier("unranked", p.UnrankedRelevance)

	if conflicts := p.FindConflicts(); len(conflicts) > 0 {
		fmt.Fprintf(w, "WARNING: %d tests are in multiple tiers:\n", len(conflicts))
		for _, test := range conflicts {
			fmt.Fprintf(w, "  %s is in %s\n", test, strings.Join(p.tiersFor(test), ", "))
		}
	} else {
		fmt.Fprintln(w, "No conflicts found")
	}

	if unexpected := p.UnexpectedTests(expected); len(unexpected) > 0 {
		fmt.Fprintf(w, "WARNING: %d tests are not in the expected list:\n", len(unexpected))
		for _, test := range unexpected {
			fmt.Fprintf(w, "  %s\n", test)
		}
	} else {
		fmt.Fprintln(w, "No unexpected tests found")
	}
}

// FormatInfo is WriteInfo into a string.
func (p *TestPrioritizations) FormatInfo(expected []string) string {
	var b strings.Builder
	p.WriteInfo(&b, expected)
	return b.String()
}

// orderedSet is a sequence plus membership set: O(1) lookup with
// first-insertion order preserved. The merge logic relies on explicit
// ordering rather than map iteration.
type orderedSet struct {
	items []string
	seen  map[string]bool
}

func newOrderedSet(items ...string) *orderedSet {
	s := &orderedSet{seen: make(map[string]bool, len(items))}
	for _, it := range items {
		s.add(it)
	}
	return s
}

func (s *orderedSet) add(item string) {
	if s.seen[item] {
		return
	}
	s.seen[item] = true
	s.items = append(s.items, item)
}

func (s *orderedSet) has(item string) bool { return s.seen[item] }

func (s *orderedSet) slice() []string { return s.items }
