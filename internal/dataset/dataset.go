// Package dataset loads and validates the candidate-ranking data splits.
//
// A split holds four index-aligned arrays: one feature vector, one measured
// cost, and one baseline cost per candidate row, plus the group id (qid) that
// ties rows belonging to the same tuning decision together. Rows sharing a
// qid must be contiguous; the loader verifies this instead of re-sorting.
package dataset

import (
	"fmt"
	"sort"
)

// Split is one half of a train/test dataset.
type Split struct {
	// X holds one feature vector per candidate row.
	X [][]float64 `yaml:"x" json:"x"`
	// Y holds the measured cost per candidate row (lower is better).
	Y []float64 `yaml:"y" json:"y"`
	// YBaseline holds the baseline cost, repeated for every row of a group.
	YBaseline []float64 `yaml:"y_baseline" json:"y_baseline"`
	// QID holds the group id per row. Rows of a group are contiguous.
	QID []int `yaml:"qid" json:"qid"`
}

// Group is one contiguous run of rows sharing a qid.
type Group struct {
	QID      int
	X        [][]float64
	Y        []float64
	Baseline float64
}

// Len returns the number of candidate rows in the split.
func (s *Split) Len() int { return len(s.QID) }

// Validate checks array alignment and qid contiguity.
func (s *Split) Validate() error {
	n := len(s.QID)
	if len(s.X) != n || len(s.Y) != n || len(s.YBaseline) != n {
		return fmt.Errorf("misaligned split: x=%d y=%d y_baseline=%d qid=%d",
			len(s.X), len(s.Y), len(s.YBaseline), n)
	}
	seen := make(map[int]bool)
	for i := 0; i < n; i++ {
		if i > 0 && s.QID[i] == s.QID[i-1] {
			continue
		}
		if seen[s.QID[i]] {
			return fmt.Errorf("qid %d is not contiguous (reappears at row %d)", s.QID[i], i)
		}
		seen[s.QID[i]] = true
	}
	return nil
}

// Groups splits the rows into per-qid groups, ordered by ascending qid.
// Call Validate first; Groups assumes contiguous runs.
func (s *Split) Groups() []Group {
	var groups []Group
	for i := 0; i < len(s.QID); {
		j := i
		for j < len(s.QID) && s.QID[j] == s.QID[i] {
			j++
		}
		groups = append(groups, Group{
			QID:      s.QID[i],
			X:        s.X[i:j],
			Y:        s.Y[i:j],
			Baseline: s.YBaseline[i],
		})
		i = j
	}
	sort.Slice(groups, func(a, b int) bool { return groups[a].QID < groups[b].QID })
	return groups
}

// CheckDisjoint verifies that no qid appears in both splits. Overlap means
// the evaluation split leaked into training, which invalidates every metric,
// so this is a fatal condition.
func CheckDisjoint(train, test *Split) error {
	trainIDs := make(map[int]bool, len(train.QID))
	for _, id := range train.QID {
		trainIDs[id] = true
	}
	var shared []int
	seen := make(map[int]bool)
	for _, id := range test.QID {
		if trainIDs[id] && !seen[id] {
			shared = append(shared, id)
			seen[id] = true
		}
	}
	if len(shared) > 0 {
		sort.Ints(shared)
		if len(shared) > 5 {
			return fmt.Errorf("train/test qid overlap: %d shared groups (first: %v)", len(shared), shared[:5])
		}
		return fmt.Errorf("train/test qid overlap: %v", shared)
	}
	return nil
}
