package evaluate

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"rankbench/internal/dataset"
	"rankbench/internal/logging"
)

// DefaultOutlierThreshold flags groups where the model's top pick is worse
// than the baseline by more than this much.
const DefaultOutlierThreshold = 0.05

// Options tunes a Measure run.
type Options struct {
	// OutlierThreshold overrides DefaultOutlierThreshold when > 0.
	OutlierThreshold float64
	// Parallel is the number of concurrent scoring workers; <= 1 means serial.
	Parallel int
}

// Outlier describes a group where the top-1 choice regressed past the
// threshold, kept for the diagnostic dump in the report.
type Outlier struct {
	QID       int
	Labels    []float64 // measured costs, input order
	Predicted []float64 // measured costs, model preference order
	Baseline  float64
	Top1      float64
}

// SplitMetrics accumulates the evaluation results for one split.
type SplitMetrics struct {
	Groups int

	// AccTopK is the fraction of groups where the best of the model's
	// top-K candidates is at least as good as the baseline. Zero when the
	// split has no groups.
	AccTop1 float64
	AccTop2 float64
	AccTop5 float64

	// GapTopK is the mean (chosen − baseline) over all groups; negative
	// means the model beat the baseline. GapTrue uses the group's true
	// minimum, i.e. the best any ranking could have achieved.
	GapTop1 float64
	GapTop2 float64
	GapTop5 float64
	GapTrue float64

	Outliers []Outlier
}

// OutlierRatio is the fraction of groups flagged as outliers.
func (m *SplitMetrics) OutlierRatio() float64 {
	return ratio(len(m.Outliers), m.Groups)
}

// Measure evaluates the model on one split: for each qid group it ranks the
// candidates by model score and compares the top-1/2/5 picks to the baseline.
// An empty split yields zero metrics rather than a division by zero.
func Measure(ctx context.Context, m Model, split *dataset.Split, opts Options) (*SplitMetrics, error) {
	groups := split.Groups()
	metrics := &SplitMetrics{Groups: len(groups)}
	if len(groups) == 0 {
		return metrics, nil
	}

	threshold := opts.OutlierThreshold
	if threshold <= 0 {
		threshold = DefaultOutlierThreshold
	}

	// Score every group first (optionally in parallel), then accumulate
	// serially so results are deterministic regardless of worker order.
	predicted := make([][]float64, len(groups))
	if opts.Parallel > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Parallel)
		for i := range groups {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				ordered, err := scoreGroup(m, groups[i])
				if err != nil {
					return err
				}
				predicted[i] = ordered
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range groups {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			ordered, err := scoreGroup(m, groups[i])
			if err != nil {
				return nil, err
			}
			predicted[i] = ordered
		}
	}

	logger := logging.New("evaluate")
	var acc1, acc2, acc5 int
	for i, g := range groups {
		ordered := predicted[i]
		top1 := prefixMin(ordered, 1)
		top2 := prefixMin(ordered, 2)
		top5 := prefixMin(ordered, 5)
		best := prefixMin(ordered, len(ordered))

		if top1 <= g.Baseline {
			acc1++
		}
		if top2 <= g.Baseline {
			acc2++
		}
		if top5 <= g.Baseline {
			acc5++
		}
		metrics.GapTop1 += top1 - g.Baseline
		metrics.GapTop2 += top2 - g.Baseline
		metrics.GapTop5 += top5 - g.Baseline
		metrics.GapTrue += best - g.Baseline

		if top1-g.Baseline > threshold {
			metrics.Outliers = append(metrics.Outliers, Outlier{
				QID:       g.QID,
				Labels:    g.Y,
				Predicted: ordered,
				Baseline:  g.Baseline,
				Top1:      top1,
			})
			logger.Debug("ranking outlier",
				"qid", g.QID, "top1", top1, "baseline", g.Baseline)
		}
	}

	n := float64(len(groups))
	metrics.AccTop1 = float64(acc1) / n
	metrics.AccTop2 = float64(acc2) / n
	metrics.AccTop5 = float64(acc5) / n
	metrics.GapTop1 /= n
	metrics.GapTop2 /= n
	metrics.GapTop5 /= n
	metrics.GapTrue /= n

	return metrics, nil
}

// labelsByScore returns labels reordered by ascending score. Ties keep the
// input order so repeated runs produce identical rankings.
func labelsByScore(labels, scores []float64) []float64 {
	idx := make([]int, len(labels))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] < scores[idx[b]] })
	out := make([]float64, len(labels))
	for i, j := range idx {
		out[i] = labels[j]
	}
	return out
}

// prefixMin returns the minimum of the first k values (k clamped to len).
func prefixMin(vals []float64, k int) float64 {
	if k > len(vals) {
		k = len(vals)
	}
	min := vals[0]
	for _, v := range vals[1:k] {
		if v < min {
			min = v
		}
	}
	return min
}

func ratio(num, denom int) float64 {
	if denom == 0 {
		return 0
	}
	return float64(num) / float64(denom)
}
