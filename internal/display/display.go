// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in CLI output, reports, and logs. Keep raw codes for
// JSON fields, map keys, and equality comparisons.
package display

// --- Relevance tiers ---

var tiers = map[string]string{
	"highly":   "Highly relevant",
	"probably": "Probably relevant",
	"unranked": "Unranked relevance",
}

// Tier returns the human-readable name for a tier code.
// Unknown codes are returned as-is.
func Tier(code string) string {
	if name, ok := tiers[code]; ok {
		return name
	}
	return code
}

// --- Evaluator metrics ---

var metrics = map[string]string{
	"acc_top1": "Top-1 accuracy",
	"acc_top2": "Top-2 accuracy",
	"acc_top5": "Top-5 accuracy",
	"gap_top1": "Top-1 mean gap",
	"gap_top2": "Top-2 mean gap",
	"gap_top5": "Top-5 mean gap",
	"gap_true": "Best achievable mean gap",
	"outliers": "Outlier groups",
}

// Metric returns the human-readable name for a metric code.
func Metric(code string) string {
	if name, ok := metrics[code]; ok {
		return name
	}
	return code
}

// MetricWithCode returns "Top-1 accuracy (acc_top1)" format.
func MetricWithCode(code string) string {
	if name, ok := metrics[code]; ok {
		return name + " (" + code + ")"
	}
	return code
}

// --- Test run statuses ---

var statuses = map[string]string{
	"passed":  "Passed",
	"failed":  "Failed",
	"skipped": "Skipped",
}

// Status returns the human-readable name for a run status code.
func Status(code string) string {
	if name, ok := statuses[code]; ok {
		return name
	}
	return code
}
