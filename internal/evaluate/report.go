package evaluate

import (
	"fmt"
	"strings"

	"rankbench/internal/display"
	"rankbench/internal/format"
)

// SplitReport pairs a split name with its measured metrics.
type SplitReport struct {
	Name    string
	Metrics *SplitMetrics
}

// Report is the full evaluation result across splits.
type Report struct {
	Model  string
	Splits []SplitReport
}

// metricRows defines the table rows in display order.
var metricRows = []string{
	"acc_top1", "acc_top2", "acc_top5",
	"gap_top1", "gap_top2", "gap_top5", "gap_true",
	"outliers",
}

// FormatReport renders the evaluation report as a metrics table followed by
// per-split outlier dumps.
func FormatReport(r *Report, mode format.Mode) string {
	var b strings.Builder

	b.WriteString("=== Ranking Model Evaluation ===\n")
	b.WriteString(fmt.Sprintf("Model: %s\n", r.Model))
	for _, s := range r.Splits {
		b.WriteString(fmt.Sprintf("%-6s %d groups, %d outliers\n",
			s.Name+":", s.Metrics.Groups, len(s.Metrics.Outliers)))
	}
	b.WriteString("\n")

	tb := format.NewTable(mode)
	header := []string{"Metric"}
	for _, s := range r.Splits {
		header = append(header, s.Name)
	}
	tb.Header(header...)
	cols := make([]format.Column, len(r.Splits))
	for i := range r.Splits {
		cols[i] = format.Column{Number: i + 2, Right: true}
	}
	tb.Columns(cols...)

	for _, code := range metricRows {
		row := []any{display.Metric(code)}
		for _, s := range r.Splits {
			row = append(row, metricCell(code, s.Metrics))
		}
		tb.Row(row...)
	}
	tb.Render(&b)

	for _, s := range r.Splits {
		if len(s.Metrics.Outliers) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("\n--- %s outliers (top-1 worse than baseline by > threshold) ---\n", s.Name))
		for _, o := range s.Metrics.Outliers {
			b.WriteString(fmt.Sprintf("qid %d: top1=%.4f baseline=%.4f gap=%s\n",
				o.QID, o.Top1, o.Baseline, format.Signed(o.Top1-o.Baseline)))
			b.WriteString(fmt.Sprintf("  labels    %s\n", floats(o.Labels)))
			b.WriteString(fmt.Sprintf("  predicted %s\n", floats(o.Predicted)))
		}
	}

	return b.String()
}

func metricCell(code string, m *SplitMetrics) string {
	if m.Groups == 0 {
		return "n/a"
	}
	switch code {
	case "acc_top1":
		return format.Percent(m.AccTop1)
	case "acc_top2":
		return format.Percent(m.AccTop2)
	case "acc_top5":
		return format.Percent(m.AccTop5)
	case "gap_top1":
		return format.Signed(m.GapTop1)
	case "gap_top2":
		return format.Signed(m.GapTop2)
	case "gap_top5":
		return format.Signed(m.GapTop5)
	case "gap_true":
		return format.Signed(m.GapTrue)
	case "outliers":
		return fmt.Sprintf("%d (%s)", len(m.Outliers), format.Percent(m.OutlierRatio()))
	}
	return ""
}

func floats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%.4f", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
