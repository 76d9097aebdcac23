package format_test

import (
	"bytes"
	"strings"
	"testing"

	"rankbench/internal/format"
)

func TestASCIIBasicTable(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Metric", "Train", "Test")
	tb.Row("acc_top1", "97.50%", "88.00%")
	out := tb.String()

	if !strings.Contains(out, "Metric") {
		t.Errorf("expected header 'Metric' in output:\n%s", out)
	}
	if !strings.Contains(out, "97.50%") {
		t.Errorf("expected '97.50%%' in output:\n%s", out)
	}
	// ASCII mode uses StyleLight box-drawing characters
	if !strings.Contains(out, "───") {
		t.Errorf("expected box-drawing characters in ASCII output:\n%s", out)
	}
}

func TestMarkdownBasicTable(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Tier", "Count")
	tb.Row("highly relevant", 3)
	out := tb.String()

	if !strings.Contains(out, "| Tier") {
		t.Errorf("expected markdown header with '| Tier':\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected markdown separator '---':\n%s", out)
	}
}

func TestFooterAndColumns(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Group", "Gap")
	tb.Row("g1", "-0.1000")
	tb.Footer("TOTAL", "-0.1000")
	tb.Columns(format.Column{Number: 2, Right: true})
	out := tb.String()

	if !strings.Contains(out, "TOTAL") {
		t.Errorf("expected footer 'TOTAL' in output:\n%s", out)
	}
}

func TestRenderWritesTrailingNewline(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("A")
	tb.Row("x")

	var buf bytes.Buffer
	tb.Render(&buf)
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("Render output should end with a newline")
	}
}

func TestModeFromFlag(t *testing.T) {
	if format.ModeFromFlag(true) != format.Markdown {
		t.Error("ModeFromFlag(true) should be Markdown")
	}
	if format.ModeFromFlag(false) != format.ASCII {
		t.Error("ModeFromFlag(false) should be ASCII")
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00%"},
		{0.975, "97.50%"},
		{1, "100.00%"},
	}
	for _, tt := range tests {
		if got := format.Percent(tt.in); got != tt.want {
			t.Errorf("Percent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSigned(t *testing.T) {
	if got := format.Signed(-0.1); got != "-0.1000" {
		t.Errorf("Signed(-0.1) = %q, want -0.1000", got)
	}
	if got := format.Signed(0.05); got != "+0.0500" {
		t.Errorf("Signed(0.05) = %q, want +0.0500", got)
	}
}
