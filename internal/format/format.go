// Package format renders tabular CLI output. It wraps go-pretty behind a
// small project-owned interface so commands can switch between fixed-width
// terminal tables and GitHub-flavoured Markdown with one flag.
package format

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

// ModeFromFlag maps the --markdown flag to a Mode.
func ModeFromFlag(markdown bool) Mode {
	if markdown {
		return Markdown
	}
	return ASCII
}

// Column describes per-column formatting.
type Column struct {
	Number   int  // 1-based column index
	Right    bool // right-align (numeric columns)
	MaxWidth int  // wrap content beyond this width (0 = unlimited)
}

// Table accumulates rows and renders them in the configured Mode.
type Table interface {
	Header(cols ...string)
	Row(vals ...any)
	Footer(vals ...any)
	Columns(cols ...Column)
	// Render writes the table followed by a newline.
	Render(w io.Writer)
	String() string
}

// NewTable returns an empty Table rendering in the given Mode.
func NewTable(m Mode) Table {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return &prettyTable{writer: w, mode: m}
}

type prettyTable struct {
	writer table.Writer
	mode   Mode
}

func (t *prettyTable) Header(cols ...string) {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	t.writer.AppendHeader(row)
}

func (t *prettyTable) Row(vals ...any) {
	row := make(table.Row, len(vals))
	copy(row, vals)
	t.writer.AppendRow(row)
}

func (t *prettyTable) Footer(vals ...any) {
	row := make(table.Row, len(vals))
	copy(row, vals)
	t.writer.AppendFooter(row)
}

func (t *prettyTable) Columns(cols ...Column) {
	cfgs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		align := text.AlignDefault
		if c.Right {
			align = text.AlignRight
		}
		cfgs[i] = table.ColumnConfig{Number: c.Number, Align: align, WidthMax: c.MaxWidth}
	}
	t.writer.SetColumnConfigs(cfgs)
}

func (t *prettyTable) Render(w io.Writer) {
	fmt.Fprintln(w, t.String())
}

func (t *prettyTable) String() string {
	if t.mode == Markdown {
		return t.writer.RenderMarkdown()
	}
	return t.writer.Render()
}

// Percent formats a 0..1 ratio as "97.50%".
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// Signed formats a gap value with an explicit sign, e.g. "-0.1000".
func Signed(v float64) string {
	return fmt.Sprintf("%+.4f", v)
}
