package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

// Table renders a table in the effective mode: styled for terminals,
// pipe-delimited markdown otherwise.
func (r *Renderer) Table(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	h := make(table.Row, len(header))
	for i, col := range header {
		h[i] = col
	}
	t.AppendHeader(h)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, col := range row {
			tr[i] = col
		}
		t.AppendRow(tr)
	}

	if r.EffectiveMode() == ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
