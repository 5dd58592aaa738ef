package sink

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/tlfs/pkg/grid"
	"github.com/matzehuels/tlfs/pkg/report"
)

var (
	textTitleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	textSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	textCaptionStyle = lipgloss.NewStyle().Italic(true)
	textHeaderStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1).Align(lipgloss.Center)
	textCellStyle    = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)
	textLabelStyle   = lipgloss.NewStyle().Padding(0, 1)
	textBorderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderText renders the report as boxed terminal tables. Header rows above
// the last one are drawn as leading rows in the header style, and the text
// of a vertical header merge moves to the last row it covers.
func RenderText(r *report.Report, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)
	var buf bytes.Buffer

	if r.Title != "" {
		fmt.Fprintf(&buf, "%s\n\n", textTitleStyle.Render(r.Title))
	}
	var section func(string) error
	if o.sectionTitles {
		section = func(title string) error {
			fmt.Fprintf(&buf, "%s\n\n", textSectionStyle.Render(title))
			return nil
		}
	}
	err := walk(r, section, func(n int, g *grid.Grid) error {
		fmt.Fprintf(&buf, "%s\n%s\n\n", textCaptionStyle.Render(o.caption(n, g)), TextTable(g))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TextTable renders one grid as a lipgloss table.
func TextTable(g *grid.Grid) string {
	h := g.HeaderRowCount()
	rows := make([][]string, g.RowCount())
	for r := range rows {
		rows[r] = g.Row(r)
	}
	for _, m := range g.Merges() {
		if m.Height() > 1 && m.End.Row < h {
			rows[m.End.Row][m.Start.Col] = rows[m.Start.Row][m.Start.Col]
			rows[m.Start.Row][m.Start.Col] = ""
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(textBorderStyle)

	lead := 0
	if h > 0 {
		t = t.Headers(rows[h-1]...)
		lead = h - 1
		t = t.Rows(append(rows[:h-1:h-1], rows[h:]...)...)
	} else {
		t = t.Rows(rows...)
	}

	t = t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow, row < lead:
			return textHeaderStyle
		case col == 0:
			return textLabelStyle
		default:
			return textCellStyle
		}
	})
	return t.Render()
}
