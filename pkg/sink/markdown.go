package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/tlfs/pkg/grid"
	"github.com/matzehuels/tlfs/pkg/report"
)

// RenderMarkdown renders the report as Markdown pipe tables. Markdown has
// no merged cells: the merge origin keeps its text and absorbed cells stay
// blank. The separator line follows the last header row.
func RenderMarkdown(r *report.Report, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)
	var buf bytes.Buffer

	if r.Title != "" {
		fmt.Fprintf(&buf, "# %s\n\n", r.Title)
	}
	var section func(string) error
	if o.sectionTitles {
		section = func(title string) error {
			fmt.Fprintf(&buf, "## %s\n\n", title)
			return nil
		}
	}
	err := walk(r, section, func(n int, g *grid.Grid) error {
		fmt.Fprintf(&buf, "**%s**\n\n", mdEscape(o.caption(n, g)))
		writeMarkdownTable(&buf, g)
		buf.WriteByte('\n')
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeMarkdownTable(buf *bytes.Buffer, g *grid.Grid) {
	v := grid.NewView(g)
	for r, row := range v.Rows() {
		buf.WriteByte('|')
		for _, cell := range row {
			fmt.Fprintf(buf, " %s |", mdEscape(cell))
		}
		buf.WriteByte('\n')
		if r == g.HeaderRowCount()-1 || (g.HeaderRowCount() == 0 && r == 0) {
			buf.WriteByte('|')
			for c := range row {
				if c == 0 {
					buf.WriteString(" :--- |")
				} else {
					buf.WriteString(" :---: |")
				}
			}
			buf.WriteByte('\n')
		}
	}
}

var mdReplacer = strings.NewReplacer("|", `\|`, "\n", " ", "*", `\*`, "_", `\_`)

func mdEscape(s string) string { return mdReplacer.Replace(s) }
