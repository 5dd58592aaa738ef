package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/tlfs/pkg/grid"
	"github.com/matzehuels/tlfs/pkg/report"
)

// RenderLaTeX renders the report as a LaTeX document body: one table
// environment per grid using tabular, \multicolumn for horizontal merges and
// \multirow for vertical ones. The preamble needs the multirow package.
func RenderLaTeX(r *report.Report, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%% report %s\n", r.ID)
	buf.WriteString("% requires \\usepackage{multirow}\n")
	if r.Title != "" {
		fmt.Fprintf(&buf, "\\section*{%s}\n\n", texEscape(r.Title))
	}
	var section func(string) error
	if o.sectionTitles {
		section = func(title string) error {
			fmt.Fprintf(&buf, "\\subsection*{%s}\n\n", texEscape(title))
			return nil
		}
	}
	err := walk(r, section, func(n int, g *grid.Grid) error {
		writeTabular(&buf, o.caption(n, g), g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTabular(buf *bytes.Buffer, caption string, g *grid.Grid) {
	v := grid.NewView(g)
	cols := g.ColumnCount()

	buf.WriteString("\\begin{table}[htbp]\n\\centering\n")
	fmt.Fprintf(buf, "\\caption*{%s}\n", texEscape(caption))
	fmt.Fprintf(buf, "\\begin{tabular}{l%s}\n\\hline\n", strings.Repeat("c", cols-1))

	for r, row := range v.Rows() {
		var cells []string
		for c := 0; c < cols; c++ {
			span, merged := v.SpanAt(r, c)
			if merged && c != span.Start.Col {
				continue
			}
			text := texEscape(row[c])
			if merged && r == span.Start.Row && span.Height() > 1 {
				text = fmt.Sprintf("\\multirow{%d}{*}{%s}", span.Height(), text)
			}
			if merged && span.Width() > 1 {
				align := "c"
				if span.Start.Col == 0 {
					align = "l"
				}
				text = fmt.Sprintf("\\multicolumn{%d}{%s}{%s}", span.Width(), align, text)
			}
			cells = append(cells, text)
		}
		buf.WriteString(strings.Join(cells, " & "))
		buf.WriteString(" \\\\\n")
		if r == g.HeaderRowCount()-1 {
			buf.WriteString("\\hline\n")
		}
	}
	buf.WriteString("\\hline\n\\end{tabular}\n\\end{table}\n\n")
}

var texReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

func texEscape(s string) string { return texReplacer.Replace(s) }
