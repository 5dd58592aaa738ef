package sink

import (
	"bytes"
	"html/template"

	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/grid"
	"github.com/matzehuels/tlfs/pkg/report"
)

type htmlCell struct {
	Text    string
	ColSpan int
	RowSpan int
	Header  bool
}

type htmlTable struct {
	Caption string
	Head    [][]htmlCell
	Body    [][]htmlCell
}

type htmlSection struct {
	Title  string
	Tables []htmlTable
}

type htmlPage struct {
	ID            string
	Title         string
	SectionTitles bool
	Sections      []htmlSection
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="report-id" content="{{.ID}}">
<title>{{if .Title}}{{.Title}}{{else}}Tables{{end}}</title>
<style>
body { font-family: Calibri, Arial, sans-serif; font-size: 10pt; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 2em; }
caption { caption-side: top; text-align: left; font-weight: bold; padding-bottom: .4em; }
th, td { border: 1px solid #000; padding: .2em .6em; text-align: center; vertical-align: middle; }
tbody th { text-align: left; font-weight: normal; }
</style>
</head>
<body>
{{- if .Title}}
<h1>{{.Title}}</h1>
{{- end}}
{{- range .Sections}}
{{- if $.SectionTitles}}
<h2>{{.Title}}</h2>
{{- end}}
{{- range .Tables}}
<table>
<caption>{{.Caption}}</caption>
<thead>
{{- range .Head}}
<tr>{{range .}}<th{{if gt .ColSpan 1}} colspan="{{.ColSpan}}"{{end}}{{if gt .RowSpan 1}} rowspan="{{.RowSpan}}"{{end}}>{{.Text}}</th>{{end}}</tr>
{{- end}}
</thead>
<tbody>
{{- range .Body}}
<tr>{{range .}}{{if .Header}}<th>{{.Text}}</th>{{else}}<td{{if gt .ColSpan 1}} colspan="{{.ColSpan}}"{{end}}{{if gt .RowSpan 1}} rowspan="{{.RowSpan}}"{{end}}>{{.Text}}</td>{{end}}{{end}}</tr>
{{- end}}
</tbody>
</table>
{{- end}}
{{- end}}
</body>
</html>
`))

// RenderHTML renders the report as a standalone HTML page. Merge origins get
// colspan and rowspan; absorbed cells are omitted.
func RenderHTML(r *report.Report, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)
	page := htmlPage{ID: r.ID.String(), Title: r.Title, SectionTitles: o.sectionTitles}

	n := 0
	for _, s := range r.Sections {
		sec := htmlSection{Title: s.Title}
		for _, g := range s.Grids {
			n++
			sec.Tables = append(sec.Tables, buildHTMLTable(o.caption(n, g), g))
		}
		page.Sections = append(page.Sections, sec)
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, page); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "execute html template")
	}
	return buf.Bytes(), nil
}

func buildHTMLTable(caption string, g *grid.Grid) htmlTable {
	v := grid.NewView(g)
	t := htmlTable{Caption: caption}
	for r, row := range v.Rows() {
		var cells []htmlCell
		for c, text := range row {
			cell := htmlCell{Text: text, ColSpan: 1, RowSpan: 1}
			switch v.Role(r, c) {
			case grid.RoleAbsorbed:
				continue
			case grid.RoleMergeOrigin:
				span, _ := v.SpanAt(r, c)
				cell.ColSpan, cell.RowSpan = span.Width(), span.Height()
			}
			cell.Header = r >= g.HeaderRowCount() && c == 0
			cells = append(cells, cell)
		}
		if r < g.HeaderRowCount() {
			t.Head = append(t.Head, cells)
		} else {
			t.Body = append(t.Body, cells)
		}
	}
	return t
}
