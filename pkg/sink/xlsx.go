package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/grid"
	"github.com/matzehuels/tlfs/pkg/report"
)

const maxSheetName = 31

// RenderXLSX renders the report as a workbook with one worksheet per
// section. Tables are placed below each other with their caption above and
// one blank row between them; merges become merged cell ranges.
func RenderXLSX(r *report.Report, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create header style")
	}
	captionStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Italic: true}})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create caption style")
	}

	names := sheetNames(r)
	if len(names) == 0 {
		names = []string{"Tables"}
	}
	if err := f.SetSheetName(f.GetSheetName(0), names[0]); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "name sheet %q", names[0])
	}
	for _, name := range names[1:] {
		if _, err := f.NewSheet(name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "add sheet %q", name)
		}
	}

	n := 0
	for si, s := range r.Sections {
		sheet := names[si]
		row := 1
		if o.sectionTitles {
			if err := f.SetCellValue(sheet, "A1", s.Title); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "sheet %q", sheet)
			}
			_ = f.SetCellStyle(sheet, "A1", "A1", captionStyle)
			row = 3
		}
		for _, g := range s.Grids {
			n++
			next, err := writeSheetTable(f, sheet, row, o.caption(n, g), g, header, captionStyle)
			if err != nil {
				return nil, err
			}
			row = next + 1
		}
		_ = f.SetColWidth(sheet, "A", "A", 28)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write workbook")
	}
	return buf.Bytes(), nil
}

// writeSheetTable writes caption and grid starting at the 1-based row and
// returns the first free row after the table.
func writeSheetTable(f *excelize.File, sheet string, row int, caption string, g *grid.Grid, header, captionStyle int) (int, error) {
	cell := func(r, c int) string {
		name, _ := excelize.CoordinatesToCellName(c+1, r)
		return name
	}

	if err := f.SetCellValue(sheet, cell(row, 0), caption); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "sheet %q caption", sheet)
	}
	_ = f.SetCellStyle(sheet, cell(row, 0), cell(row, 0), captionStyle)
	top := row + 1

	for r := 0; r < g.RowCount(); r++ {
		values := make([]any, g.ColumnCount())
		for c, v := range g.Row(r) {
			values[c] = v
		}
		if err := f.SetSheetRow(sheet, cell(top+r, 0), &values); err != nil {
			return 0, errors.Wrap(errors.ErrCodeInternal, err, "sheet %q row %d", sheet, top+r)
		}
	}
	if g.HeaderRowCount() > 0 {
		last := cell(top+g.HeaderRowCount()-1, g.ColumnCount()-1)
		if err := f.SetCellStyle(sheet, cell(top, 0), last, header); err != nil {
			return 0, errors.Wrap(errors.ErrCodeInternal, err, "sheet %q header style", sheet)
		}
	}
	for _, m := range g.Merges() {
		from := cell(top+m.Start.Row, m.Start.Col)
		to := cell(top+m.End.Row, m.End.Col)
		if err := f.MergeCell(sheet, from, to); err != nil {
			return 0, errors.Wrap(errors.ErrCodeInternal, err, "sheet %q merge %s", sheet, m)
		}
	}
	return top + g.RowCount() + 1, nil
}

// sheetNames derives unique worksheet names from section titles.
func sheetNames(r *report.Report) []string {
	seen := make(map[string]bool)
	names := make([]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		base := sanitizeSheetName(s.Title)
		name := base
		for i := 2; seen[strings.ToLower(name)]; i++ {
			suffix := fmt.Sprintf(" (%d)", i)
			name = truncate(base, maxSheetName-len(suffix)) + suffix
		}
		seen[strings.ToLower(name)] = true
		names = append(names, name)
	}
	return names
}

func sanitizeSheetName(title string) string {
	title = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	title = strings.Trim(title, "'")
	if title == "" {
		title = report.DefaultSectionTitle
	}
	return truncate(title, maxSheetName)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
