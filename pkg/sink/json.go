package sink

import (
	"encoding/json"

	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/grid"
	"github.com/matzehuels/tlfs/pkg/report"
)

type jsonOutput struct {
	ID       string        `json:"id"`
	Title    string        `json:"title,omitempty"`
	Tables   int           `json:"tables"`
	Sections []jsonSection `json:"sections"`
}

type jsonSection struct {
	Title  string      `json:"title"`
	Tables []jsonTable `json:"tables"`
}

type jsonTable struct {
	Number     int         `json:"number"`
	Caption    string      `json:"caption"`
	HeaderRows int         `json:"header_rows"`
	Rows       int         `json:"rows"`
	Columns    int         `json:"columns"`
	Cells      [][]string  `json:"cells"`
	Merges     []grid.Span `json:"merges"`
}

// RenderJSON exports the grid model of every table, merges included. The
// caption is never numbered here; Number carries the position instead.
func RenderJSON(r *report.Report, opts ...Option) ([]byte, error) {
	out := jsonOutput{
		ID:       r.ID.String(),
		Title:    r.Title,
		Tables:   r.TableCount(),
		Sections: make([]jsonSection, 0, len(r.Sections)),
	}
	n := 0
	for _, s := range r.Sections {
		sec := jsonSection{Title: s.Title, Tables: make([]jsonTable, 0, len(s.Grids))}
		for _, g := range s.Grids {
			n++
			t := jsonTable{
				Number:     n,
				Caption:    g.Caption(),
				HeaderRows: g.HeaderRowCount(),
				Rows:       g.RowCount(),
				Columns:    g.ColumnCount(),
				Cells:      make([][]string, g.RowCount()),
				Merges:     g.Merges(),
			}
			for row := range t.Cells {
				t.Cells[row] = g.Row(row)
			}
			if t.Merges == nil {
				t.Merges = []grid.Span{}
			}
			sec.Tables = append(sec.Tables, t)
		}
		out.Sections = append(out.Sections, sec)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal json")
	}
	return append(data, '\n'), nil
}
