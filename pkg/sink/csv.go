package sink

import (
	"bytes"
	"encoding/csv"

	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/grid"
	"github.com/matzehuels/tlfs/pkg/report"
)

// RenderCSV writes each table as its caption row followed by the grid rows,
// with a blank line between tables. Section titles, when enabled, get a row
// of their own.
func RenderCSV(r *report.Report, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	first := true
	sep := func() error {
		if first {
			first = false
			return nil
		}
		return w.Write(nil)
	}
	var section func(string) error
	if o.sectionTitles {
		section = func(title string) error {
			if err := sep(); err != nil {
				return err
			}
			first = true
			return w.Write([]string{title})
		}
	}
	err := walk(r, section, func(n int, g *grid.Grid) error {
		if err := sep(); err != nil {
			return err
		}
		if err := w.Write([]string{o.caption(n, g)}); err != nil {
			return err
		}
		for row := 0; row < g.RowCount(); row++ {
			if err := w.Write(g.Row(row)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write csv")
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write csv")
	}
	return buf.Bytes(), nil
}
