package grid

import (
	"github.com/matzehuels/tlfs/pkg/errors"
)

// Builder fills a grid of fixed size. Set cells and merges in any order,
// then call Build once.
type Builder struct {
	headerRows int
	cols       int
	cells      [][]string
	merges     []Span
	err        error
}

// NewBuilder allocates a rows×cols buffer of empty cells. headerRows must be
// within [0, rows].
func NewBuilder(rows, cols, headerRows int) *Builder {
	b := &Builder{headerRows: headerRows, cols: cols}
	if rows < 0 || cols < 1 || headerRows < 0 || headerRows > rows {
		b.err = errors.New(errors.ErrCodeInternal,
			"invalid grid size %dx%d with %d header rows", rows, cols, headerRows)
		return b
	}
	buf := make([]string, rows*cols)
	b.cells = make([][]string, rows)
	for r := range b.cells {
		b.cells[r] = buf[r*cols : (r+1)*cols : (r+1)*cols]
	}
	return b
}

// Set writes one cell. Out-of-range writes are recorded and reported by Build.
func (b *Builder) Set(row, col int, text string) *Builder {
	if b.err != nil {
		return b
	}
	if !b.inBounds(Cell{row, col}) {
		b.err = errors.New(errors.ErrCodeInternal, "cell (%d,%d) outside %dx%d grid", row, col, len(b.cells), b.cols)
		return b
	}
	b.cells[row][col] = text
	return b
}

// SetRow writes consecutive cells of one row starting at column from.
func (b *Builder) SetRow(row, from int, texts ...string) *Builder {
	for i, t := range texts {
		b.Set(row, from+i, t)
	}
	return b
}

// Merge records a merge span. Spans must lie inside the grid, be ordered
// start-before-end and not overlap earlier spans.
func (b *Builder) Merge(s Span) *Builder {
	if b.err != nil {
		return b
	}
	if s.Start.Row > s.End.Row || s.Start.Col > s.End.Col {
		b.err = errors.New(errors.ErrCodeInternal, "merge %s is reversed", s)
		return b
	}
	if !b.inBounds(s.Start) || !b.inBounds(s.End) {
		b.err = errors.New(errors.ErrCodeInternal, "merge %s outside %dx%d grid", s, len(b.cells), b.cols)
		return b
	}
	for _, m := range b.merges {
		if m.Overlaps(s) {
			b.err = errors.New(errors.ErrCodeInternal, "merge %s overlaps %s", s, m)
			return b
		}
	}
	b.merges = append(b.merges, s)
	return b
}

// Build returns the finished grid. Cells absorbed into a merge are blanked so
// only the top-left origin of each span carries text. The builder must not
// be used afterwards.
func (b *Builder) Build(caption string) (*Grid, error) {
	if b.err != nil {
		return nil, b.err
	}
	for _, m := range b.merges {
		for r := m.Start.Row; r <= m.End.Row; r++ {
			for c := m.Start.Col; c <= m.End.Col; c++ {
				if r != m.Start.Row || c != m.Start.Col {
					b.cells[r][c] = ""
				}
			}
		}
	}
	g := &Grid{
		caption:    caption,
		headerRows: b.headerRows,
		cols:       b.cols,
		cells:      b.cells,
		merges:     b.merges,
	}
	b.cells, b.merges = nil, nil
	return g, nil
}

func (b *Builder) inBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < len(b.cells) && c.Col >= 0 && c.Col < b.cols
}
