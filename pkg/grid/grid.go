// Package grid holds resolved table grids: a fully sized matrix of cell text
// plus the rectangular merge spans a document writer must apply.
//
// A [Grid] is produced by the layout package and is read-only afterwards.
// Writers do not index the matrix directly; they walk a [View], which tells
// them for every cell whether it is plain, the origin of a merge, or absorbed
// into one.
//
// Guarantees every Grid upholds:
//
//   - RowCount() == HeaderRowCount() + BodyRowCount()
//   - every row has exactly ColumnCount() cells
//   - every merge span lies within [0,RowCount()) × [0,ColumnCount())
//   - merge spans never overlap
//   - cells absorbed into a merge hold the empty string
package grid

import (
	"fmt"
	"slices"
)

// Cell addresses one grid cell, zero-based.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Span is an inclusive, axis-aligned rectangle of merged cells.
type Span struct {
	Start Cell `json:"start"`
	End   Cell `json:"end"`
}

// HSpan returns a single-row span covering columns [from, to].
func HSpan(row, from, to int) Span {
	return Span{Start: Cell{row, from}, End: Cell{row, to}}
}

// VSpan returns a single-column span covering rows [from, to].
func VSpan(col, from, to int) Span {
	return Span{Start: Cell{from, col}, End: Cell{to, col}}
}

// Width is the number of columns the span covers.
func (s Span) Width() int { return s.End.Col - s.Start.Col + 1 }

// Height is the number of rows the span covers.
func (s Span) Height() int { return s.End.Row - s.Start.Row + 1 }

// Horizontal reports whether the span is a single row wider than one cell.
func (s Span) Horizontal() bool { return s.Height() == 1 && s.Width() > 1 }

// Vertical reports whether the span is a single column taller than one cell.
func (s Span) Vertical() bool { return s.Width() == 1 && s.Height() > 1 }

// Contains reports whether c lies inside the span.
func (s Span) Contains(c Cell) bool {
	return c.Row >= s.Start.Row && c.Row <= s.End.Row &&
		c.Col >= s.Start.Col && c.Col <= s.End.Col
}

// Overlaps reports whether the two spans share a cell.
func (s Span) Overlaps(o Span) bool {
	return s.Start.Row <= o.End.Row && o.Start.Row <= s.End.Row &&
		s.Start.Col <= o.End.Col && o.Start.Col <= s.End.Col
}

// String formats the span as [(r,c),(r,c)].
func (s Span) String() string {
	return fmt.Sprintf("[(%d,%d),(%d,%d)]", s.Start.Row, s.Start.Col, s.End.Row, s.End.Col)
}

// Grid is a resolved table. The zero value is an empty grid.
type Grid struct {
	caption    string
	headerRows int
	cols       int
	cells      [][]string
	merges     []Span
}

// Caption returns the table caption.
func (g *Grid) Caption() string { return g.caption }

// HeaderRowCount returns the number of header rows.
func (g *Grid) HeaderRowCount() int { return g.headerRows }

// RowCount returns the number of rows, header rows included.
func (g *Grid) RowCount() int { return len(g.cells) }

// BodyRowCount returns the number of rows below the header.
func (g *Grid) BodyRowCount() int { return len(g.cells) - g.headerRows }

// ColumnCount returns the number of columns.
func (g *Grid) ColumnCount() int { return g.cols }

// Cell returns the text of one cell. It panics when out of range, like a
// slice index would.
func (g *Grid) Cell(row, col int) string { return g.cells[row][col] }

// Row returns a copy of one row.
func (g *Grid) Row(row int) []string { return slices.Clone(g.cells[row]) }

// Merges returns a copy of the merge spans in the order they were added.
func (g *Grid) Merges() []Span { return slices.Clone(g.merges) }

// Column returns a copy of one column restricted to body rows.
func (g *Grid) Column(col int) []string {
	out := make([]string, 0, g.BodyRowCount())
	for r := g.headerRows; r < len(g.cells); r++ {
		out = append(out, g.cells[r][col])
	}
	return out
}
