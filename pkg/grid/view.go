package grid

import (
	"iter"
	"slices"
)

// Role classifies a cell with respect to the merge spans.
type Role int

const (
	// RoleNormal cells are not part of any merge.
	RoleNormal Role = iota
	// RoleMergeOrigin is the top-left cell of a merge; it carries the text.
	RoleMergeOrigin
	// RoleAbsorbed cells are covered by a merge and hold no text.
	RoleAbsorbed
)

// View is the iteration adapter document writers consume. It never
// recomputes layout: rows come straight from the grid and merges are
// returned as resolved.
type View struct {
	g     *Grid
	owner []int // span index per cell, -1 when unmerged
}

// NewView indexes the grid's merges for per-cell lookups.
func NewView(g *Grid) *View {
	v := &View{g: g, owner: make([]int, g.RowCount()*g.ColumnCount())}
	for i := range v.owner {
		v.owner[i] = -1
	}
	for i, m := range g.merges {
		for r := m.Start.Row; r <= m.End.Row; r++ {
			for c := m.Start.Col; c <= m.End.Col; c++ {
				v.owner[r*g.cols+c] = i
			}
		}
	}
	return v
}

// Grid returns the underlying grid.
func (v *View) Grid() *Grid { return v.g }

// Rows lazily yields each row index with a copy of its cells. Absorbed cells
// are empty strings, meaning "no visible text".
func (v *View) Rows() iter.Seq2[int, []string] {
	return func(yield func(int, []string) bool) {
		for r, row := range v.g.cells {
			if !yield(r, slices.Clone(row)) {
				return
			}
		}
	}
}

// HeaderRows yields only the header rows.
func (v *View) HeaderRows() iter.Seq2[int, []string] {
	return func(yield func(int, []string) bool) {
		for r := 0; r < v.g.headerRows; r++ {
			if !yield(r, slices.Clone(v.g.cells[r])) {
				return
			}
		}
	}
}

// BodyRows yields only the rows below the header.
func (v *View) BodyRows() iter.Seq2[int, []string] {
	return func(yield func(int, []string) bool) {
		for r := v.g.headerRows; r < len(v.g.cells); r++ {
			if !yield(r, slices.Clone(v.g.cells[r])) {
				return
			}
		}
	}
}

// Merges returns the merge spans unmodified.
func (v *View) Merges() []Span { return v.g.Merges() }

// Role classifies the cell at (row, col).
func (v *View) Role(row, col int) Role {
	s, ok := v.SpanAt(row, col)
	switch {
	case !ok:
		return RoleNormal
	case s.Start.Row == row && s.Start.Col == col:
		return RoleMergeOrigin
	default:
		return RoleAbsorbed
	}
}

// SpanAt returns the merge covering (row, col), if any.
func (v *View) SpanAt(row, col int) (Span, bool) {
	if row < 0 || row >= v.g.RowCount() || col < 0 || col >= v.g.cols {
		return Span{}, false
	}
	i := v.owner[row*v.g.cols+col]
	if i < 0 {
		return Span{}, false
	}
	return v.g.merges[i], true
}
