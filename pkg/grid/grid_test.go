package grid

import (
	"slices"
	"testing"

	"github.com/matzehuels/tlfs/pkg/errors"
)

func buildTwoHeader(t *testing.T) *Grid {
	t.Helper()
	b := NewBuilder(4, 4, 2)
	b.SetRow(0, 0, "Age", "Treatment", "ignored", "ignored")
	b.SetRow(1, 0, "ignored", "EXP", "CTRL", "Tot")
	b.SetRow(2, 0, "median", "x", "x", "x")
	b.SetRow(3, 0, "iqr", "x", "x", "x")
	b.Merge(HSpan(0, 1, 3)).Merge(VSpan(0, 0, 1))
	g, err := b.Build("Age by treatment")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestSpanGeometry(t *testing.T) {
	tests := []struct {
		name       string
		span       Span
		width      int
		height     int
		horizontal bool
		vertical   bool
	}{
		{"horizontal", HSpan(0, 1, 3), 3, 1, true, false},
		{"vertical", VSpan(0, 0, 1), 1, 2, false, true},
		{"single cell", HSpan(0, 2, 2), 1, 1, false, false},
		{"block", Span{Cell{0, 0}, Cell{1, 1}}, 2, 2, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Width(); got != tt.width {
				t.Errorf("Width() = %d, want %d", got, tt.width)
			}
			if got := tt.span.Height(); got != tt.height {
				t.Errorf("Height() = %d, want %d", got, tt.height)
			}
			if got := tt.span.Horizontal(); got != tt.horizontal {
				t.Errorf("Horizontal() = %v, want %v", got, tt.horizontal)
			}
			if got := tt.span.Vertical(); got != tt.vertical {
				t.Errorf("Vertical() = %v, want %v", got, tt.vertical)
			}
		})
	}
}

func TestSpanOverlapsAndContains(t *testing.T) {
	a := HSpan(0, 1, 3)
	if !a.Contains(Cell{0, 2}) || a.Contains(Cell{1, 2}) {
		t.Error("Contains() mismatch")
	}
	if a.Overlaps(VSpan(0, 0, 1)) {
		t.Error("row span and column-0 span should not overlap")
	}
	if !a.Overlaps(VSpan(3, 0, 1)) {
		t.Error("spans sharing (0,3) should overlap")
	}
	if got := a.String(); got != "[(0,1),(0,3)]" {
		t.Errorf("String() = %q, want %q", got, "[(0,1),(0,3)]")
	}
}

func TestBuildBlanksAbsorbedCells(t *testing.T) {
	g := buildTwoHeader(t)

	if got := g.Row(0); !slices.Equal(got, []string{"Age", "Treatment", "", ""}) {
		t.Errorf("Row(0) = %q", got)
	}
	if got := g.Cell(1, 0); got != "" {
		t.Errorf("Cell(1,0) = %q, want empty (absorbed)", got)
	}
	if g.RowCount() != g.HeaderRowCount()+g.BodyRowCount() {
		t.Errorf("RowCount %d != header %d + body %d", g.RowCount(), g.HeaderRowCount(), g.BodyRowCount())
	}
	if got := g.Column(0); !slices.Equal(got, []string{"median", "iqr"}) {
		t.Errorf("Column(0) = %v", got)
	}
	if g.Caption() != "Age by treatment" {
		t.Errorf("Caption() = %q", g.Caption())
	}
}

func TestGridAccessorsReturnCopies(t *testing.T) {
	g := buildTwoHeader(t)
	row := g.Row(2)
	row[0] = "changed"
	merges := g.Merges()
	merges[0] = Span{}
	if g.Cell(2, 0) != "median" {
		t.Error("Row() exposed internal storage")
	}
	if g.Merges()[0] != HSpan(0, 1, 3) {
		t.Error("Merges() exposed internal storage")
	}
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Builder
	}{
		{"bad size", func() *Builder { return NewBuilder(1, 0, 0) }},
		{"too many header rows", func() *Builder { return NewBuilder(1, 2, 2) }},
		{"set out of range", func() *Builder { return NewBuilder(2, 2, 1).Set(2, 0, "x") }},
		{"merge out of range", func() *Builder { return NewBuilder(2, 2, 1).Merge(HSpan(0, 0, 2)) }},
		{"reversed merge", func() *Builder { return NewBuilder(2, 2, 1).Merge(HSpan(0, 1, 0)) }},
		{"overlapping merges", func() *Builder {
			return NewBuilder(2, 3, 1).Merge(HSpan(0, 0, 1)).Merge(HSpan(0, 1, 2))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build().Build("")
			if !errors.Is(err, errors.ErrCodeInternal) {
				t.Errorf("Build() error = %v, want %s", err, errors.ErrCodeInternal)
			}
		})
	}
}

func TestViewRoles(t *testing.T) {
	v := NewView(buildTwoHeader(t))

	tests := []struct {
		row, col int
		want     Role
	}{
		{0, 0, RoleMergeOrigin},
		{1, 0, RoleAbsorbed},
		{0, 1, RoleMergeOrigin},
		{0, 2, RoleAbsorbed},
		{0, 3, RoleAbsorbed},
		{1, 1, RoleNormal},
		{3, 3, RoleNormal},
		{9, 9, RoleNormal},
	}
	for _, tt := range tests {
		if got := v.Role(tt.row, tt.col); got != tt.want {
			t.Errorf("Role(%d,%d) = %v, want %v", tt.row, tt.col, got, tt.want)
		}
	}

	s, ok := v.SpanAt(0, 3)
	if !ok || s != HSpan(0, 1, 3) {
		t.Errorf("SpanAt(0,3) = %v, %v", s, ok)
	}
}

func TestViewRows(t *testing.T) {
	g := buildTwoHeader(t)
	v := NewView(g)

	var n int
	for r, row := range v.Rows() {
		if len(row) != g.ColumnCount() {
			t.Errorf("row %d has %d cells, want %d", r, len(row), g.ColumnCount())
		}
		n++
	}
	if n != g.RowCount() {
		t.Errorf("Rows() yielded %d rows, want %d", n, g.RowCount())
	}

	var header, body []int
	for r := range v.HeaderRows() {
		header = append(header, r)
	}
	for r := range v.BodyRows() {
		body = append(body, r)
	}
	if !slices.Equal(header, []int{0, 1}) || !slices.Equal(body, []int{2, 3}) {
		t.Errorf("HeaderRows() = %v, BodyRows() = %v", header, body)
	}

	for r := range v.Rows() {
		if r == 1 {
			break
		}
	}

	if got := v.Merges(); len(got) != 2 {
		t.Errorf("len(Merges()) = %d, want 2", len(got))
	}
}
