package layout

import (
	"slices"
	"testing"

	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/grid"
	"github.com/matzehuels/tlfs/pkg/variable"
)

func mustQuantity(t *testing.T, desc string, opts ...variable.QuantityOption) *variable.Quantity {
	t.Helper()
	q, err := variable.NewQuantity(desc, opts...)
	if err != nil {
		t.Fatalf("NewQuantity(%q): %v", desc, err)
	}
	return q
}

func mustCategory(t *testing.T, desc string, groups []string, opts ...variable.CategoryOption) *variable.Category {
	t.Helper()
	c, err := variable.NewCategory(desc, groups, opts...)
	if err != nil {
		t.Fatalf("NewCategory(%q): %v", desc, err)
	}
	return c
}

func mustItemset(t *testing.T, desc string, items, contents []string) *variable.Itemset {
	t.Helper()
	s, err := variable.NewItemset(desc, items, contents, "")
	if err != nil {
		t.Fatalf("NewItemset(%q): %v", desc, err)
	}
	return s
}

func treatment(t *testing.T) *variable.Category {
	return mustCategory(t, "Treatment", []string{"EXP", "CTRL"})
}

func TestResolveQuantity(t *testing.T) {
	age := mustQuantity(t, "Age", variable.WithUnit("years"), variable.WithDisplay("median", "25pct", "75pct"))

	g, err := TableSpec{X: age}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if g.RowCount() != 4 || g.ColumnCount() != 2 || g.HeaderRowCount() != 1 {
		t.Fatalf("shape = %dx%d (header %d), want 4x2 (header 1)", g.RowCount(), g.ColumnCount(), g.HeaderRowCount())
	}
	if got := g.Row(0); !slices.Equal(got, []string{"Age (years)", "All"}) {
		t.Errorf("header = %q", got)
	}
	if got := g.Column(0); !slices.Equal(got, []string{"median", "25pct", "75pct"}) {
		t.Errorf("Column(0) = %q", got)
	}
	if got := g.Column(1); !slices.Equal(got, []string{"x", "x", "x"}) {
		t.Errorf("Column(1) = %q", got)
	}
	if len(g.Merges()) != 0 {
		t.Errorf("Merges() = %v, want none", g.Merges())
	}
	if g.Caption() != "Age" {
		t.Errorf("Caption() = %q, want %q", g.Caption(), "Age")
	}
}

func TestResolveQuantityDefaultDisplay(t *testing.T) {
	g, err := TableSpec{X: mustQuantity(t, "Weight")}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got, want := g.RowCount(), 1+len(variable.DefaultDisplay); got != want {
		t.Errorf("RowCount() = %d, want %d", got, want)
	}
}

func TestResolveCategory(t *testing.T) {
	sex := mustCategory(t, "Sex", []string{"F", "M"}, variable.WithMissing(), variable.WithTotal())

	g, err := Resolve(TableSpec{X: sex})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := g.Row(0); !slices.Equal(got, []string{"Sex", variable.DefaultDisplayMode}) {
		t.Errorf("header = %q", got)
	}
	if got := g.Column(0); !slices.Equal(got, []string{"F", "M", "NA", "Tot"}) {
		t.Errorf("Column(0) = %q", got)
	}
	if got := g.Cell(1, 1); got != variable.DefaultCategoryTemplate {
		t.Errorf("Cell(1,1) = %q, want %q", got, variable.DefaultCategoryTemplate)
	}
}

func TestResolveQuantityByCategory(t *testing.T) {
	age := mustQuantity(t, "Age", variable.WithDisplay("mean", "sd"))
	trt := treatment(t)

	g, err := TableSpec{X: age, Y: trt}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	groups := len(trt.Groups())
	if got, want := g.ColumnCount(), groups+3; got != want {
		t.Errorf("ColumnCount() = %d, want %d", got, want)
	}
	if g.HeaderRowCount() != 2 {
		t.Errorf("HeaderRowCount() = %d, want 2", g.HeaderRowCount())
	}
	if got := g.Row(1); !slices.Equal(got, []string{"", "EXP", "CTRL", "NA", "Tot"}) {
		t.Errorf("Row(1) = %q", got)
	}
	if got := g.Row(0); !slices.Equal(got, []string{"Age", "Treatment", "", "", ""}) {
		t.Errorf("Row(0) = %q", got)
	}

	merges := g.Merges()
	if len(merges) != 2 {
		t.Fatalf("len(Merges()) = %d, want 2", len(merges))
	}
	if !slices.Contains(merges, grid.VSpan(0, 0, 1)) {
		t.Errorf("Merges() = %v, missing %v", merges, grid.VSpan(0, 0, 1))
	}
	if !slices.Contains(merges, grid.HSpan(0, 1, groups+2)) {
		t.Errorf("Merges() = %v, missing %v", merges, grid.HSpan(0, 1, groups+2))
	}
	if g.Caption() != "Age by treatment" {
		t.Errorf("Caption() = %q, want %q", g.Caption(), "Age by treatment")
	}
}

func TestResolveQuantityByCategoryIgnoresCategoryFlags(t *testing.T) {
	trt := mustCategory(t, "Treatment", []string{"EXP", "CTRL"}, variable.WithMissing(), variable.WithTotal())
	g, err := TableSpec{X: mustQuantity(t, "Age"), Y: trt}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := g.Row(1)[1:]; !slices.Equal(got, []string{"EXP", "CTRL", "NA", "Tot"}) {
		t.Errorf("group header = %q", got)
	}
}

func TestResolveCategoryByCategory(t *testing.T) {
	sex := mustCategory(t, "Sex", []string{"F", "M"}, variable.WithMissing(),
		variable.WithCategoryTemplate("n"))
	trt := mustCategory(t, "Treatment", []string{"EXP", "CTRL"}, variable.WithTotal(),
		variable.WithCategoryTemplate("n (%)"))

	tests := []struct {
		name   string
		opts   []Option
		pseudo string
	}{
		{"default takes x", nil, "n"},
		{"from x", []Option{WithCellTemplateFrom(FromX)}, "n"},
		{"from y", []Option{WithCellTemplateFrom(FromY)}, "n (%)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := TableSpec{X: sex, Y: trt}.Resolve(tt.opts...)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got := g.Row(1); !slices.Equal(got, []string{"", "EXP", "CTRL", "Tot"}) {
				t.Errorf("Row(1) = %q", got)
			}
			if got := g.Column(0); !slices.Equal(got, []string{"F", "M", "NA"}) {
				t.Errorf("Column(0) = %q", got)
			}
			// Ordinary cell.
			if got := g.Cell(2, 1); got != "n" {
				t.Errorf("Cell(F, EXP) = %q, want %q", got, "n")
			}
			// Tot column and NA row.
			if got := g.Cell(2, 3); got != tt.pseudo {
				t.Errorf("Cell(F, Tot) = %q, want %q", got, tt.pseudo)
			}
			if got := g.Cell(4, 1); got != tt.pseudo {
				t.Errorf("Cell(NA, EXP) = %q, want %q", got, tt.pseudo)
			}
		})
	}
}

func TestResolveItemset(t *testing.T) {
	ae := mustItemset(t, "Adverse events", []string{"Headache", "Nausea", "Fatigue"}, []string{"n", "%"})

	g, err := TableSpec{X: ae}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if g.RowCount() != 4 || g.ColumnCount() != 3 {
		t.Errorf("shape = %dx%d, want 4x3", g.RowCount(), g.ColumnCount())
	}
	if got := g.Row(0); !slices.Equal(got, []string{"Adverse events", "n", "%"}) {
		t.Errorf("header = %q", got)
	}
	if g.Caption() != "Listing of adverse events" {
		t.Errorf("Caption() = %q", g.Caption())
	}
}

func TestResolveItemsetByCategory(t *testing.T) {
	contents := []string{"n", "%", "events"}
	ae := mustItemset(t, "Adverse events", []string{"Headache", "Nausea"}, contents)
	trt := mustCategory(t, "Treatment", []string{"EXP", "CTRL", "PBO"})

	g, err := TableSpec{X: ae, Y: trt}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	c, groups := len(contents), len(trt.Groups())
	if got, want := g.ColumnCount(), 1+c*groups; got != want {
		t.Fatalf("ColumnCount() = %d, want %d", got, want)
	}

	var horizontal []grid.Span
	var vertical int
	for _, m := range g.Merges() {
		switch {
		case m.Horizontal():
			horizontal = append(horizontal, m)
		case m.Vertical():
			vertical++
		}
	}
	if vertical != 1 || len(horizontal) != groups {
		t.Fatalf("merges = %d vertical, %d horizontal; want 1, %d", vertical, len(horizontal), groups)
	}

	// Horizontal spans tile [1, c*g] in blocks of width c.
	next := 1
	for _, h := range horizontal {
		if h.Start.Row != 0 || h.Width() != c || h.Start.Col != next {
			t.Errorf("span %v does not continue tiling at column %d", h, next)
		}
		next = h.End.Col + 1
	}
	if next != 1+c*groups {
		t.Errorf("tiling ends at column %d, want %d", next, 1+c*groups)
	}

	if got := g.Row(1)[1:]; !slices.Equal(got, []string{"n", "%", "events", "n", "%", "events", "n", "%", "events"}) {
		t.Errorf("contents row = %q", got)
	}
	if g.Caption() != "Listing of Adverse events by treatment" {
		t.Errorf("Caption() = %q", g.Caption())
	}
}

func TestResolveOverrides(t *testing.T) {
	age := mustQuantity(t, "Age", variable.WithDisplay("mean"))
	g, err := TableSpec{X: age, Y: treatment(t), Caption: "Table of ages", CellTemplate: "xx.x"}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if g.Caption() != "Table of ages" {
		t.Errorf("Caption() = %q", g.Caption())
	}
	for c := 1; c < g.ColumnCount(); c++ {
		if got := g.Cell(2, c); got != "xx.x" {
			t.Errorf("Cell(2,%d) = %q, want %q", c, got, "xx.x")
		}
	}
}

func TestResolveErrors(t *testing.T) {
	age := mustQuantity(t, "Age")
	trt := treatment(t)
	ae := mustItemset(t, "Adverse events", []string{"Headache"}, []string{"n"})
	var nilQuantity *variable.Quantity

	tests := []struct {
		name string
		spec TableSpec
		want errors.Code
	}{
		{"no x", TableSpec{Y: trt}, errors.ErrCodeInvalidSpec},
		{"typed nil x", TableSpec{X: nilQuantity}, errors.ErrCodeInvalidSpec},
		{"itemset by itemset", TableSpec{X: ae, Y: ae}, errors.ErrCodeUnsupportedCombination},
		{"quantity by quantity", TableSpec{X: age, Y: age}, errors.ErrCodeUnsupportedCombination},
		{"category by itemset", TableSpec{X: trt, Y: ae}, errors.ErrCodeUnsupportedCombination},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := tt.spec.Resolve()
			if !errors.Is(err, tt.want) {
				t.Errorf("Resolve() error = %v, want %s", err, tt.want)
			}
			if g != nil {
				t.Errorf("Resolve() returned a grid on error")
			}
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	spec := TableSpec{X: mustQuantity(t, "Age"), Y: treatment(t)}
	a, err := spec.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	b, err := spec.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < a.RowCount(); r++ {
		if !slices.Equal(a.Row(r), b.Row(r)) {
			t.Errorf("row %d differs: %q vs %q", r, a.Row(r), b.Row(r))
		}
	}
	if !slices.Equal(a.Merges(), b.Merges()) {
		t.Errorf("merges differ: %v vs %v", a.Merges(), b.Merges())
	}
}

func TestFixed(t *testing.T) {
	g, err := grid.NewBuilder(1, 1, 0).Set(0, 0, "x").Build("fixed")
	if err != nil {
		t.Fatal(err)
	}
	got, err := Fixed{Grid: g}.Resolve()
	if err != nil || got != g {
		t.Errorf("Fixed.Resolve() = %v, %v", got, err)
	}
	if _, err := (Fixed{}).Resolve(); !errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Errorf("Fixed{}.Resolve() error = %v, want %s", err, errors.ErrCodeInvalidSpec)
	}
}

func TestParseTemplateSource(t *testing.T) {
	tests := []struct {
		in      string
		want    TemplateSource
		wantErr bool
	}{
		{"", FromX, false},
		{"x", FromX, false},
		{" Y ", FromY, false},
		{"z", FromX, true},
	}
	for _, tt := range tests {
		got, err := ParseTemplateSource(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTemplateSource(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseTemplateSource(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStack(t *testing.T) {
	age := mustQuantity(t, "Age", variable.WithDisplay("mean", "sd"))
	trt := mustCategory(t, "Treatment", []string{"EXP", "CTRL"}, variable.WithMissing(), variable.WithTotal())
	sex := mustCategory(t, "Sex", []string{"F", "M"})

	g, err := Stack{Xs: []variable.Variable{age, sex}, Y: trt}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if g.HeaderRowCount() != 2 || g.ColumnCount() != 5 {
		t.Fatalf("shape: header %d, cols %d; want 2, 5", g.HeaderRowCount(), g.ColumnCount())
	}
	if got := g.Cell(0, 0); got != "" {
		t.Errorf("Cell(0,0) = %q, want empty", got)
	}
	want := []string{"Age", "mean", "sd", "Sex", "F", "M"}
	if got := g.Column(0); !slices.Equal(got, want) {
		t.Errorf("Column(0) = %q, want %q", got, want)
	}
	if g.Caption() != "Age, sex by treatment" {
		t.Errorf("Caption() = %q", g.Caption())
	}
	if len(g.Merges()) != 2 {
		t.Errorf("Merges() = %v, want 2 header spans", g.Merges())
	}
}

func TestStackErrors(t *testing.T) {
	age := mustQuantity(t, "Age")
	sex := mustCategory(t, "Sex", []string{"F", "M"})
	ae := mustItemset(t, "Adverse events", []string{"Headache"}, []string{"n"})

	tests := []struct {
		name  string
		stack Stack
		want  errors.Code
	}{
		{"empty", Stack{}, errors.ErrCodeInvalidSpec},
		{"nil part", Stack{Xs: []variable.Variable{age, nil}}, errors.ErrCodeInvalidSpec},
		{"listing", Stack{Xs: []variable.Variable{age, ae}}, errors.ErrCodeUnsupportedCombination},
		// Q by C gains NA and Tot columns, C by C without flags does not.
		{"column mismatch", Stack{Xs: []variable.Variable{age, sex}, Y: treatment(t)}, errors.ErrCodeInvalidSpec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.stack.Resolve(); !errors.Is(err, tt.want) {
				t.Errorf("Resolve() error = %v, want %s", err, tt.want)
			}
		})
	}
}
