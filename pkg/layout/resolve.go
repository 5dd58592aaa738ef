package layout

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/grid"
	"github.com/matzehuels/tlfs/pkg/variable"
)

// Header labels that are not taken from a variable.
const (
	AllColumn     = "All"
	MissingColumn = variable.MissingGroup
	TotalColumn   = variable.TotalGroup
)

// Resolve maps a spec to its grid. It fails with INVALID_SPEC when X is
// absent and with UNSUPPORTED_COMBINATION when no recipe exists for the
// runtime types of X and Y. Resolution is all-or-nothing.
func Resolve(s TableSpec, opts ...Option) (*grid.Grid, error) {
	o := buildOptions(opts)
	x, y := normalize(s.X), normalize(s.Y)
	if x == nil {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "table has no primary variable")
	}

	r := resolver{spec: s, opts: o}
	switch x := x.(type) {
	case *variable.Quantity:
		switch y := y.(type) {
		case nil:
			return r.quantity(x)
		case *variable.Category:
			return r.quantityByCategory(x, y)
		}
	case *variable.Category:
		switch y := y.(type) {
		case nil:
			return r.category(x)
		case *variable.Category:
			return r.categoryByCategory(x, y)
		}
	case *variable.Itemset:
		switch y := y.(type) {
		case nil:
			return r.itemset(x)
		case *variable.Category:
			return r.itemsetByCategory(x, y)
		}
	}
	return nil, errors.New(errors.ErrCodeUnsupportedCombination,
		"no table layout for (%T, %T)", s.X, s.Y)
}

// normalize turns typed nil descriptors into a nil interface.
func normalize(v variable.Variable) variable.Variable {
	switch t := v.(type) {
	case *variable.Quantity:
		if t == nil {
			return nil
		}
	case *variable.Category:
		if t == nil {
			return nil
		}
	case *variable.Itemset:
		if t == nil {
			return nil
		}
	}
	return v
}

type resolver struct {
	spec TableSpec
	opts options
}

func (r resolver) caption(def string) string {
	if r.spec.Caption != "" {
		return r.spec.Caption
	}
	return def
}

func (r resolver) template(v variable.Variable) string {
	if r.spec.CellTemplate != "" {
		return r.spec.CellTemplate
	}
	return v.CellTemplate()
}

func byCaption(x, y variable.Variable) string {
	return fmt.Sprintf("%s by %s", x.Description(), strings.ToLower(y.Description()))
}

// fill writes tpl into columns [1, cols) of a body row.
func fill(b *grid.Builder, row, cols int, tpl string) {
	for c := 1; c < cols; c++ {
		b.Set(row, c, tpl)
	}
}

func (r resolver) quantity(x *variable.Quantity) (*grid.Grid, error) {
	stats := x.Display()
	tpl := r.template(x)

	b := grid.NewBuilder(1+len(stats), 2, 1)
	b.SetRow(0, 0, x.Label(), AllColumn)
	for i, stat := range stats {
		b.SetRow(1+i, 0, stat, tpl)
	}
	return b.Build(r.caption(x.Description()))
}

func (r resolver) category(x *variable.Category) (*grid.Grid, error) {
	groups := x.ActualGroups()
	tpl := r.template(x)

	b := grid.NewBuilder(1+len(groups), 2, 1)
	b.SetRow(0, 0, x.Label(), x.DisplayMode())
	for i, g := range groups {
		b.SetRow(1+i, 0, g, tpl)
	}
	return b.Build(r.caption(x.Description()))
}

func (r resolver) quantityByCategory(x *variable.Quantity, y *variable.Category) (*grid.Grid, error) {
	stats := x.Display()
	columns := append(y.Groups(), MissingColumn, TotalColumn)
	cols := 1 + len(columns)
	tpl := r.template(x)

	b := grid.NewBuilder(2+len(stats), cols, 2)
	b.Set(0, 0, x.Label())
	b.Set(0, 1, y.Description())
	b.SetRow(1, 1, columns...)
	for i, stat := range stats {
		b.Set(2+i, 0, stat)
		fill(b, 2+i, cols, tpl)
	}
	b.Merge(grid.HSpan(0, 1, cols-1))
	b.Merge(grid.VSpan(0, 0, 1))
	return b.Build(r.caption(byCaption(x, y)))
}

func (r resolver) categoryByCategory(x, y *variable.Category) (*grid.Grid, error) {
	rows := x.ActualGroups()
	columns := y.ActualGroups()
	cols := 1 + len(columns)

	ordinary := r.template(x)
	pseudo := ordinary
	if r.spec.CellTemplate == "" && r.opts.templateFrom == FromY {
		pseudo = y.CellTemplate()
	}

	b := grid.NewBuilder(2+len(rows), cols, 2)
	b.Set(0, 0, x.Label())
	b.Set(0, 1, y.Description())
	b.SetRow(1, 1, columns...)
	for i, g := range rows {
		b.Set(2+i, 0, g)
		for j, col := range columns {
			tpl := ordinary
			if x.IsPseudoGroup(g) || y.IsPseudoGroup(col) {
				tpl = pseudo
			}
			b.Set(2+i, 1+j, tpl)
		}
	}
	b.Merge(grid.HSpan(0, 1, cols-1))
	b.Merge(grid.VSpan(0, 0, 1))
	return b.Build(r.caption(byCaption(x, y)))
}

func (r resolver) itemset(x *variable.Itemset) (*grid.Grid, error) {
	items, contents := x.Items(), x.Contents()
	cols := 1 + len(contents)
	tpl := r.template(x)

	b := grid.NewBuilder(1+len(items), cols, 1)
	b.Set(0, 0, x.Label())
	b.SetRow(0, 1, contents...)
	for i, item := range items {
		b.Set(1+i, 0, item)
		fill(b, 1+i, cols, tpl)
	}
	return b.Build(r.caption("Listing of " + strings.ToLower(x.Description())))
}

func (r resolver) itemsetByCategory(x *variable.Itemset, y *variable.Category) (*grid.Grid, error) {
	items, contents, groups := x.Items(), x.Contents(), y.Groups()
	width := len(contents)
	cols := 1 + width*len(groups)
	tpl := r.template(x)

	b := grid.NewBuilder(2+len(items), cols, 2)
	b.Set(0, 0, x.Label())
	for k, g := range groups {
		first := 1 + k*width
		b.Set(0, first, g)
		b.SetRow(1, first, contents...)
		b.Merge(grid.HSpan(0, first, first+width-1))
	}
	b.Merge(grid.VSpan(0, 0, 1))
	for i, item := range items {
		b.Set(2+i, 0, item)
		fill(b, 2+i, cols, tpl)
	}
	return b.Build(r.caption(fmt.Sprintf("Listing of %s by %s", x.Description(), strings.ToLower(y.Description()))))
}
