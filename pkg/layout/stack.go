package layout

import (
	"strings"

	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/grid"
	"github.com/matzehuels/tlfs/pkg/variable"
)

// Stack places several tables with the same column layout under one header:
// one block per variable in Xs, each crossed with Y when Y is set.
type Stack struct {
	Caption      string
	Xs           []variable.Variable
	Y            variable.Variable
	CellTemplate string
}

// Resolve resolves every part and stacks the bodies. Each block starts with
// a label row carrying the label of its variable. The header comes from the
// first part with its column-0 label cleared. Parts must agree on column
// count, which for a categorical Y means every part is either a quantity
// crossed with a Y that appends both pseudo-groups, or a category.
func (s Stack) Resolve(opts ...Option) (*grid.Grid, error) {
	if len(s.Xs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "stacked table has no variables")
	}

	parts := make([]*grid.Grid, len(s.Xs))
	for i, x := range s.Xs {
		if x = normalize(x); x == nil {
			return nil, errors.New(errors.ErrCodeInvalidSpec, "stacked table part %d has no variable", i+1)
		}
		if x.Kind() == variable.KindItemset {
			return nil, errors.New(errors.ErrCodeUnsupportedCombination,
				"stacked tables cannot hold listings (%q)", x.Description())
		}
		g, err := TableSpec{X: x, Y: s.Y, CellTemplate: s.CellTemplate}.Resolve(opts...)
		if err != nil {
			return nil, err
		}
		if i > 0 && g.ColumnCount() != parts[0].ColumnCount() {
			return nil, errors.New(errors.ErrCodeInvalidSpec,
				"stacked table part %q has %d columns, expected %d",
				x.Description(), g.ColumnCount(), parts[0].ColumnCount())
		}
		parts[i] = g
	}

	head := parts[0]
	headerRows, cols := head.HeaderRowCount(), head.ColumnCount()
	rows := headerRows
	for _, p := range parts {
		rows += 1 + p.BodyRowCount()
	}

	b := grid.NewBuilder(rows, cols, headerRows)
	for r := 0; r < headerRows; r++ {
		b.SetRow(r, 0, head.Row(r)...)
	}
	b.Set(0, 0, "")
	for _, m := range head.Merges() {
		b.Merge(m)
	}

	r := headerRows
	for i, p := range parts {
		b.Set(r, 0, normalize(s.Xs[i]).Label())
		r++
		for pr := p.HeaderRowCount(); pr < p.RowCount(); pr++ {
			b.SetRow(r, 0, p.Row(pr)...)
			r++
		}
	}
	return b.Build(s.caption())
}

func (s Stack) caption() string {
	if s.Caption != "" {
		return s.Caption
	}
	names := make([]string, 0, len(s.Xs))
	for i, x := range s.Xs {
		d := x.Description()
		if i > 0 {
			d = strings.ToLower(d)
		}
		names = append(names, d)
	}
	c := strings.Join(names, ", ")
	if y := normalize(s.Y); y != nil {
		c += " by " + strings.ToLower(y.Description())
	}
	return c
}
