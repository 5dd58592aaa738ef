package layout

import (
	"strings"

	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/grid"
	"github.com/matzehuels/tlfs/pkg/variable"
)

// Table is anything a report section can hold: it resolves to a grid.
type Table interface {
	Resolve(opts ...Option) (*grid.Grid, error)
}

// TableSpec describes one table: X is mandatory, Y optional.
type TableSpec struct {
	X variable.Variable
	Y variable.Variable

	// Caption replaces the derived caption when non-empty.
	Caption string

	// CellTemplate replaces every body cell placeholder when non-empty.
	CellTemplate string
}

// Resolve computes the grid for the spec. See [Resolve].
func (s TableSpec) Resolve(opts ...Option) (*grid.Grid, error) {
	return Resolve(s, opts...)
}

// Fixed wraps an already resolved grid so it can sit in a section next to
// specs that still need resolving.
type Fixed struct {
	Grid *grid.Grid
}

// Resolve returns the wrapped grid.
func (f Fixed) Resolve(...Option) (*grid.Grid, error) {
	if f.Grid == nil {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "fixed table has no grid")
	}
	return f.Grid, nil
}

// TemplateSource selects which variable's template fills pseudo-group cells
// in category-by-category tables.
type TemplateSource int

const (
	FromX TemplateSource = iota
	FromY
)

// String returns "x" or "y".
func (t TemplateSource) String() string {
	if t == FromY {
		return "y"
	}
	return "x"
}

// ParseTemplateSource parses "x" or "y" (case-insensitive). Empty means x.
func ParseTemplateSource(s string) (TemplateSource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "x":
		return FromX, nil
	case "y":
		return FromY, nil
	default:
		return FromX, errors.New(errors.ErrCodeInvalidInput, "invalid cell template source %q (must be 'x' or 'y')", s)
	}
}

type options struct {
	templateFrom TemplateSource
}

// Option configures resolution.
type Option func(*options)

// WithCellTemplateFrom sets where "NA"/"Tot" cells take their template from
// in category-by-category tables. The default is [FromX].
func WithCellTemplateFrom(src TemplateSource) Option {
	return func(o *options) { o.templateFrom = src }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
