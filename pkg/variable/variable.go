package variable

import (
	"slices"
	"strings"
)

// Kind tags the three descriptor types.
type Kind int

const (
	KindQuantity Kind = iota + 1
	KindCategory
	KindItemset
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindQuantity:
		return "quantity"
	case KindCategory:
		return "category"
	case KindItemset:
		return "itemset"
	default:
		return "unknown"
	}
}

// Variable is implemented by [*Quantity], [*Category] and [*Itemset] only.
type Variable interface {
	// Kind reports which descriptor type this is.
	Kind() Kind
	// Description is the long, human-readable name ("Age", "Treatment").
	Description() string
	// Label is the text used in the first column header. It equals
	// Description except for quantities with a unit.
	Label() string
	// CellTemplate is the placeholder written into body cells.
	CellTemplate() string

	variable()
}

// Default cell templates, one placeholder per number the cell will hold.
const (
	DefaultQuantityTemplate = "x"
	DefaultCategoryTemplate = "x (x)"
	DefaultItemsetTemplate  = "x"
)

// clean copies a string list, trimming blanks and dropping empty entries.
func clean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return slices.Clip(out)
}
