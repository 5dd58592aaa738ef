package variable

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/matzehuels/tlfs/pkg/errors"
)

// Display statistics understood in quantity display lists.
const (
	StatCount   = "count"
	StatMissing = "missing"
	StatMin     = "min"
	StatP25     = "25pct"
	StatP75     = "75pct"
	StatMax     = "max"
	StatMedian  = "median"
	StatIQR     = "iqr"
	StatMean    = "mean"
	StatSD      = "sd"
)

// Statistics is the display vocabulary in canonical order.
var Statistics = []string{
	StatCount, StatMissing, StatMin, StatP25, StatP75,
	StatMax, StatMedian, StatIQR, StatMean, StatSD,
}

// DefaultDisplay is used when a quantity is built without WithDisplay.
var DefaultDisplay = []string{
	StatMissing, StatCount, StatMin, StatP25, StatMean,
	StatMedian, StatP75, StatMax, StatSD, StatIQR,
}

// Quantity describes a quantitative variable.
type Quantity struct {
	description  string
	unit         string
	display      []string
	cellTemplate string
}

// QuantityOption configures [NewQuantity].
type QuantityOption func(*Quantity)

// WithUnit sets the unit of measure shown next to the description.
func WithUnit(unit string) QuantityOption {
	return func(q *Quantity) { q.unit = strings.TrimSpace(unit) }
}

// WithDisplay sets the requested statistics, one body row each. A single
// argument is the one-element list; no argument keeps the default.
func WithDisplay(stats ...string) QuantityOption {
	return func(q *Quantity) {
		if d := clean(stats); len(d) > 0 {
			q.display = d
		}
	}
}

// WithQuantityTemplate overrides the body cell placeholder.
func WithQuantityTemplate(tpl string) QuantityOption {
	return func(q *Quantity) {
		if tpl != "" {
			q.cellTemplate = tpl
		}
	}
}

// NewQuantity builds a quantity descriptor. It fails with INVALID_INPUT when
// the description is blank or a display entry uses a word outside
// [Statistics]. Composite entries such as "median (iqr)" are accepted as long
// as every word in them is a known statistic.
func NewQuantity(description string, opts ...QuantityOption) (*Quantity, error) {
	q := &Quantity{
		description:  strings.TrimSpace(description),
		display:      slices.Clone(DefaultDisplay),
		cellTemplate: DefaultQuantityTemplate,
	}
	for _, opt := range opts {
		opt(q)
	}
	if q.description == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "quantity description cannot be empty")
	}
	for _, d := range q.display {
		if err := ValidateStatistic(d); err != nil {
			return nil, errors.At(err, "quantity %q", q.description)
		}
	}
	return q, nil
}

// ValidateStatistic checks a display entry against the vocabulary.
func ValidateStatistic(entry string) error {
	words := strings.FieldsFunc(strings.ToLower(entry), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "empty display statistic %q", entry)
	}
	for _, w := range words {
		if !slices.Contains(Statistics, w) {
			return errors.New(errors.ErrCodeInvalidInput,
				"unknown display statistic %q in %q (known: %s)", w, entry, strings.Join(Statistics, ", "))
		}
	}
	return nil
}

func (q *Quantity) Kind() Kind           { return KindQuantity }
func (q *Quantity) Description() string  { return q.description }
func (q *Quantity) Unit() string         { return q.unit }
func (q *Quantity) CellTemplate() string { return q.cellTemplate }
func (q *Quantity) variable()            {}

// Display returns a copy of the requested statistics.
func (q *Quantity) Display() []string { return slices.Clone(q.display) }

// Label returns "Description (unit)", or the description alone.
func (q *Quantity) Label() string {
	if q.unit == "" {
		return q.description
	}
	return fmt.Sprintf("%s (%s)", q.description, q.unit)
}
