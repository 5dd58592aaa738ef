package variable

import (
	"slices"
	"strings"

	"github.com/matzehuels/tlfs/pkg/errors"
)

// Labels of the pseudo-groups a category may append to its groups.
const (
	MissingGroup = "NA"
	TotalGroup   = "Tot"
)

// DefaultDisplayMode describes what a categorical cell reports.
const DefaultDisplayMode = "n (col %)"

// Category describes a categorical variable.
type Category struct {
	description  string
	groups       []string
	addMissing   bool
	addTotal     bool
	displayMode  string
	cellTemplate string
	actual       []string
}

// CategoryOption configures [NewCategory].
type CategoryOption func(*Category)

// WithMissing appends the "NA" pseudo-group.
func WithMissing() CategoryOption { return func(c *Category) { c.addMissing = true } }

// WithTotal appends the "Tot" pseudo-group.
func WithTotal() CategoryOption { return func(c *Category) { c.addTotal = true } }

// WithDisplayMode sets the display label, e.g. "n" or "n (col %)".
func WithDisplayMode(mode string) CategoryOption {
	return func(c *Category) {
		if mode = strings.TrimSpace(mode); mode != "" {
			c.displayMode = mode
		}
	}
}

// WithCategoryTemplate overrides the body cell placeholder.
func WithCategoryTemplate(tpl string) CategoryOption {
	return func(c *Category) {
		if tpl != "" {
			c.cellTemplate = tpl
		}
	}
}

// NewCategory builds a category descriptor. It fails with INVALID_CATEGORY
// when fewer than two distinct groups remain after trimming, or when a group
// repeats or collides with a pseudo-group label.
func NewCategory(description string, groups []string, opts ...CategoryOption) (*Category, error) {
	c := &Category{
		description:  strings.TrimSpace(description),
		groups:       clean(groups),
		displayMode:  DefaultDisplayMode,
		cellTemplate: DefaultCategoryTemplate,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.description == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "category description cannot be empty")
	}
	if len(c.groups) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidCategory,
			"category %q needs at least 2 groups, got %d", c.description, len(c.groups))
	}
	seen := make(map[string]bool, len(c.groups))
	for _, g := range c.groups {
		if seen[g] {
			return nil, errors.New(errors.ErrCodeInvalidCategory, "category %q repeats group %q", c.description, g)
		}
		if (c.addMissing && g == MissingGroup) || (c.addTotal && g == TotalGroup) {
			return nil, errors.New(errors.ErrCodeInvalidCategory,
				"category %q group %q clashes with its pseudo-group", c.description, g)
		}
		seen[g] = true
	}

	c.actual = slices.Clone(c.groups)
	if c.addMissing {
		c.actual = append(c.actual, MissingGroup)
	}
	if c.addTotal {
		c.actual = append(c.actual, TotalGroup)
	}
	return c, nil
}

func (c *Category) Kind() Kind           { return KindCategory }
func (c *Category) Description() string  { return c.description }
func (c *Category) Label() string        { return c.description }
func (c *Category) CellTemplate() string { return c.cellTemplate }
func (c *Category) DisplayMode() string  { return c.displayMode }
func (c *Category) AddsMissing() bool    { return c.addMissing }
func (c *Category) AddsTotal() bool      { return c.addTotal }
func (c *Category) variable()            {}

// Groups returns a copy of the base group labels.
func (c *Category) Groups() []string { return slices.Clone(c.groups) }

// ActualGroups returns a copy of the groups followed by the enabled
// pseudo-groups, in that order.
func (c *Category) ActualGroups() []string { return slices.Clone(c.actual) }

// IsPseudoGroup reports whether label is one of the pseudo-groups this
// category appends.
func (c *Category) IsPseudoGroup(label string) bool {
	return (c.addMissing && label == MissingGroup) || (c.addTotal && label == TotalGroup)
}
