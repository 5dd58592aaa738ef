package variable

import (
	"slices"
	"strings"

	"github.com/matzehuels/tlfs/pkg/errors"
)

// Itemset describes a listing: row items by column contents.
type Itemset struct {
	description  string
	items        []string
	contents     []string
	cellTemplate string
}

// NewItemset builds an itemset descriptor. Items and contents must each hold
// at least one non-blank label. An empty template selects the default.
func NewItemset(description string, items, contents []string, cellTemplate string) (*Itemset, error) {
	s := &Itemset{
		description:  strings.TrimSpace(description),
		items:        clean(items),
		contents:     clean(contents),
		cellTemplate: cellTemplate,
	}
	if s.cellTemplate == "" {
		s.cellTemplate = DefaultItemsetTemplate
	}
	switch {
	case s.description == "":
		return nil, errors.New(errors.ErrCodeInvalidInput, "itemset description cannot be empty")
	case len(s.items) == 0:
		return nil, errors.New(errors.ErrCodeInvalidInput, "itemset %q has no items", s.description)
	case len(s.contents) == 0:
		return nil, errors.New(errors.ErrCodeInvalidInput, "itemset %q has no contents", s.description)
	}
	return s, nil
}

func (s *Itemset) Kind() Kind           { return KindItemset }
func (s *Itemset) Description() string  { return s.description }
func (s *Itemset) Label() string        { return s.description }
func (s *Itemset) CellTemplate() string { return s.cellTemplate }
func (s *Itemset) variable()            {}

// Items returns a copy of the row labels.
func (s *Itemset) Items() []string { return slices.Clone(s.items) }

// Contents returns a copy of the column labels.
func (s *Itemset) Contents() []string { return slices.Clone(s.contents) }
