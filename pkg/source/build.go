package source

import (
	"fmt"

	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/layout"
	"github.com/matzehuels/tlfs/pkg/report"
	"github.com/matzehuels/tlfs/pkg/variable"
)

// Registry maps ids to descriptors. Each id is built once.
type Registry struct {
	vars  map[string]variable.Variable
	order []string
}

// Lookup returns the descriptor for id.
func (r *Registry) Lookup(id string) (variable.Variable, bool) {
	v, ok := r.vars[id]
	return v, ok
}

// IDs returns every id in definition order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int { return len(r.order) }

func (r *Registry) add(id, at string, v variable.Variable) error {
	if err := errors.ValidateIdentifier(id); err != nil {
		return errors.At(err, "%s", at)
	}
	if _, dup := r.vars[id]; dup {
		return errors.New(errors.ErrCodeInvalidInput, "%s: duplicate id %q", at, id)
	}
	r.vars[id] = v
	r.order = append(r.order, id)
	return nil
}

// Registry builds every descriptor defined in the structure.
func (s *Structure) Registry() (*Registry, error) {
	reg := &Registry{vars: make(map[string]variable.Variable)}

	for i, d := range s.Quantities {
		at := location(d.at, "quantities", i)
		var opts []variable.QuantityOption
		if d.Unit != "" {
			opts = append(opts, variable.WithUnit(d.Unit))
		}
		if len(d.Display) > 0 {
			opts = append(opts, variable.WithDisplay(d.Display...))
		}
		opts = append(opts, variable.WithQuantityTemplate(d.CellContent))
		q, err := variable.NewQuantity(d.Description, opts...)
		if err != nil {
			return nil, errors.At(err, "%s", at)
		}
		if err := reg.add(d.ID, at, q); err != nil {
			return nil, err
		}
	}

	for i, d := range s.Categories {
		at := location(d.at, "categories", i)
		opts := []variable.CategoryOption{
			variable.WithDisplayMode(d.Display),
			variable.WithCategoryTemplate(d.CellContent),
		}
		if d.Missing {
			opts = append(opts, variable.WithMissing())
		}
		if d.Total {
			opts = append(opts, variable.WithTotal())
		}
		c, err := variable.NewCategory(d.Description, d.Groups, opts...)
		if err != nil {
			return nil, errors.At(err, "%s", at)
		}
		if err := reg.add(d.ID, at, c); err != nil {
			return nil, err
		}
	}

	for i, d := range s.Itemsets {
		at := location(d.at, "itemsets", i)
		set, err := variable.NewItemset(d.Description, d.Items, d.Contents, d.CellContent)
		if err != nil {
			return nil, errors.At(err, "%s", at)
		}
		if err := reg.add(d.ID, at, set); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Document builds the descriptors and the tables that reference them.
func (s *Structure) Document() (*report.Document, error) {
	reg, err := s.Registry()
	if err != nil {
		return nil, err
	}

	doc := &report.Document{Title: s.Title, Sections: make([]report.Section, 0, len(s.Sections))}
	for i, sec := range s.Sections {
		out := report.Section{Title: sec.Title, Tables: make([]layout.Table, 0, len(sec.Tables))}
		for j, t := range sec.Tables {
			at := t.at
			if at == "" {
				at = fmt.Sprintf("sections[%d].tables[%d]", i, j)
			}
			table, err := t.table(reg, at)
			if err != nil {
				return nil, err
			}
			out.Tables = append(out.Tables, table)
		}
		doc.Sections = append(doc.Sections, out)
	}
	return doc, nil
}

func (t TableDef) table(reg *Registry, at string) (layout.Table, error) {
	lookup := func(field, id string) (variable.Variable, error) {
		v, ok := reg.Lookup(id)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidSpec, "%s: %s references unknown id %q", at, field, id)
		}
		return v, nil
	}

	var y variable.Variable
	if t.Y != "" {
		v, err := lookup("y", t.Y)
		if err != nil {
			return nil, err
		}
		y = v
	}

	switch {
	case t.X != "" && len(t.Stack) > 0:
		return nil, errors.New(errors.ErrCodeInvalidSpec, "%s: set either x or stack, not both", at)
	case len(t.Stack) > 0:
		st := layout.Stack{Caption: t.Caption, Y: y, CellTemplate: t.CellContent}
		for _, id := range t.Stack {
			v, err := lookup("stack", id)
			if err != nil {
				return nil, err
			}
			st.Xs = append(st.Xs, v)
		}
		return st, nil
	case t.X != "":
		x, err := lookup("x", t.X)
		if err != nil {
			return nil, err
		}
		return layout.TableSpec{X: x, Y: y, Caption: t.Caption, CellTemplate: t.CellContent}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidSpec, "%s: table has no x", at)
	}
}

func location(at, list string, i int) string {
	if at != "" {
		return at
	}
	return fmt.Sprintf("%s[%d]", list, i)
}
