// Package report groups tables into titled sections and resolves a whole
// document into grids.
//
// A [Document] is the declarative form: sections holding [layout.Table]
// values. [Document.Resolve] turns it into a [Report] whose sections hold
// resolved grids in the same order. Resolution runs the tables in parallel,
// but the result is all-or-nothing: the first failure cancels the remaining
// work and no partial report is returned.
//
// Every report carries a deterministic ID derived from its resolved content,
// so the same structure always yields the same ID. Writers embed it in their
// output and the pipeline uses it as the artifact cache key.
package report

import (
	"context"
	"encoding/json"
	"runtime"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/grid"
	"github.com/matzehuels/tlfs/pkg/layout"
)

// DefaultSectionTitle names sections that were declared without a title.
const DefaultSectionTitle = "Tables"

// Namespace is the UUIDv5 namespace for report IDs.
var Namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/tlfs/report"))

// Section is a titled, ordered list of tables.
type Section struct {
	Title  string
	Tables []layout.Table
}

// Document is an ordered list of sections with an optional title.
type Document struct {
	Title    string
	Sections []Section
}

// TableCount returns the number of tables across all sections.
func (d *Document) TableCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Tables)
	}
	return n
}

// ResolvedSection is a section whose tables have been resolved.
type ResolvedSection struct {
	Title string
	Grids []*grid.Grid
}

// Report is a fully resolved document.
type Report struct {
	ID       uuid.UUID
	Title    string
	Sections []ResolvedSection
}

// TableCount returns the number of grids across all sections.
func (r *Report) TableCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Grids)
	}
	return n
}

// Grids returns every grid in document order.
func (r *Report) Grids() []*grid.Grid {
	out := make([]*grid.Grid, 0, r.TableCount())
	for _, s := range r.Sections {
		out = append(out, s.Grids...)
	}
	return out
}

type slot struct {
	section, table int
}

// Resolve resolves every table of the document. Tables run concurrently, up
// to one per CPU; results keep document order. Errors are prefixed with the
// section title and 1-based table position.
func (d *Document) Resolve(ctx context.Context, opts ...layout.Option) (*Report, error) {
	if d == nil {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "no document to resolve")
	}

	rep := &Report{
		Title:    d.Title,
		Sections: make([]ResolvedSection, len(d.Sections)),
	}
	var slots []slot
	for i, s := range d.Sections {
		title := s.Title
		if title == "" {
			title = DefaultSectionTitle
		}
		rep.Sections[i] = ResolvedSection{Title: title, Grids: make([]*grid.Grid, len(s.Tables))}
		for j := range s.Tables {
			slots = append(slots, slot{i, j})
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, sl := range slots {
		table := d.Sections[sl.section].Tables[sl.table]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if table == nil {
				return errors.New(errors.ErrCodeInvalidSpec, "section %q table %d is empty",
					rep.Sections[sl.section].Title, sl.table+1)
			}
			out, err := table.Resolve(opts...)
			if err != nil {
				return errors.At(err, "section %q table %d", rep.Sections[sl.section].Title, sl.table+1)
			}
			rep.Sections[sl.section].Grids[sl.table] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep.ID = uuid.NewSHA1(Namespace, rep.fingerprint())
	return rep, nil
}

// fingerprint returns a canonical encoding of the resolved content.
func (r *Report) fingerprint() []byte {
	type table struct {
		Caption string      `json:"c"`
		Header  int         `json:"h"`
		Rows    [][]string  `json:"r"`
		Merges  []grid.Span `json:"m"`
	}
	type section struct {
		Title  string  `json:"t"`
		Tables []table `json:"g"`
	}
	doc := struct {
		Title    string    `json:"t"`
		Sections []section `json:"s"`
	}{Title: r.Title}

	for _, s := range r.Sections {
		sec := section{Title: s.Title}
		for _, g := range s.Grids {
			t := table{Caption: g.Caption(), Header: g.HeaderRowCount(), Merges: g.Merges()}
			for row := 0; row < g.RowCount(); row++ {
				t.Rows = append(t.Rows, g.Row(row))
			}
			sec.Tables = append(sec.Tables, t)
		}
		doc.Sections = append(doc.Sections, sec)
	}
	data, _ := json.Marshal(doc)
	return data
}

// New builds a report from grids that are already resolved and stamps its
// ID. Slices are copied.
func New(title string, sections ...ResolvedSection) *Report {
	rep := &Report{Title: title, Sections: make([]ResolvedSection, len(sections))}
	for i, s := range sections {
		if s.Title == "" {
			s.Title = DefaultSectionTitle
		}
		rep.Sections[i] = ResolvedSection{Title: s.Title, Grids: slices.Clone(s.Grids)}
	}
	rep.ID = uuid.NewSHA1(Namespace, rep.fingerprint())
	return rep
}
