package sink

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/grid"
	"github.com/matzehuels/tlfs/pkg/report"
)

// Output formats.
const (
	FormatDOCX     = "docx"
	FormatXLSX     = "xlsx"
	FormatMarkdown = "md"
	FormatHTML     = "html"
	FormatLaTeX    = "tex"
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatText     = "txt"
)

// Formats lists every supported format in a stable order.
var Formats = []string{
	FormatDOCX, FormatXLSX, FormatMarkdown, FormatHTML,
	FormatLaTeX, FormatCSV, FormatJSON, FormatText,
}

// Binary reports whether the format produces non-text output.
func Binary(format string) bool {
	return format == FormatDOCX || format == FormatXLSX
}

// ValidateFormat checks that format is one of [Formats].
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// Option configures every renderer in this package.
type Option func(*options)

type options struct {
	numbering     bool
	sectionTitles bool
}

func buildOptions(opts []Option) options {
	o := options{numbering: true, sectionTitles: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithNumbering prefixes captions with "Table N: ". On by default.
func WithNumbering(on bool) Option { return func(o *options) { o.numbering = on } }

// WithSectionTitles emits a heading before each section. On by default.
func WithSectionTitles(on bool) Option { return func(o *options) { o.sectionTitles = on } }

// caption returns the caption of the n-th table (1-based) in the report.
func (o options) caption(n int, g *grid.Grid) string {
	if !o.numbering {
		return g.Caption()
	}
	return fmt.Sprintf("Table %d: %s", n, g.Caption())
}

// Render dispatches to the renderer for format.
func Render(format string, r *report.Report, opts ...Option) ([]byte, error) {
	if r == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no report to render")
	}
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatDOCX:
		data, err = RenderDOCX(r, opts...)
	case FormatXLSX:
		data, err = RenderXLSX(r, opts...)
	case FormatMarkdown:
		data, err = RenderMarkdown(r, opts...)
	case FormatHTML:
		data, err = RenderHTML(r, opts...)
	case FormatLaTeX:
		data, err = RenderLaTeX(r, opts...)
	case FormatCSV:
		data, err = RenderCSV(r, opts...)
	case FormatJSON:
		data, err = RenderJSON(r, opts...)
	case FormatText:
		data, err = RenderText(r, opts...)
	default:
		return nil, ValidateFormat(format)
	}
	if err != nil {
		return nil, errors.At(err, "render %s", format)
	}
	return data, nil
}

// walk visits every table of the report in order with its 1-based number.
// section is called before the first table of each section.
func walk(r *report.Report, section func(title string) error, table func(n int, g *grid.Grid) error) error {
	n := 0
	for _, s := range r.Sections {
		if section != nil {
			if err := section(s.Title); err != nil {
				return err
			}
		}
		for _, g := range s.Grids {
			n++
			if err := table(n, g); err != nil {
				return err
			}
		}
	}
	return nil
}
