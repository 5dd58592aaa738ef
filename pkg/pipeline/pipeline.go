// Package pipeline runs the load → resolve → render pipeline of tlfs.
//
// Every entry point of the command goes through this package, so that
// rendering a structure file, previewing it and checking it share one set
// of defaults and one validation path.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read the structure file (xlsx or YAML) into a report document
//  2. Resolve: compute the grid of every table, in parallel
//  3. Render: write the resolved report in each requested format
//
// Rendered artifacts are cached under the report's content hash, so an
// unchanged structure file rendered with unchanged options is not rendered
// again.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "study.xlsx",
//	    Formats: []string{"docx", "md"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	docx := result.Artifacts["docx"]
//
// Run individual stages:
//
//	doc, err := runner.Load(ctx, opts)
//	rep, err := runner.Resolve(ctx, doc, opts)
//	artifacts, err := runner.Render(ctx, rep, opts)
package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tlfs/pkg/cache"
	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/layout"
	"github.com/matzehuels/tlfs/pkg/report"
	"github.com/matzehuels/tlfs/pkg/sink"
)

// DefaultFormat is written when no format is requested.
const DefaultFormat = sink.FormatDOCX

// OutputSuffix is appended to the input's base name for output files.
const OutputSuffix = "_TLF"

// Options configures one pipeline run.
type Options struct {
	// Load options
	Input string `json:"input"`

	// Resolve options
	CellTemplateFrom string `json:"cell_template_from,omitempty"` // "x" (default) or "y"

	// Render options
	Formats         []string `json:"formats,omitempty"`
	OutputDir       string   `json:"output_dir,omitempty"` // default: next to the input
	NoNumbering     bool     `json:"no_numbering,omitempty"`
	NoSectionTitles bool     `json:"no_section_titles,omitempty"`
	Refresh         bool     `json:"refresh,omitempty"` // bypass cached artifacts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Report is the resolved report.
	Report *report.Report

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains counts and timings.
	Stats Stats

	// CacheInfo tracks which formats came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Sections    int
	Tables      int
	LoadTime    time.Duration
	ResolveTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits of the render stage.
type CacheInfo struct {
	Hits      []string // formats served from the cache
	RenderHit bool     // whether every artifact came from the cache
}

// ValidateFormats checks that formats is non-empty and every entry is known.
func ValidateFormats(formats []string) error {
	if len(formats) == 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "no output format given")
	}
	for _, f := range formats {
		if err := sink.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list ("docx, md") into formats,
// lower-cased and without duplicates.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.CellTemplateFrom == "" {
		o.CellTemplateFrom = layout.FromX.String()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks every field.
func (o *Options) Validate() error {
	o.SetDefaults()
	if strings.TrimSpace(o.Input) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input file is required")
	}
	if _, err := layout.ParseTemplateSource(o.CellTemplateFrom); err != nil {
		return err
	}
	if o.OutputDir != "" {
		if err := errors.ValidateOutputPath(filepath.Clean(o.OutputDir)); err != nil {
			return err
		}
	}
	return ValidateFormats(o.Formats)
}

// LayoutOptions returns the resolver options.
func (o *Options) LayoutOptions() []layout.Option {
	src, err := layout.ParseTemplateSource(o.CellTemplateFrom)
	if err != nil {
		src = layout.FromX
	}
	return []layout.Option{layout.WithCellTemplateFrom(src)}
}

// SinkOptions returns the writer options.
func (o *Options) SinkOptions() []sink.Option {
	return []sink.Option{
		sink.WithNumbering(!o.NoNumbering),
		sink.WithSectionTitles(!o.NoSectionTitles),
	}
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:        format,
		Numbering:     !o.NoNumbering,
		SectionTitles: !o.NoSectionTitles,
		TemplateFrom:  o.CellTemplateFrom,
	}
}
