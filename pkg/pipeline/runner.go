package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tlfs/pkg/cache"
	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/observability"
	"github.com/matzehuels/tlfs/pkg/report"
	"github.com/matzehuels/tlfs/pkg/source"
)

// Runner executes the pipeline with artifact caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cached artifacts; zero means cache.TTLArtifact.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs load → resolve → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	doc, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Sections = len(doc.Sections)
	result.Stats.Tables = doc.TableCount()

	r.Logger.Info("loaded structure",
		"sections", result.Stats.Sections,
		"tables", result.Stats.Tables,
		"duration", result.Stats.LoadTime)

	// Stage 2: Resolve
	resolveStart := time.Now()
	rep, err := r.Resolve(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.Report = rep
	result.Stats.ResolveTime = time.Since(resolveStart)

	r.Logger.Info("resolved tables",
		"tables", rep.TableCount(),
		"id", rep.ID,
		"duration", result.Stats.ResolveTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, rep, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo = CacheInfo{Hits: hits, RenderHit: len(hits) == len(opts.Formats)}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the structure file named by opts.Input.
func (r *Runner) Load(ctx context.Context, opts Options) (doc *report.Document, err error) {
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Input)
	defer func() {
		tables := 0
		if doc != nil {
			tables = doc.TableCount()
		}
		observability.Pipeline().OnLoadComplete(ctx, opts.Input, tables, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return source.Load(opts.Input)
}

// Resolve computes every table of doc.
func (r *Runner) Resolve(ctx context.Context, doc *report.Document, opts Options) (rep *report.Report, err error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil document")
	}
	start := time.Now()
	tables := doc.TableCount()
	observability.Pipeline().OnResolveStart(ctx, tables)
	defer func() {
		observability.Pipeline().OnResolveComplete(ctx, tables, time.Since(start), err)
	}()

	return doc.Resolve(ctx, opts.LayoutOptions()...)
}

// RenderWithCacheInfo renders every format of opts.Formats and returns the
// formats that were served from the cache.
//
// Artifacts are keyed by the report ID, which is a hash of the resolved
// content, plus the render options.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, rep *report.Report, opts Options) (artifacts map[string][]byte, hits []string, err error) {
	opts.SetDefaults()
	r.applyLogger(&opts)
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, nil, err
	}
	if rep == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "nil report")
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	contentHash := rep.ID.String()
	artifacts = make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		key := r.Keyer.ArtifactKey(contentHash, opts.ArtifactKeyOpts(format))

		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				r.Logger.Warn("cache read failed", "format", format, "err", err)
			} else if hit {
				artifacts[format] = data
				hits = append(hits, format)
				continue
			}
		}

		data, err := Render(rep, format, opts)
		if err != nil {
			return nil, nil, err
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
		}
	}

	return artifacts, hits, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, rep *report.Report, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, rep, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
