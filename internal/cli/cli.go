// Package cli implements the tlfs command-line interface.
//
// The commands turn a structure file (an xlsx workbook or a YAML file that
// declares variables and the tables built from them) into table shells:
//
//   - render: write the report as docx, xlsx, md, html, tex, csv, json or txt
//   - preview: print every table to the terminal
//   - check: load and resolve a structure file without writing anything
//   - init: write a sample structure file to start from
//   - cache: manage the rendered-artifact cache
//
// Settings come from the config file (see package config) and are
// overridden by flags. All commands support --verbose (-v) for debug-level
// logging of every pipeline stage.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tlfs/pkg/buildinfo"
	"github.com/matzehuels/tlfs/pkg/cache"
	"github.com/matzehuels/tlfs/pkg/config"
	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/observability"
	"github.com/matzehuels/tlfs/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "tlfs"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // command output
	Err    io.Writer // spinner and progress

	configPath string
	verbose    bool
	config     config.Config
	ui         ui
}

// New creates a CLI that logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		Err:    w,
		config: config.Default(),
		ui:     ui{w: os.Stdout},
	}
}

// SetOutput redirects command output.
func (c *CLI) SetOutput(w io.Writer) {
	c.Out = w
	c.ui = ui{w: w}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "tlfs builds clinical-trial table shells from variable definitions",
		Long: `tlfs turns declarative clinical-trial variable definitions (quantities,
categories and listings) into formatted table shells: multi-level headers,
merged cells and placeholder cell contents, assembled into a report.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.Path()+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and applies --verbose.
func (c *CLI) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg

	if c.verbose {
		c.SetLogLevel(LogDebug)
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
	}
	c.Logger.Debug("config loaded", "path", c.configPath, "formats", cfg.Formats, "cache", cfg.Cache.Backend)
	return nil
}

// ReportError logs a failed command with its error code.
func (c *CLI) ReportError(err error) {
	if code := errors.GetCode(err); code != "" {
		c.Logger.Error(errors.UserMessage(err), "code", code)
		return
	}
	c.Logger.Error(err.Error())
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, buildinfo.CacheScope()), c.Logger)
	runner.TTL = c.config.Cache.TTL.Duration
	return runner, nil
}

// newCache opens the configured cache backend.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.config.Cache
	if noCache || cfg.Backend == config.CacheNone {
		return cache.NewNullCache(), nil
	}

	var (
		store cache.Cache
		err   error
	)
	switch cfg.Backend {
	case config.CacheRedis:
		store, err = cache.NewRedisCache(ctx, cfg.RedisURL)
	default:
		store, err = cache.NewFileCache(c.cacheDir())
	}
	if err != nil {
		return nil, err
	}
	return cache.Instrument(store, "artifact"), nil
}

// cacheDir returns the file cache directory.
func (c *CLI) cacheDir() string {
	if c.config.Cache.Dir != "" {
		return c.config.Cache.Dir
	}
	return cache.DefaultDir()
}
