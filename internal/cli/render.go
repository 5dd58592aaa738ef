package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tlfs/pkg/pipeline"
	"github.com/matzehuels/tlfs/pkg/sink"
)

// renderFlags holds the flags shared by render and preview. Unset flags
// leave the config value in place.
type renderFlags struct {
	formats         string
	output          string
	templateFrom    string
	noNumbering     bool
	noSectionTitles bool
	noCache         bool
	refresh         bool
}

// options merges config values and the flags that were set.
func (c *CLI) options(cmd *cobra.Command, input string, f renderFlags) pipeline.Options {
	opts := pipeline.Options{
		Input:            input,
		Formats:          c.config.Formats,
		OutputDir:        c.config.OutputDir,
		NoNumbering:      !c.config.Numbering,
		NoSectionTitles:  !c.config.SectionTitles,
		CellTemplateFrom: c.config.CellTemplateFrom,
		Refresh:          f.refresh,
		Logger:           c.Logger,
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		opts.Formats = pipeline.ParseFormats(f.formats)
	}
	if flags.Changed("output") {
		opts.OutputDir = f.output
	}
	if flags.Changed("cell-template-from") {
		opts.CellTemplateFrom = f.templateFrom
	}
	if flags.Changed("no-numbering") {
		opts.NoNumbering = f.noNumbering
	}
	if flags.Changed("no-section-titles") {
		opts.NoSectionTitles = f.noSectionTitles
	}
	return opts
}

func addLayoutFlags(cmd *cobra.Command, f *renderFlags) {
	cmd.Flags().StringVar(&f.templateFrom, "cell-template-from", "x", "variable whose cell template fills the body: x or y")
	cmd.Flags().BoolVar(&f.noNumbering, "no-numbering", false, `omit the "Table N:" caption prefix`)
	cmd.Flags().BoolVar(&f.noSectionTitles, "no-section-titles", false, "omit section headings")
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render [structure.xlsx|structure.yaml]",
		Short: "Render the tables of a structure file",
		Long: `Render the tables of a structure file.

Each requested format is written as <name>_TLF.<format>, next to the
structure file or in --output. Rendered documents are cached by content, so
rendering an unchanged structure file again is instant.

Formats: ` + strings.Join(sink.Formats, ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), c.options(cmd, args[0], f), f.noCache)
		},
	}

	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s), comma-separated (default from config: docx)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output directory (default: next to the input)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render even when cached")
	addLayoutFlags(cmd, &f)

	return cmd
}

// runRender executes the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, noCache bool) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := c.spinner(ctx, fmt.Sprintf("Rendering %s...", opts.Input))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	paths, err := pipeline.WriteArtifacts(result, opts)
	if err != nil {
		spinner.StopWithError("Write failed")
		return err
	}
	spinner.Stop()

	c.ui.success("Rendered %s", plural(result.Stats.Tables, "table"))
	c.ui.stats(result.Stats.Sections, result.Stats.Tables, result.CacheInfo.RenderHit)
	for _, p := range paths {
		c.ui.file(p)
	}
	return nil
}
