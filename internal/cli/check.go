package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tlfs/pkg/pipeline"
)

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "check [structure.xlsx|structure.yaml]",
		Short: "Validate a structure file without writing anything",
		Long: `Validate a structure file without writing anything.

The file is loaded and every table is resolved. Errors name the sheet and
row (or YAML entry) that caused them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), c.options(cmd, args[0], f))
		},
	}
	addLayoutFlags(cmd, &f)

	return cmd
}

// runCheck loads and resolves the structure file and prints a summary.
func (c *CLI) runCheck(ctx context.Context, opts pipeline.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	prog := newProgress(c.Logger)

	doc, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	rep, err := runner.Resolve(ctx, doc, opts)
	if err != nil {
		return err
	}
	prog.done("Resolved " + plural(rep.TableCount(), "table"))

	c.ui.success("%s is valid", opts.Input)
	if rep.Title != "" {
		c.ui.keyValue("Title", rep.Title)
	}
	c.ui.keyValue("ID", rep.ID.String())
	for _, s := range rep.Sections {
		c.ui.keyValue(s.Title, plural(len(s.Grids), "table"))
	}
	c.ui.nextStep("Render it", appName+" render "+opts.Input)
	return nil
}
