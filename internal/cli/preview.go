package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tlfs/pkg/pipeline"
	"github.com/matzehuels/tlfs/pkg/sink"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "preview [structure.xlsx|structure.yaml]",
		Short: "Print the tables of a structure file to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, args[0], f)
			opts.Formats = []string{sink.FormatText}
			return c.runPreview(cmd.Context(), opts)
		},
	}
	addLayoutFlags(cmd, &f)

	return cmd
}

// runPreview renders the text format without caching and prints it.
func (c *CLI) runPreview(ctx context.Context, opts pipeline.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	runner := pipeline.NewRunner(nil, nil, c.Logger)

	doc, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	rep, err := runner.Resolve(ctx, doc, opts)
	if err != nil {
		return err
	}
	artifacts, err := runner.Render(ctx, rep, opts)
	if err != nil {
		return err
	}
	_, err = c.Out.Write(artifacts[sink.FormatText])
	return err
}
