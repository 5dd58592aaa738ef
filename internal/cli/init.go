package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tlfs/pkg/source"
)

// defaultStructure is written by init when no path is given.
const defaultStructure = "structure.xlsx"

// initCommand creates the init command.
func (c *CLI) initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [structure.xlsx|structure.yaml]",
		Short: "Write a sample structure file",
		Long: `Write a sample structure file.

The sample declares quantities, categories and an itemset, and two sections
of tables built from them. The format follows the file extension. Existing
files are never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultStructure
			if len(args) == 1 {
				path = args[0]
			}
			if err := source.WriteTemplate(path); err != nil {
				return err
			}
			c.ui.success("Wrote %s", path)
			c.ui.nextStep("Preview it", appName+" preview "+path)
			return nil
		},
	}
}
