package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check imports of CommonJS modules in ESM files",
		Long: `Check every source file below the given paths (default: the working
directory). Named and namespace imports of CommonJS modules in files of ESM
packages are reported; default and type-only imports are allowed.

Exits with status 1 when problems are found.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := lintOptions(cmd)
			opts.WriteBaseline, _ = cmd.Flags().GetString("write-baseline")
			return c.app.Lint(cmd.Context(), args, opts)
		},
	}
	addLintFlags(cmd)
	cmd.Flags().String("write-baseline", "", "Record all current findings to this baseline file and exit 0")
	return cmd
}
