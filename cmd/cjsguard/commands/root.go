// Package commands implements the CLI commands for the cjsguard linter.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/cjsguard/internal/app"
	"go.trai.ch/cjsguard/internal/build"
)

// CLI represents the command line interface for cjsguard.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Lint(ctx context.Context, paths []string, opts app.LintOptions) error
	Watch(ctx context.Context, paths []string, opts app.LintOptions) error
	SetJSONLogs(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "cjsguard",
		Short:         "Catch named and namespace imports of CommonJS modules in ESM packages",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the config file (default: nearest .cjsguard.yaml)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write log messages as JSON")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		a.SetJSONLogs(jsonLogs)
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newLintCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// addLintFlags registers the flags shared by lint and watch.
func addLintFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "Report format: text or json (default: from config, else text)")
	cmd.Flags().String("baseline", "", "Suppress the findings recorded in this baseline file")
	cmd.Flags().IntP("jobs", "j", 0, "Number of files linted in parallel (default: number of CPUs)")
}

// lintOptions reads the shared flags of cmd.
func lintOptions(cmd *cobra.Command) app.LintOptions {
	configPath, _ := cmd.Flags().GetString("config")
	format, _ := cmd.Flags().GetString("format")
	baselinePath, _ := cmd.Flags().GetString("baseline")
	jobs, _ := cmd.Flags().GetInt("jobs")

	return app.LintOptions{
		ConfigPath: configPath,
		Format:     format,
		Baseline:   baselinePath,
		Jobs:       jobs,
	}
}
