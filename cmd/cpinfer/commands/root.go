// Package commands implements the CLI commands for cpinfer.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/cpinfer/internal/app"
	"go.trai.ch/cpinfer/internal/build"
)

// CLI represents the command line interface for cpinfer.
type CLI struct {
	app        Application
	setVerbose func(bool)
	rootCmd    *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Classpath(ctx context.Context, targets []string, opts app.Options) (*app.Result, error)
	Exec(ctx context.Context, target string, command []string, opts app.ExecOptions) error
	Clean(ctx context.Context, opts app.Options) error
}

// New creates a new CLI instance with the given app.
// setVerbose may be nil.
func New(a Application, setVerbose func(bool)) *CLI {
	rootCmd := &cobra.Command{
		Use:           "cpinfer",
		Short:         "Infer the classpath a compiled class needs",
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

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file (default: search for cpinfer.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	c := &CLI{
		app:        a,
		setVerbose: setVerbose,
		rootCmd:    rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if c.setVerbose != nil {
			c.setVerbose(verbose)
		}
	}

	rootCmd.AddCommand(c.newClasspathCmd())
	rootCmd.AddCommand(c.newExecCmd())
	rootCmd.AddCommand(c.newCleanCmd())
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

// options reads the flags shared by the inference commands.
func options(cmd *cobra.Command) app.Options {
	configPath, _ := cmd.Flags().GetString("config")
	realm, _ := cmd.Flags().GetString("realm")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	metricsFile, _ := cmd.Flags().GetString("metrics-file")
	return app.Options{
		ConfigPath:  configPath,
		Realm:       realm,
		NoCache:     noCache,
		MetricsFile: metricsFile,
	}
}

func addInferenceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("realm", "r", "", "Realm to load targets against (default: the configured default realm)")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the persisted classpath store")
	cmd.Flags().String("metrics-file", "", "Write inference metrics to this file in the Prometheus text format")
}
