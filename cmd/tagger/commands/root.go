// Package commands implements the CLI commands for the tagger trainer.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/tagger/internal/adapters/detector"
	"go.trai.ch/tagger/internal/app"
	"go.trai.ch/tagger/internal/build"
	"go.trai.ch/tagger/internal/core/domain"
)

// CLI represents the command line interface for tagger.
type CLI struct {
	app     Application
	logs    LogConfigurer
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Check(ctx context.Context, opts app.Options) (*domain.Settings, error)
	Segment(ctx context.Context, opts app.Options) (app.Stats, error)
	Vocab(ctx context.Context, opts app.Options) (*app.VocabResult, error)
	Train(ctx context.Context, opts app.Options) (*app.TrainResult, error)
	Clean(ctx context.Context, opts app.Options) error
}

// LogConfigurer switches the logger format and verbosity.
type LogConfigurer interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// New creates a new CLI instance with the given app.
// logs may be nil, in which case the log flags are accepted but ignored.
func New(a Application, logs LogConfigurer) *CLI {
	rootCmd := &cobra.Command{
		Use:           "tagger",
		Short:         "Multi-task sequence tagger trainer",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	// Persistent flags go first so -v stays with --verbose and --version gets no shorthand.
	rootCmd.PersistentFlags().StringP("config", "c", domain.SettingsFileName, "Path to the settings file")
	rootCmd.PersistentFlags().String("log-format", "auto", "Log format: auto, pretty, or json")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logs and schedule reports")
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logs:    logs,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPreRun = c.configureLogs

	rootCmd.AddCommand(c.newTrainCmd())
	rootCmd.AddCommand(c.newVocabCmd())
	rootCmd.AddCommand(c.newSegmentCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) configureLogs(cmd *cobra.Command, _ []string) {
	if c.logs == nil {
		return
	}
	format, _ := cmd.Flags().GetString("log-format")
	verbose, _ := cmd.Flags().GetBool("verbose")

	c.logs.SetJSON(detector.ResolveFormat(detector.DetectFormat(), format) == detector.FormatJSON)
	c.logs.SetVerbose(verbose)
}

// options reads the flags shared by every command.
func options(cmd *cobra.Command) app.Options {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	return app.Options{
		ConfigPath: configPath,
		Verbose:    verbose,
	}
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
