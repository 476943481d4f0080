// Package commands implements the CLI commands for the rebuild tool.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/rebuild/internal/app"
	"go.trai.ch/rebuild/internal/build"
	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/rebuild/internal/core/ports"
	"go.trai.ch/rebuild/internal/engine/planner"
)

// Application is the part of app.App the commands drive.
type Application interface {
	LoadSettings(root string, override func(*domain.Settings)) (domain.Settings, error)
	Rebuild(ctx context.Context, opts app.RebuildOptions) (*domain.Report, error)
	Plan(opts app.RebuildOptions) (*planner.Plan, error)
}

// LoggerSettings is implemented by loggers that can change format and level.
type LoggerSettings interface {
	SetJSON(enable bool)
	SetLevel(level domain.LogLevel)
}

// CLI represents the command line interface for rebuild.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
}

// New creates a new CLI instance. logger is configured from the global
// flags when it implements LoggerSettings.
func New(a Application, logger ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "rebuild",
		Short:         "Rerun the lifecycle scripts of installed packages",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	// -v belongs to --verbose, so --version is declared without a shorthand.
	rootCmd.Flags().Bool("version", false, "Print the application version")
	rootCmd.InitDefaultVersionFlag()

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("dir", ".", "Project directory holding the lockfile")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug output")

	c := &CLI{
		app:     a,
		logger:  logger,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = c.configureLogger

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newPlanCmd())
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

// SetOutput sets the standard and error output of the commands.
func (c *CLI) SetOutput(stdout, stderr io.Writer) {
	c.rootCmd.SetOut(stdout)
	c.rootCmd.SetErr(stderr)
}

func (c *CLI) configureLogger(cmd *cobra.Command, _ []string) error {
	settings, ok := c.logger.(LoggerSettings)
	if !ok {
		return nil
	}

	jsonMode, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}

	settings.SetJSON(jsonMode)
	if verbose {
		settings.SetLevel(domain.LogLevelDebug)
	}
	return nil
}
