package terminal

import (
	"context"
	"io"
	"os"

	"github.com/DLICWCPA/monday-report-app/pkg/render/xlsx"
	"github.com/DLICWCPA/monday-report-app/pkg/runtime/terminal/commands"
	"github.com/spf13/cobra"
)

// Loader builds the runtime from the --config flag value.
type Loader func(configPath string) (*commands.Runtime, error)

// CLI represents the command-line interface
type CLI struct {
	load       Loader
	runtime    commands.Runtime
	configPath string
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Loader Loader
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{load: opts.Loader}
	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

// Execute runs the command line with ctx, which carries the logger.
func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "monday-report",
		Short:         "Weekly enquiry report for a monday.com board",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := cli.load(cli.configPath)
			if err != nil {
				return err
			}
			cli.runtime = *rt
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cli.configPath, "config", "", "Path to the settings file")

	cmd.AddCommand(commands.NewGenerateCmd(&cli.runtime, xlsx.NewRenderer()))
	cmd.AddCommand(commands.NewPreviewCmd(&cli.runtime))
	cmd.AddCommand(commands.NewProfilesCmd(&cli.runtime))
	cmd.AddCommand(commands.NewWindowCmd(&cli.runtime))

	return cmd
}
