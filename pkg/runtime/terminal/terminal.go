package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/cost-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/cost-atlas/pkg/runtime/terminal/export"
)

// CLI is the offline record evaluator: it runs validation and the
// classification rules over a records file without a running server.
type CLI struct {
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "governance",
		Short: "Cost governance record evaluator",
	}

	cmd.AddCommand(commands.NewValidateCmd(cli.reporter))
	cmd.AddCommand(commands.NewClassifyCmd(cli.reporter))

	return cmd
}
