// Package cmd provides the CLI commands for logexec.
package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	lxerrors "github.com/Aman-CERP/logexec/internal/errors"
	"github.com/Aman-CERP/logexec/internal/output"
	"github.com/Aman-CERP/logexec/pkg/version"
)

// NewRootCmd creates the root command for the logexec CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logexec",
		Short: "Per-run log files and call tracing",
		Long: `logexec sets up a logger that writes each run to its own file under ./logs
and traces function calls into it.

Configuration precedence (lowest to highest):
  1. Defaults
  2. User config (~/.config/logexec/config.yaml)
  3. Project config (logexec.yaml, or --config)
  4. Environment variables (LOGEXEC_*)
  5. Command flags`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("logexec version {{.Version}}\n")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newDemoCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command and prints any error for the terminal.
func Execute() error {
	return execute(NewRootCmd(), os.Stderr)
}

func execute(cmd *cobra.Command, stderr io.Writer) error {
	err := cmd.Execute()
	if err != nil {
		output.New(stderr).Error(strings.TrimSuffix(lxerrors.FormatForCLI(err), "\n"))
	}
	return err
}
