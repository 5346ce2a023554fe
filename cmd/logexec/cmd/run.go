package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/logexec/internal/logging"
)

func newRunCmd() *cobra.Command {
	var (
		flags loggerFlags
		level string
	)

	cmd := &cobra.Command{
		Use:   "run MESSAGE...",
		Short: "Initialize a run log and write messages to it",
		Long: `Initialize a run log and write each MESSAGE to it at --level.

The chosen file is announced on stdout. Console output goes to stderr.`,
		Example: `  # Write to ./logs/logexec_<timestamp>.log and the console
  logexec run "starting job"

  # Write only to build.log, keep the console for warnings
  logexec run --log-file build --console-level warning --level error "compile failed"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, &flags, level, args)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&level, "level", "info", "Level of the messages")

	return cmd
}

func runRun(cmd *cobra.Command, flags *loggerFlags, levelName string, messages []string) error {
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}

	cfg, err := flags.load(cmd)
	if err != nil {
		return err
	}

	s, err := openSession(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	for _, msg := range messages {
		s.logger.Log(level, msg)
	}
	return nil
}
