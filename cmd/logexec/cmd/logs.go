package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/logexec/internal/logging"
	"github.com/Aman-CERP/logexec/internal/output"
)

type logsOptions struct {
	dir     string
	file    string
	lines   int
	follow  bool
	level   string
	filter  string
	noColor bool
	list    bool
	all     bool
}

func newLogsCmd() *cobra.Command {
	var opts logsOptions

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "View run logs",
		Long: `View and tail run logs.

By default, shows the last 50 lines of the newest run log in ./logs. Use -f to
follow new entries in real time (like 'tail -f').`,
		Example: `  logexec logs                    # Newest run log, last 50 lines
  logexec logs --list             # All run logs with size and age
  logexec logs --all -f           # Follow every run log, merged
  logexec logs --level error      # Only ERROR and CRITICAL
  logexec logs --filter "add"     # Lines matching a pattern`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogs(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", logging.DefaultLogDir, "Run log directory")
	cmd.Flags().StringVar(&opts.file, "file", "", "Log file to view (default: newest in --dir)")
	cmd.Flags().IntVarP(&opts.lines, "lines", "n", 50, "Number of lines to show")
	cmd.Flags().BoolVarP(&opts.follow, "follow", "f", false, "Follow log output (like tail -f)")
	cmd.Flags().StringVar(&opts.level, "level", "", "Minimum level (debug|info|warning|error|critical)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Filter by pattern (regex)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&opts.list, "list", false, "List run logs instead of showing one")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Show every run log in --dir, merged by time")

	return cmd
}

func runLogs(cmd *cobra.Command, opts logsOptions) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	if opts.list {
		return listLogs(stdout, opts.dir)
	}

	paths, err := logPaths(opts)
	if err != nil {
		return err
	}

	var pattern *regexp.Regexp
	if opts.filter != "" {
		pattern, err = regexp.Compile(opts.filter)
		if err != nil {
			return fmt.Errorf("invalid filter pattern: %w", err)
		}
	}

	viewer, err := logging.NewViewer(logging.ViewerConfig{
		Level:      opts.level,
		Pattern:    pattern,
		NoColor:    opts.noColor,
		ShowSource: len(paths) > 1,
	}, stdout)
	if err != nil {
		return err
	}

	if len(paths) == 1 {
		_, _ = fmt.Fprintf(stderr, "Log file: %s\n", paths[0])
	} else {
		_, _ = fmt.Fprintf(stderr, "Log files: %s\n", strings.Join(paths, ", "))
	}
	if opts.follow {
		_, _ = fmt.Fprintln(stderr, "Following... (Ctrl+C to stop)")
	}
	_, _ = fmt.Fprintln(stderr, "---")

	if opts.follow {
		return runFollow(cmd.Context(), viewer, paths, stderr)
	}

	var entries []logging.LogEntry
	if len(paths) == 1 {
		entries, err = viewer.Tail(paths[0], opts.lines)
	} else {
		entries, err = viewer.TailMultiple(paths, opts.lines)
	}
	if err != nil {
		return err
	}

	viewer.Print(entries)
	return nil
}

// logPaths resolves the files to show: --file, every run log with --all, or
// the newest run log.
func logPaths(opts logsOptions) ([]string, error) {
	if opts.all && opts.file == "" {
		logs, err := logging.ListRunLogs(opts.dir)
		if err != nil {
			return nil, err
		}
		if len(logs) == 0 {
			return nil, fmt.Errorf("no log files found in %s", opts.dir)
		}
		paths := make([]string, len(logs))
		for i, l := range logs {
			paths[i] = l.Path
		}
		return paths, nil
	}

	path, err := logging.FindLogFile(opts.file, opts.dir)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func listLogs(w io.Writer, dir string) error {
	logs, err := logging.ListRunLogs(dir)
	if err != nil {
		return err
	}

	out := output.New(w)
	if len(logs) == 0 {
		out.Statusf("📁", "No run logs in %s", dir)
		return nil
	}

	rows := [][]string{{"PATH", "SIZE", "MODIFIED"}}
	for _, l := range logs {
		rows = append(rows, []string{
			l.Path,
			humanize.Bytes(uint64(l.Size)),
			humanize.Time(l.ModTime),
		})
	}
	out.Table(rows)
	return nil
}

func runFollow(ctx context.Context, viewer *logging.Viewer, paths []string, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	entries := make(chan logging.LogEntry, 100)
	errCh := make(chan error, 1)

	go func() {
		if len(paths) == 1 {
			errCh <- viewer.Follow(ctx, paths[0], entries)
			return
		}
		errCh <- viewer.FollowMultiple(ctx, paths, entries)
	}()

	for {
		select {
		case entry := <-entries:
			viewer.Print([]logging.LogEntry{entry})
		case err := <-errCh:
			return err
		case <-ctx.Done():
			_, _ = fmt.Fprintln(stderr, "\n---")
			_, _ = fmt.Fprintln(stderr, "Stopped.")
			return nil
		}
	}
}
