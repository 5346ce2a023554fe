package logging

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// pollInterval is the follow fallback when no file watcher is available.
const pollInterval = 100 * time.Millisecond

// LogEntry is one parsed log line.
type LogEntry struct {
	Time    time.Time
	Level   string
	Logger  string
	Msg     string
	Source  string // file base name, set when viewing several files
	Raw     string // original line
	IsValid bool   // whether the line had all four fields
}

// ViewerConfig configures the log viewer.
type ViewerConfig struct {
	Level      string         // minimum level (debug, info, warning, error, critical)
	Pattern    *regexp.Regexp // filter on the raw line
	NoColor    bool
	ShowSource bool
}

// Viewer reads run log files back for display.
type Viewer struct {
	config   ViewerConfig
	minLevel *Level
	out      io.Writer
	styles   *levelStyles
}

// NewViewer creates a viewer writing to out. An unparseable Level is an error.
func NewViewer(cfg ViewerConfig, out io.Writer) (*Viewer, error) {
	v := &Viewer{config: cfg, out: out}
	if cfg.Level != "" {
		l, err := ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		v.minLevel = &l
	}
	if !cfg.NoColor {
		v.styles = newLevelStyles(out)
	}
	return v, nil
}

// Tail reads the last n lines of path and returns the matching entries.
func (v *Viewer) Tail(path string, n int) ([]LogEntry, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	return v.filterLines(lastN(lines, n), ""), nil
}

// TailMultiple tails several files and merges the entries by timestamp.
// Files that cannot be read are skipped.
func (v *Viewer) TailMultiple(paths []string, n int) ([]LogEntry, error) {
	var all []LogEntry
	for _, path := range paths {
		lines, err := readLines(path)
		if err != nil {
			continue
		}
		all = append(all, v.filterLines(lastN(lines, n), filepath.Base(path))...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Time.Before(all[j].Time)
	})
	return lastN(all, n), nil
}

// Follow sends entries appended to path until ctx is cancelled.
// It uses a file watcher and falls back to polling if none can be created.
func (v *Viewer) Follow(ctx context.Context, path string, entries chan<- LogEntry) error {
	return v.follow(ctx, path, "", entries)
}

// FollowMultiple follows several files at once. The first failure stops all of them.
func (v *Viewer) FollowMultiple(ctx context.Context, paths []string, entries chan<- LogEntry) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, path := range paths {
		g.Go(func() error {
			return v.follow(gctx, path, filepath.Base(path), entries)
		})
	}
	return g.Wait()
}

func (v *Viewer) follow(ctx context.Context, path, source string, entries chan<- LogEntry) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}
	reader := bufio.NewReader(file)

	var wake <-chan struct{}
	if watcher, err := fsnotify.NewWatcher(); err == nil && watcher.Add(path) == nil {
		defer func() { _ = watcher.Close() }()
		wake = writeEvents(ctx, watcher)
	} else {
		if watcher != nil {
			_ = watcher.Close()
		}
		wake = ticks(ctx, pollInterval)
	}

	var partial string
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-wake:
			if !ok {
				return nil
			}
		}

		for {
			chunk, err := reader.ReadString('\n')
			if err != nil {
				// Keep an unterminated line until the rest arrives.
				partial += chunk
				break
			}
			line := strings.TrimSuffix(partial+chunk, "\n")
			partial = ""
			if line == "" {
				continue
			}

			entry := ParseLine(line)
			entry.Source = source
			if !v.matchesFilter(entry) {
				continue
			}
			select {
			case entries <- entry:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// writeEvents turns watcher write events into wake-ups.
func writeEvents(ctx context.Context, w *fsnotify.Watcher) <-chan struct{} {
	wake := make(chan struct{}, 1)
	go func() {
		defer close(wake)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				select {
				case wake <- struct{}{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return wake
}

// ticks wakes the follower every interval.
func ticks(ctx context.Context, interval time.Duration) <-chan struct{} {
	wake := make(chan struct{}, 1)
	go func() {
		defer close(wake)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				select {
				case wake <- struct{}{}:
				default:
				}
			}
		}
	}()
	return wake
}

// FormatEntry formats an entry for display. Unparseable lines are returned raw.
func (v *Viewer) FormatEntry(entry LogEntry) string {
	if !entry.IsValid {
		return entry.Raw
	}

	sourceLabel := ""
	if v.config.ShowSource && entry.Source != "" {
		sourceLabel = "[" + entry.Source + "] "
	}

	return fmt.Sprintf("%s %s %s%s: %s",
		entry.Time.Format("15:04:05.000"),
		v.formatLevel(entry.Level),
		sourceLabel,
		entry.Logger,
		entry.Msg)
}

// Print writes entries to the output, one per line.
func (v *Viewer) Print(entries []LogEntry) {
	for _, entry := range entries {
		_, _ = fmt.Fprintln(v.out, v.FormatEntry(entry))
	}
}

// ParseLine splits a <timestamp> - <name> - <LEVEL> - <message> line.
func ParseLine(line string) LogEntry {
	entry := LogEntry{Raw: line}

	parts := strings.SplitN(line, fieldSeparator, 4)
	if len(parts) != 4 {
		return entry
	}
	t, err := time.ParseInLocation(DefaultTimeLayout, parts[0], time.Local)
	if err != nil {
		return entry
	}
	if _, err := ParseLevel(parts[2]); err != nil {
		return entry
	}

	entry.Time = t
	entry.Logger = parts[1]
	entry.Level = parts[2]
	entry.Msg = parts[3]
	entry.IsValid = true
	return entry
}

func (v *Viewer) filterLines(lines []string, source string) []LogEntry {
	var entries []LogEntry
	for _, line := range lines {
		entry := ParseLine(line)
		entry.Source = source
		if v.matchesFilter(entry) {
			entries = append(entries, entry)
		}
	}
	return entries
}

// matchesFilter applies the level and pattern filters. Lines without a level
// (continuations of multi-line messages) only pass when no level filter is set.
func (v *Viewer) matchesFilter(entry LogEntry) bool {
	if v.minLevel != nil {
		if !entry.IsValid {
			return false
		}
		l, err := ParseLevel(entry.Level)
		if err != nil || l < *v.minLevel {
			return false
		}
	}

	if v.config.Pattern != nil && !v.config.Pattern.MatchString(entry.Raw) {
		return false
	}
	return true
}

// formatLevel pads the label to CRITICAL's width and colors it.
func (v *Viewer) formatLevel(level string) string {
	padded := fmt.Sprintf("%-8s", level)
	if v.styles == nil {
		return padded
	}
	l, err := ParseLevel(level)
	if err != nil {
		return padded
	}
	return strings.Replace(padded, level, v.styles.label(l), 1)
}

func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	scanner := bufio.NewScanner(file)
	// Messages carry rendered arguments and can be long.
	const maxCapacity = 1024 * 1024
	scanner.Buffer(make([]byte, 0, 64*1024), maxCapacity)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}
	return lines, nil
}

func lastN[T any](items []T, n int) []T {
	if n >= 0 && len(items) > n {
		return items[len(items)-n:]
	}
	return items
}
