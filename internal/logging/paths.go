package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// LogSuffix ends every log file name.
	LogSuffix = ".log"
	// DefaultLogDir is where derived log paths live.
	DefaultLogDir = "./logs"
	// TimestampLayout is the YYYYMMDD_HHMMSS part of derived file names.
	TimestampLayout = "20060102_150405"
)

// ScriptName returns the entry-point base name without extension,
// e.g. "report" for /usr/local/bin/report.exe.
func ScriptName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return "logexec"
	}
	base := filepath.Base(os.Args[0])
	if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" {
		return name
	}
	return base
}

// DefaultLogFileName returns <dir>/<script>_<YYYYMMDD_HHMMSS>.log.
// The directory is kept as written so "./logs" stays "./logs".
func DefaultLogFileName(dir, script string, now time.Time) string {
	name := fmt.Sprintf("%s_%s%s", script, now.Format(TimestampLayout), LogSuffix)
	if dir == "" {
		return name
	}
	return strings.TrimRight(dir, `/\`) + string(filepath.Separator) + name
}

// NormalizeSuffix appends LogSuffix unless path already ends with it.
func NormalizeSuffix(path string) string {
	if strings.HasSuffix(path, LogSuffix) {
		return path
	}
	return path + LogSuffix
}

// withCounter inserts _n before the suffix; n == 0 returns path unchanged.
func withCounter(path string, n int) string {
	if n == 0 {
		return path
	}
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(path, LogSuffix), n, LogSuffix)
}

// RunLog describes a log file on disk.
type RunLog struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// ListRunLogs returns the *.log files in dir, newest first.
func ListRunLogs(dir string) ([]RunLog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read log directory: %w", err)
	}

	var logs []RunLog
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), LogSuffix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue // removed since ReadDir
		}
		logs = append(logs, RunLog{
			Path:    filepath.Join(dir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(logs, func(i, j int) bool {
		if logs[i].ModTime.Equal(logs[j].ModTime) {
			return logs[i].Path > logs[j].Path
		}
		return logs[i].ModTime.After(logs[j].ModTime)
	})
	return logs, nil
}

// FindLogFile picks the log file to view.
// Priority:
// 1. Explicit path (if provided)
// 2. The newest run log in dir
func FindLogFile(explicit, dir string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit, nil
		}
		return "", fmt.Errorf("log file not found: %s", explicit)
	}

	logs, err := ListRunLogs(dir)
	if err != nil {
		return "", fmt.Errorf("no log files found in %s: %w", dir, err)
	}
	if len(logs) == 0 {
		return "", fmt.Errorf("no log files found in %s.\nRun 'logexec run' to create one", dir)
	}
	return logs[0].Path, nil
}
