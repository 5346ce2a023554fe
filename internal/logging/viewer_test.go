package logging

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `2026-01-02 03:04:05,000 - logexec - DEBUG - starting
2026-01-02 03:04:06,000 - logexec - INFO - Calling function add with args: (2, 3) kwargs: {}
traceback continuation line
2026-01-02 03:04:07,000 - logexec - WARNING - slow call
2026-01-02 03:04:08,000 - logexec - ERROR - add failed
`

func writeSample(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestViewer(t *testing.T, cfg ViewerConfig) (*Viewer, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	cfg.NoColor = true
	v, err := NewViewer(cfg, buf)
	require.NoError(t, err)
	return v, buf
}

func TestParseLine(t *testing.T) {
	entry := ParseLine("2026-01-02 03:04:06,250 - svc - INFO - a - b")

	require.True(t, entry.IsValid)
	assert.Equal(t, "svc", entry.Logger)
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "a - b", entry.Msg)
	assert.Equal(t, 250*time.Millisecond, time.Duration(entry.Time.Nanosecond()))
}

func TestParseLine_Invalid(t *testing.T) {
	for _, line := range []string{
		"",
		"plain text",
		"not a time - svc - INFO - m",
		"2026-01-02 03:04:06,250 - svc - LOUD - m",
	} {
		entry := ParseLine(line)
		assert.False(t, entry.IsValid, line)
		assert.Equal(t, line, entry.Raw)
	}
}

func TestViewer_Tail(t *testing.T) {
	path := writeSample(t, "run.log", sampleLog)
	v, _ := newTestViewer(t, ViewerConfig{})

	entries, err := v.Tail(path, 2)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "slow call", entries[0].Msg)
	assert.Equal(t, "add failed", entries[1].Msg)
}

func TestViewer_TailLevelFilter(t *testing.T) {
	path := writeSample(t, "run.log", sampleLog)
	v, _ := newTestViewer(t, ViewerConfig{Level: "warning"})

	entries, err := v.Tail(path, 50)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "WARNING", entries[0].Level)
	assert.Equal(t, "ERROR", entries[1].Level)
}

func TestViewer_TailPatternFilter(t *testing.T) {
	path := writeSample(t, "run.log", sampleLog)
	v, _ := newTestViewer(t, ViewerConfig{Pattern: regexp.MustCompile(`add`)})

	entries, err := v.Tail(path, 50)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].Msg, "Calling function add")
}

func TestViewer_ContinuationLinesWithoutLevelFilter(t *testing.T) {
	path := writeSample(t, "run.log", sampleLog)
	v, _ := newTestViewer(t, ViewerConfig{})

	entries, err := v.Tail(path, 50)
	require.NoError(t, err)

	require.Len(t, entries, 5)
	assert.False(t, entries[2].IsValid)
	assert.Equal(t, "traceback continuation line", v.FormatEntry(entries[2]))
}

func TestViewer_TailMissingFile(t *testing.T) {
	v, _ := newTestViewer(t, ViewerConfig{})

	_, err := v.Tail(filepath.Join(t.TempDir(), "missing.log"), 10)
	assert.Error(t, err)
}

func TestNewViewer_InvalidLevel(t *testing.T) {
	_, err := NewViewer(ViewerConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestViewer_TailMultipleMergesByTime(t *testing.T) {
	a := writeSample(t, "a.log", "2026-01-02 03:04:05,000 - a - INFO - first\n2026-01-02 03:04:07,000 - a - INFO - third\n")
	b := writeSample(t, "b.log", "2026-01-02 03:04:06,000 - b - INFO - second\n")
	v, _ := newTestViewer(t, ViewerConfig{ShowSource: true})

	entries, err := v.TailMultiple([]string{a, b, "/nonexistent.log"}, 10)
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{entries[0].Msg, entries[1].Msg, entries[2].Msg})
	assert.Equal(t, "b.log", entries[1].Source)
	assert.Contains(t, v.FormatEntry(entries[1]), "[b.log] b: second")
}

func TestViewer_FormatEntryAndPrint(t *testing.T) {
	v, buf := newTestViewer(t, ViewerConfig{})
	entry := ParseLine("2026-01-02 03:04:05,123 - svc - INFO - ready")

	v.Print([]LogEntry{entry})

	assert.Equal(t, "03:04:05.123 INFO     svc: ready\n", buf.String())
}

func TestViewer_Follow(t *testing.T) {
	// Given: an existing log file with history
	path := writeSample(t, "run.log", sampleLog)
	v, _ := newTestViewer(t, ViewerConfig{Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entries := make(chan LogEntry, 16)
	done := make(chan error, 1)
	go func() { done <- v.Follow(ctx, path, entries) }()

	// When: lines are appended until the follower reports one
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	defer f.Close()

	var got LogEntry
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
wait:
	for i := 0; ; i++ {
		select {
		case got = <-entries:
			break wait
		case <-ticker.C:
			_, err := fmt.Fprintf(f, "2026-01-02 03:04:09,000 - logexec - DEBUG - hidden %d\n", i)
			require.NoError(t, err)
			_, err = fmt.Fprintf(f, "2026-01-02 03:04:09,000 - logexec - INFO - appended %d\n", i)
			require.NoError(t, err)
		case <-ctx.Done():
			t.Fatal("follower did not report an appended line")
		}
	}

	// Then: only new, matching lines are delivered
	assert.True(t, strings.HasPrefix(got.Msg, "appended "))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("follower did not stop after cancel")
	}
}

func TestListRunLogs_NewestFirst(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"old.log", "mid.log", "new.log"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", i+1)), 0o644))
		ts := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, ts, ts))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.log"), 0o755))

	logs, err := ListRunLogs(dir)
	require.NoError(t, err)

	require.Len(t, logs, 3)
	assert.Equal(t, "new.log", filepath.Base(logs[0].Path))
	assert.Equal(t, int64(3), logs[0].Size)
	assert.Equal(t, "old.log", filepath.Base(logs[2].Path))
}

func TestFindLogFile(t *testing.T) {
	dir := t.TempDir()

	_, err := FindLogFile("", dir)
	assert.Error(t, err, "empty directory has no log")

	path := filepath.Join(dir, "run.log")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	found, err := FindLogFile("", dir)
	require.NoError(t, err)
	assert.Equal(t, path, found)

	found, err = FindLogFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, path, found)

	_, err = FindLogFile(filepath.Join(dir, "missing.log"), dir)
	assert.Error(t, err)
}

func TestFileWriter_ExclusiveCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.log")

	w, err := CreateFileWriter(path)
	require.NoError(t, err)

	_, err = CreateFileWriter(path)
	assert.ErrorIs(t, err, os.ErrExist)

	w.SetImmediateSync(false)
	_, err = w.Write([]byte("line\n"))
	require.NoError(t, err)
	require.NoError(t, w.Sync())
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second close is a no-op")

	_, err = w.Write([]byte("late\n"))
	assert.ErrorIs(t, err, os.ErrClosed)

	reopened, err := OpenFileWriter(path)
	require.NoError(t, err)
	_, err = reopened.Write([]byte("appended\n"))
	require.NoError(t, err)
	require.NoError(t, reopened.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\nappended\n", string(content))
}
