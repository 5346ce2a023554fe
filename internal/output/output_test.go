package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_Status_PrintsIconAndMessage(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing a status message
	w.Status("📝", "Logging to file run.log")

	// Then: output contains icon and message
	assert.Equal(t, "📝 Logging to file run.log\n", buf.String())
}

func TestWriter_Status_NoIconIndents(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Status("", "detail")

	assert.Equal(t, "   detail\n", buf.String())
}

func TestWriter_Success_PrintsCheckmark(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Successf("add returned %d", 5)

	assert.Contains(t, buf.String(), "✅")
	assert.Contains(t, buf.String(), "add returned 5")
}

func TestWriter_Warning_PrintsWarningIcon(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Warningf("%s: created logs", "LogSettingWarning")

	assert.Contains(t, buf.String(), "⚠️")
	assert.Contains(t, buf.String(), "LogSettingWarning: created logs")
}

func TestWriter_Error_PrintsErrorIcon(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Error("cannot open log file")

	assert.Contains(t, buf.String(), "❌")
	assert.Contains(t, buf.String(), "cannot open log file")
}

func TestWriter_Table_AlignsColumns(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Table([][]string{
		{"PATH", "SIZE", "MODIFIED"},
		{"logs/a.log", "1.2 kB", "2 minutes ago"},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "PATH        SIZE    MODIFIED", lines[0])
	assert.Equal(t, "logs/a.log  1.2 kB  2 minutes ago", lines[1])
}
