package cmd

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lxerrors "github.com/Aman-CERP/logexec/internal/errors"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunCmd_ExplicitFileWithoutConsole(t *testing.T) {
	// Given: an empty working directory
	dir := inTempDir(t)

	// When: writing one message to "test" without console output
	stdout, stderr, err := runCLI(t, "run", "--log-file", "test", "--no-console", "hello")

	// Then: test.log holds the record and the file is announced on stdout
	require.NoError(t, err)
	assert.Contains(t, stdout, "logging_init: Logging to file test.log.")
	assert.Empty(t, stderr)
	assert.Regexp(t,
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} - logexec - INFO - hello\n$`),
		readFile(t, filepath.Join(dir, "test.log")))
}

func TestRunCmd_DerivedPath(t *testing.T) {
	dir := inTempDir(t)

	_, stderr, err := runCLI(t, "run", "--no-console", "one", "two")
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	var logs []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".log") {
			logs = append(logs, e.Name())
		}
	}
	require.Len(t, logs, 1)
	assert.Regexp(t, `_\d{8}_\d{6}\.log$`, logs[0])
	assert.Contains(t, stderr, "LogSettingWarning: logging_init: Path logs does not exist!")

	content := readFile(t, filepath.Join(dir, "logs", logs[0]))
	assert.Equal(t, 2, strings.Count(content, "\n"))
}

func TestRunCmd_ConsoleThreshold(t *testing.T) {
	// Given: console at WARNING
	inTempDir(t)

	// When: writing at DEBUG and at ERROR
	_, stderr, err := runCLI(t, "run", "--log-file", "a", "--console-level", "warning", "--level", "debug", "quiet")
	require.NoError(t, err)
	_, stderr2, err := runCLI(t, "run", "--log-file", "b", "--console-level", "warning", "--level", "error", "loud")
	require.NoError(t, err)

	// Then: only the ERROR record reaches the console, both reach their files
	assert.NotContains(t, stderr, "quiet")
	assert.Contains(t, stderr2, " - logexec - ERROR - loud")
	assert.Contains(t, readFile(t, "a.log"), "DEBUG - quiet")
	assert.Contains(t, readFile(t, "b.log"), "ERROR - loud")
}

func TestRunCmd_FileLevelFilters(t *testing.T) {
	inTempDir(t)

	_, _, err := runCLI(t, "run", "--log-file", "f", "--no-console", "--file-level", "error", "--level", "info", "dropped")
	require.NoError(t, err)

	assert.Empty(t, readFile(t, "f.log"))
}

func TestRunCmd_ExistingFileIsNotReused(t *testing.T) {
	// Given: taken.log already exists
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile("taken.log", []byte("previous\n"), 0o644))

	// When: asking for it again
	stdout, stderr, err := runCLI(t, "run", "--log-file", "taken", "--no-console", "next")

	// Then: a derived file is used and the old one is untouched
	require.NoError(t, err)
	assert.Contains(t, stderr, "logging_init: File taken.log already exists!")
	assert.NotContains(t, stdout, "Logging to file taken.log")
	assert.Equal(t, "previous\n", readFile(t, filepath.Join(dir, "taken.log")))
}

func TestRunCmd_ConfigFileAndFlagPrecedence(t *testing.T) {
	// Given: a project config naming the file and logger
	inTempDir(t)
	require.NoError(t, os.WriteFile("logexec.yaml", []byte(
		"log_file: fromcfg\nsend_to_console: false\nlogger_name: jobs\n"), 0o644))

	// When: running once with the config and once overriding the file
	_, stderr, err := runCLI(t, "run", "first")
	require.NoError(t, err)
	_, _, err = runCLI(t, "run", "--log-file", "fromflag", "second")
	require.NoError(t, err)

	// Then: config values apply unless a flag is given
	assert.Empty(t, stderr)
	assert.Contains(t, readFile(t, "fromcfg.log"), " - jobs - INFO - first")
	assert.Contains(t, readFile(t, "fromflag.log"), " - jobs - INFO - second")
}

func TestRunCmd_EnvOverride(t *testing.T) {
	inTempDir(t)
	t.Setenv("LOGEXEC_LOG_FILE", "fromenv")
	t.Setenv("LOGEXEC_SEND_TO_CONSOLE", "false")

	_, stderr, err := runCLI(t, "run", "msg")

	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, readFile(t, "fromenv.log"), "INFO - msg")
}

func TestRunCmd_DirectoryFailureIsFatal(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("blocker", []byte("x"), 0o644))

	stdout, stderr, err := runCLI(t, "run", "--log-file", "blocker/run", "msg")

	require.Error(t, err)
	assert.Equal(t, lxerrors.ErrCodeLogDirCreate, lxerrors.GetCode(err))
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Code: ERR_201_LOG_DIR_CREATE")
}

func TestRunCmd_RequiresMessage(t *testing.T) {
	inTempDir(t)

	_, _, err := runCLI(t, "run")

	assert.Error(t, err)
}

func TestRunCmd_MissingConfigFile(t *testing.T) {
	inTempDir(t)

	_, stderr, err := runCLI(t, "run", "--config", "nope.yaml", "msg")

	require.Error(t, err)
	assert.Contains(t, stderr, "ERR_101_CONFIG_NOT_FOUND")
}
