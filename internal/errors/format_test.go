package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatForCLI(t *testing.T) {
	// Given: a structured error with cause and suggestion
	err := New(ErrCodeLogDirCreate, "cannot create log directory", errors.New("permission denied")).
		WithSuggestion("choose a writable --log-file location")

	// When: formatting for the CLI
	out := FormatForCLI(err)

	// Then: every part is present
	assert.Contains(t, out, "Error: cannot create log directory")
	assert.Contains(t, out, "Cause: permission denied")
	assert.Contains(t, out, "Hint: choose a writable --log-file location")
	assert.Contains(t, out, "Code: ERR_201_LOG_DIR_CREATE")
}

func TestFormatForCLI_PlainError(t *testing.T) {
	out := FormatForCLI(errors.New("boom"))

	assert.Contains(t, out, "Error: boom")
	assert.Contains(t, out, "Code: ERR_501_INTERNAL")
	assert.NotContains(t, out, "Cause:")
}

func TestFormatForCLI_Nil(t *testing.T) {
	assert.Empty(t, FormatForCLI(nil))
}

func TestFormatForLog(t *testing.T) {
	err := New(ErrCodeInvalidLevel, "unknown level \"loud\"", nil).WithDetail("input", "loud")

	fields := FormatForLog(err)

	assert.Equal(t, ErrCodeInvalidLevel, fields["error_code"])
	assert.Equal(t, "VALIDATION", fields["category"])
	assert.Equal(t, "loud", fields["detail_input"])
	assert.NotContains(t, fields, "cause")

	assert.Equal(t, map[string]any{"error": "x"}, FormatForLog(errors.New("x")))
	assert.Nil(t, FormatForLog(nil))
}
