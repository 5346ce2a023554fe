package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogError_Unwrap_PreservesOriginalError(t *testing.T) {
	// Given: an original error
	originalErr := os.ErrPermission

	// When: wrapping with LogError
	logErr := New(ErrCodeLogDirCreate, "cannot create log directory logs", originalErr)

	// Then: unwrapping returns original error
	require.NotNil(t, logErr)
	assert.Equal(t, originalErr, errors.Unwrap(logErr))
	assert.True(t, errors.Is(logErr, os.ErrPermission))
}

func TestLogError_Error_ReturnsFormattedMessage(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		message  string
		cause    error
		expected string
	}{
		{
			name:     "config error",
			code:     ErrCodeConfigNotFound,
			message:  "config file not found",
			expected: "[ERR_101_CONFIG_NOT_FOUND] config file not found",
		},
		{
			name:     "template error",
			code:     ErrCodeInvalidTemplate,
			message:  "unknown field {name}",
			expected: "[ERR_401_INVALID_TEMPLATE] unknown field {name}",
		},
		{
			name:     "with cause",
			code:     ErrCodeLogFileOpen,
			message:  "cannot open log file",
			cause:    errors.New("disk full"),
			expected: "[ERR_202_LOG_FILE_OPEN] cannot open log file: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.cause)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestLogError_Is_MatchesByCode(t *testing.T) {
	// Given: an error wrapped twice with fmt
	err := fmt.Errorf("init: %w", New(ErrCodeInvalidLevel, "bad level", nil))

	// Then: errors.Is matches a sentinel with the same code only
	assert.True(t, errors.Is(err, &LogError{Code: ErrCodeInvalidLevel}))
	assert.False(t, errors.Is(err, &LogError{Code: ErrCodeInvalidTemplate}))
}

func TestNew_DerivesCategoryAndSeverity(t *testing.T) {
	tests := []struct {
		code     string
		category Category
		severity Severity
	}{
		{ErrCodeConfigInvalid, CategoryConfig, SeverityError},
		{ErrCodeLogDirCreate, CategoryIO, SeverityFatal},
		{ErrCodeLogFileOpen, CategoryIO, SeverityFatal},
		{ErrCodeLogLock, CategoryIO, SeverityFatal},
		{ErrCodeInvalidTemplate, CategoryValidation, SeverityError},
		{ErrCodeInternal, CategoryInternal, SeverityError},
		{"bad", CategoryInternal, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "msg", nil)
			assert.Equal(t, tt.category, err.Category)
			assert.Equal(t, tt.severity, err.Severity)
		})
	}
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestHelpers_WorkThroughChains(t *testing.T) {
	// Given: a fatal error wrapped by fmt
	err := fmt.Errorf("setup: %w", New(ErrCodeLogDirCreate, "mkdir", nil))

	// Then: helpers see through the chain
	assert.True(t, IsFatal(err))
	assert.Equal(t, ErrCodeLogDirCreate, GetCode(err))
	assert.Equal(t, CategoryIO, GetCategory(err))

	// And: plain errors yield zero values
	plain := errors.New("plain")
	assert.False(t, IsFatal(plain))
	assert.Empty(t, GetCode(plain))
	assert.Empty(t, GetCategory(plain))
}

func TestWithDetailAndSuggestion(t *testing.T) {
	err := New(ErrCodeConfigInvalid, "bad config", nil).
		WithDetail("path", "logexec.yaml").
		WithSuggestion("check console_level")

	assert.Equal(t, "logexec.yaml", err.Details["path"])
	assert.Equal(t, "check console_level", err.Suggestion)
}
