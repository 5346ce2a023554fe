// Package errors provides structured error handling for logexec.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (log directory, log file, lock)
//   - 4XX: Validation errors (templates, levels)
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and directory I/O errors.
	CategoryIO Category = "IO"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates the operation cannot produce a usable logger.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but the caller can continue.
	SeverityError Severity = "ERROR"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// IO errors (200-299)
	ErrCodeLogDirCreate = "ERR_201_LOG_DIR_CREATE"
	ErrCodeLogFileOpen  = "ERR_202_LOG_FILE_OPEN"
	ErrCodeLogLock      = "ERR_203_LOG_LOCK"

	// Validation errors (400-499)
	ErrCodeInvalidTemplate = "ERR_401_INVALID_TEMPLATE"
	ErrCodeInvalidLevel    = "ERR_402_INVALID_LEVEL"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract numeric portion (e.g., "101" from "ERR_101_CONFIG_NOT_FOUND")
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
// Anything that prevents a log file from being opened is fatal.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeLogDirCreate, ErrCodeLogFileOpen, ErrCodeLogLock:
		return SeverityFatal
	default:
		return SeverityError
	}
}
