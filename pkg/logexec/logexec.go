// Package logexec is the public API of the logexec logging layer.
//
// Init configures a named logger with a per-run log file and an optional
// console sink:
//
//	logger, err := logexec.Init(logexec.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	defer logger.Close()
//
// Trace wraps functions so that each call is logged before it runs:
//
//	add := logexec.Wrap2(logexec.MustTrace(), "add", func(a, b int) int { return a + b })
//	add(2, 3, logexec.WithLogger(logger))
package logexec

import (
	"github.com/Aman-CERP/logexec/internal/invocation"
	"github.com/Aman-CERP/logexec/internal/logging"
)

// Types re-exported from the logging and invocation packages.
type (
	Level           = logging.Level
	Logger          = logging.Logger
	Registry        = logging.Registry
	Options         = logging.Options
	Initializer     = logging.Initializer
	Advisory        = logging.Advisory
	AdvisoryKind    = logging.AdvisoryKind
	AdvisoryHandler = logging.AdvisoryHandler
	HasLogger       = invocation.HasLogger
	Decorator       = invocation.Decorator
	Option          = invocation.Option
	Func            = invocation.Func
	Kwargs          = invocation.Kwargs
	Kwarg           = invocation.Kwarg
)

// Severity levels, advisory kinds and decorator defaults.
const (
	LevelDebug    = logging.LevelDebug
	LevelInfo     = logging.LevelInfo
	LevelWarning  = logging.LevelWarning
	LevelError    = logging.LevelError
	LevelCritical = logging.LevelCritical

	AdvisoryDirectoryCreated = logging.AdvisoryDirectoryCreated
	AdvisoryFileExisted      = logging.AdvisoryFileExisted
	AdvisoryNoLogger         = logging.AdvisoryNoLogger

	LoggerKey      = invocation.LoggerKey
	DefaultMessage = invocation.DefaultMessage
)

// Constructors and decorator options.
var (
	ParseLevel       = logging.ParseLevel
	DefaultOptions   = logging.DefaultOptions
	NewRegistry      = logging.NewRegistry
	DefaultRegistry  = logging.DefaultRegistry
	NewInitializer   = logging.NewInitializer
	WriterAdvisories = logging.WriterAdvisories

	WithLevel      = invocation.WithLevel
	WithMessage    = invocation.WithMessage
	WithRegistry   = invocation.WithRegistry
	WithAdvisories = invocation.WithAdvisories
	WithLogger     = invocation.WithLogger
	KW             = invocation.KW
)

// Init configures the default registry's logexec logger.
func Init(opts Options) (*Logger, error) {
	return logging.Init(opts)
}

// Trace builds a call decorator. With no options it logs at INFO with
// DefaultMessage and falls back to the default registry's root logger.
func Trace(opts ...Option) (*Decorator, error) {
	return invocation.New(opts...)
}

// MustTrace is Trace for static options. It panics on an invalid template.
func MustTrace(opts ...Option) *Decorator {
	return invocation.MustNew(opts...)
}

// Wrap0 traces a function without parameters.
func Wrap0[R any](d *Decorator, name string, fn func() R) func(...Kwarg) R {
	return invocation.Wrap0(d, name, fn)
}

// Wrap1 traces a one-parameter function.
func Wrap1[A, R any](d *Decorator, name string, fn func(A) R) func(A, ...Kwarg) R {
	return invocation.Wrap1(d, name, fn)
}

// Wrap2 traces a two-parameter function.
func Wrap2[A, B, R any](d *Decorator, name string, fn func(A, B) R) func(A, B, ...Kwarg) R {
	return invocation.Wrap2(d, name, fn)
}

// Wrap3 traces a three-parameter function.
func Wrap3[A, B, C, R any](d *Decorator, name string, fn func(A, B, C) R) func(A, B, C, ...Kwarg) R {
	return invocation.Wrap3(d, name, fn)
}
