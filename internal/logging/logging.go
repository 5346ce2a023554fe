package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	lxerrors "github.com/Aman-CERP/logexec/internal/errors"
	"github.com/Aman-CERP/logexec/internal/output"
)

// DefaultLoggerName is the registry name of the logger Init configures.
const DefaultLoggerName = "logexec"

// maxCounter bounds the _n disambiguation of same-second collisions.
const maxCounter = 1000

// Options are the per-call initializer inputs.
type Options struct {
	// LogFile is the requested path. Empty means derive one.
	LogFile string
	// ConsoleLevel is the console sink threshold.
	ConsoleLevel Level
	// FileLevel is the file sink threshold.
	FileLevel Level
	// SendToConsole attaches a console sink.
	SendToConsole bool
}

// DefaultOptions returns DEBUG thresholds with console output on.
func DefaultOptions() Options {
	return Options{
		ConsoleLevel:  LevelDebug,
		FileLevel:     LevelDebug,
		SendToConsole: true,
	}
}

// Initializer builds configured loggers. The zero value is not usable; use
// NewInitializer. Fields may be changed before the first Init call.
//
// Callers must serialize Init calls within a process. Across processes the
// directory lock and exclusive file creation keep runs from sharing a file.
type Initializer struct {
	Registry *Registry
	// Name is the logger name to configure.
	Name string
	// Dir is the directory of derived paths.
	Dir string
	// Script is the script part of derived file names.
	Script string
	// Now supplies the timestamp of derived file names.
	Now func() time.Time
	// Stdout receives the announcement line.
	Stdout io.Writer
	// Console is where the console sink writes.
	Console io.Writer
	// Advisories receives recovered conditions.
	Advisories AdvisoryHandler
	// Formatter is shared by all sinks.
	Formatter Formatter
}

// NewInitializer returns an initializer bound to reg with process defaults:
// ./logs, the running script's name, stdout announcements, stderr console and
// stderr advisories.
func NewInitializer(reg *Registry) *Initializer {
	return &Initializer{
		Registry:   reg,
		Name:       DefaultLoggerName,
		Dir:        DefaultLogDir,
		Script:     ScriptName(),
		Now:        time.Now,
		Stdout:     os.Stdout,
		Console:    os.Stderr,
		Advisories: WriterAdvisories(os.Stderr),
		Formatter:  NewTextFormatter(),
	}
}

// Init configures the default registry's logexec logger.
func Init(opts Options) (*Logger, error) {
	return NewInitializer(DefaultRegistry()).Init(opts)
}

// Init resolves the log file, attaches the sinks and returns the logger.
// Re-initializing the same logger replaces (and closes) its previous sinks.
func (in *Initializer) Init(opts Options) (*Logger, error) {
	path, rejected, err := in.resolvePath(opts.LogFile)
	if err != nil {
		return nil, err
	}

	fw, err := in.createFile(path)
	if err != nil {
		return nil, err
	}
	if rejected != "" {
		in.advise(Advisory{
			Kind:       AdvisoryFileExisted,
			Message:    fmt.Sprintf("logging_init: File %s already exists! Using %s instead.", rejected, fw.Path()),
			Path:       rejected,
			Substitute: fw.Path(),
		})
	}

	output.New(in.Stdout).Statusf("📝", "logging_init: Logging to file %s.", fw.Path())

	sinks := make([]*Sink, 0, 2)
	if opts.SendToConsole {
		console := NewConsoleSink(in.Console, opts.ConsoleLevel)
		console.SetFormatter(in.Formatter)
		sinks = append(sinks, console)
	}
	file := NewFileSink(fw, opts.FileLevel)
	file.SetFormatter(in.Formatter)
	sinks = append(sinks, file)

	logger := in.Registry.Get(in.Name)
	logger.SetLevel(LevelDebug)
	if err := logger.replaceSinks(sinks); err != nil {
		reportSinkError(file, fmt.Errorf("closing previous sinks: %w", err))
	}
	return logger, nil
}

// resolvePath applies derivation, suffix normalization, directory creation and
// collision avoidance, in that order. When the requested file already exists,
// rejected names it and path is the default to create instead.
func (in *Initializer) resolvePath(requested string) (path, rejected string, err error) {
	path = requested
	if path == "" {
		path = in.defaultPath()
	}
	path = NormalizeSuffix(path)

	if err := in.ensureDir(path); err != nil {
		return "", "", err
	}

	if exists(path) {
		rejected = path
		path = in.defaultPath()
		if err := in.ensureDir(path); err != nil {
			return "", "", err
		}
	}
	return path, rejected, nil
}

// createFile creates path exclusively under the directory lock. If path was
// taken in the meantime (or is a same-second default), _1, _2, ... are tried.
func (in *Initializer) createFile(path string) (*FileWriter, error) {
	lock := newDirLock(dirOf(path))
	if err := lock.Lock(); err != nil {
		return nil, lxerrors.New(lxerrors.ErrCodeLogLock, "cannot lock log directory", err)
	}
	defer func() { _ = lock.Unlock() }()

	for n := 0; n < maxCounter; n++ {
		candidate := withCounter(path, n)
		fw, err := CreateFileWriter(candidate)
		if err == nil {
			return fw, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, lxerrors.New(lxerrors.ErrCodeLogFileOpen, "cannot open log file "+candidate, err)
		}
	}
	return nil, lxerrors.New(lxerrors.ErrCodeLogFileOpen,
		fmt.Sprintf("no free log file name for %s after %d attempts", path, maxCounter), os.ErrExist)
}

// ensureDir creates the parent directory of path when missing.
func (in *Initializer) ensureDir(path string) error {
	dir := dirOf(path)
	if info, err := os.Stat(dir); err == nil {
		if !info.IsDir() {
			return lxerrors.New(lxerrors.ErrCodeLogDirCreate, "log directory "+dir+" is not a directory", nil)
		}
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return lxerrors.New(lxerrors.ErrCodeLogDirCreate, "cannot access log directory "+dir, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return lxerrors.New(lxerrors.ErrCodeLogDirCreate, "cannot create log directory "+dir, err).
			WithSuggestion("choose a writable location with --log-file or log_dir")
	}
	in.advise(Advisory{
		Kind:    AdvisoryDirectoryCreated,
		Message: fmt.Sprintf("logging_init: Path %s does not exist! Creating log file %s.", dir, path),
		Path:    dir,
	})
	return nil
}

func (in *Initializer) defaultPath() string {
	return DefaultLogFileName(in.Dir, in.Script, in.Now())
}

func (in *Initializer) advise(a Advisory) {
	if in.Advisories != nil {
		in.Advisories(a)
	}
}

func dirOf(path string) string {
	return filepath.Dir(path)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
