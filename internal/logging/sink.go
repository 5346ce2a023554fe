package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// SinkKind tells file and console sinks apart.
type SinkKind string

const (
	SinkFile    SinkKind = "file"
	SinkConsole SinkKind = "console"
	SinkWriter  SinkKind = "writer"
)

// Sink receives records at or above its threshold and writes one line each.
// A sink belongs to exactly one logger.
type Sink struct {
	kind   SinkKind
	out    io.Writer
	closer io.Closer
	path   string

	mu        sync.Mutex
	level     Level
	formatter Formatter
	styles    *levelStyles
}

// NewWriterSink writes to any io.Writer. Useful for capturing records in tests.
func NewWriterSink(w io.Writer, level Level) *Sink {
	return &Sink{
		kind:      SinkWriter,
		out:       w,
		level:     level,
		formatter: NewTextFormatter(),
	}
}

// NewConsoleSink writes to w (normally os.Stderr). Level labels are colored
// when w is a terminal.
func NewConsoleSink(w io.Writer, level Level) *Sink {
	s := &Sink{
		kind:      SinkConsole,
		out:       w,
		level:     level,
		formatter: NewTextFormatter(),
	}
	if colorEnabled(w) {
		s.styles = newLevelStyles(w)
	}
	return s
}

// NewFileSink wraps an open FileWriter. Closing the sink closes the file.
func NewFileSink(w *FileWriter, level Level) *Sink {
	return &Sink{
		kind:      SinkFile,
		out:       w,
		closer:    w,
		path:      w.Path(),
		level:     level,
		formatter: NewTextFormatter(),
	}
}

// Kind returns the sink kind.
func (s *Sink) Kind() SinkKind { return s.kind }

// Path returns the file path of a file sink, empty otherwise.
func (s *Sink) Path() string { return s.path }

// Level returns the sink threshold.
func (s *Sink) Level() Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// SetFormatter replaces the formatter.
func (s *Sink) SetFormatter(f Formatter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formatter = f
}

// Enabled reports whether a record at level passes the threshold.
func (s *Sink) Enabled(level Level) bool {
	return level >= s.Level()
}

// Emit writes r if it passes the threshold.
func (s *Sink) Emit(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Level < s.level {
		return nil
	}
	if s.styles != nil {
		r.Label = s.styles.label(r.Level)
	}
	_, err := io.WriteString(s.out, s.formatter.Format(r)+"\n")
	return err
}

// Close releases the underlying file, if any.
func (s *Sink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// String describes the sink, e.g. "file(DEBUG) logs/app.log".
func (s *Sink) String() string {
	if s.path != "" {
		return fmt.Sprintf("%s(%s) %s", s.kind, s.Level(), s.path)
	}
	return fmt.Sprintf("%s(%s)", s.kind, s.Level())
}

// reportSinkError is where write failures go; logging never fails the caller.
var reportSinkError = func(s *Sink, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "logexec: write to %s failed: %v\n", s, err)
}
