package logging

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Logger is a named registry entry with a threshold and an ordered list of sinks.
// It is safe for concurrent use.
type Logger struct {
	name string
	now  func() time.Time

	mu    sync.RWMutex
	level Level
	sinks []*Sink
}

func newLogger(name string, level Level) *Logger {
	return &Logger{name: name, level: level, now: time.Now}
}

// Name returns the registry name.
func (l *Logger) Name() string { return l.name }

// Level returns the logger threshold.
func (l *Logger) Level() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// SetLevel sets the logger threshold.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// AddSink appends a sink.
func (l *Logger) AddSink(s *Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sinks = append(l.sinks, s)
}

// Sinks returns a copy of the attached sinks in order.
func (l *Logger) Sinks() []*Sink {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*Sink, len(l.sinks))
	copy(out, l.sinks)
	return out
}

// FilePath returns the path of the first file sink, or "".
func (l *Logger) FilePath() string {
	for _, s := range l.Sinks() {
		if s.Kind() == SinkFile {
			return s.Path()
		}
	}
	return ""
}

// replaceSinks swaps the sink list and closes the sinks it removed.
func (l *Logger) replaceSinks(sinks []*Sink) error {
	l.mu.Lock()
	old := l.sinks
	l.sinks = sinks
	l.mu.Unlock()

	var errs []error
	for _, s := range old {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Enabled reports whether a record at level passes the logger threshold.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.Level()
}

// Log emits msg at level to every sink whose threshold it meets.
// Sink write failures are reported on stderr and never returned.
func (l *Logger) Log(level Level, msg string) {
	l.mu.RLock()
	if level < l.level {
		l.mu.RUnlock()
		return
	}
	sinks := l.sinks
	l.mu.RUnlock()

	r := Record{Time: l.now(), Level: level, Logger: l.name, Message: msg}
	for _, s := range sinks {
		if err := s.Emit(r); err != nil {
			reportSinkError(s, err)
		}
	}
}

// Logf formats with fmt.Sprintf and logs at level.
func (l *Logger) Logf(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	l.Log(level, fmt.Sprintf(format, args...))
}

// Debug logs msg at DEBUG.
func (l *Logger) Debug(msg string) { l.Log(LevelDebug, msg) }

// Info logs msg at INFO.
func (l *Logger) Info(msg string) { l.Log(LevelInfo, msg) }

// Warning logs msg at WARNING.
func (l *Logger) Warning(msg string) { l.Log(LevelWarning, msg) }

// Error logs msg at ERROR.
func (l *Logger) Error(msg string) { l.Log(LevelError, msg) }

// Critical logs msg at CRITICAL.
func (l *Logger) Critical(msg string) { l.Log(LevelCritical, msg) }

// Close closes every sink and detaches them.
func (l *Logger) Close() error {
	return l.replaceSinks(nil)
}

// String renders the logger as <Logger name (LEVEL)>.
func (l *Logger) String() string {
	return fmt.Sprintf("<Logger %s (%s)>", l.name, l.Level())
}
