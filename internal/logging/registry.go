package logging

import (
	"errors"
	"io"
	"os"
	"sort"
	"sync"
)

// RootName is the registry name of the default logger.
const RootName = "root"

// Registry holds loggers by name. The first Get for a name creates the logger
// and later calls return the same instance.
type Registry struct {
	mu      sync.Mutex
	root    *Logger
	loggers map[string]*Logger
}

// NewRegistry creates a registry whose root logger has a WARNING threshold and
// writes to rootOut. A nil rootOut leaves the root logger without sinks.
func NewRegistry(rootOut io.Writer) *Registry {
	root := newLogger(RootName, LevelWarning)
	if rootOut != nil {
		root.AddSink(NewConsoleSink(rootOut, LevelDebug))
	}
	return &Registry{
		root:    root,
		loggers: make(map[string]*Logger),
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry, with the root logger on stderr.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(os.Stderr)
	})
	return defaultRegistry
}

// Root returns the root logger.
func (r *Registry) Root() *Logger {
	return r.root
}

// Get returns the logger registered under name, creating it if needed.
// New loggers start at DEBUG with no sinks. "" and RootName return the root logger.
func (r *Registry) Get(name string) *Logger {
	if name == "" || name == RootName {
		return r.root
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.loggers[name]; ok {
		return l
	}
	l := newLogger(name, LevelDebug)
	r.loggers[name] = l
	return l
}

// Lookup returns the logger registered under name without creating it.
func (r *Registry) Lookup(name string) (*Logger, bool) {
	if name == "" || name == RootName {
		return r.root, true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loggers[name]
	return l, ok
}

// Names returns the names of all non-root loggers, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close closes the sinks of every registered logger, root included.
func (r *Registry) Close() error {
	r.mu.Lock()
	loggers := make([]*Logger, 0, len(r.loggers)+1)
	loggers = append(loggers, r.root)
	for _, l := range r.loggers {
		loggers = append(loggers, l)
	}
	r.mu.Unlock()

	var errs []error
	for _, l := range loggers {
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
