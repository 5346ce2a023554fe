package invocation

import (
	"fmt"
	"os"

	"github.com/Aman-CERP/logexec/internal/logging"
)

// LoggerKey is the keyword argument that routes a traced call to a logger.
const LoggerKey = "logger"

// HasLogger is implemented by values that carry their own logger, typically
// receivers passed as the first argument. Logger may return nil.
type HasLogger interface {
	Logger() *logging.Logger
}

// Kwargs are keyword arguments by name.
type Kwargs map[string]any

// Func is the dynamic shape of a traceable function.
type Func func(args []any, kwargs Kwargs) (any, error)

// Decorator traces calls at a fixed level with a fixed template.
// It is safe for concurrent use.
type Decorator struct {
	level      logging.Level
	tmpl       *Template
	registry   *logging.Registry
	advisories logging.AdvisoryHandler
}

type config struct {
	level      logging.Level
	message    string
	registry   *logging.Registry
	advisories logging.AdvisoryHandler
}

// Option configures a Decorator.
type Option func(*config)

// WithLevel sets the level of call records (default INFO).
func WithLevel(level logging.Level) Option {
	return func(c *config) { c.level = level }
}

// WithMessage sets the message template (default DefaultMessage).
func WithMessage(message string) Option {
	return func(c *config) { c.message = message }
}

// WithRegistry sets the registry whose root logger is the fallback.
func WithRegistry(reg *logging.Registry) Option {
	return func(c *config) { c.registry = reg }
}

// WithAdvisories sets where no-logger advisories go.
func WithAdvisories(h logging.AdvisoryHandler) Option {
	return func(c *config) { c.advisories = h }
}

// New builds a decorator. The template is parsed here, so a template error is
// returned now instead of on the first call.
func New(opts ...Option) (*Decorator, error) {
	cfg := config{
		level:   logging.LevelInfo,
		message: DefaultMessage,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	tmpl, err := ParseTemplate(cfg.message)
	if err != nil {
		return nil, err
	}
	if cfg.registry == nil {
		cfg.registry = logging.DefaultRegistry()
	}
	if cfg.advisories == nil {
		cfg.advisories = logging.WriterAdvisories(os.Stderr)
	}

	return &Decorator{
		level:      cfg.level,
		tmpl:       tmpl,
		registry:   cfg.registry,
		advisories: cfg.advisories,
	}, nil
}

// MustNew is New for static configuration. It panics on error.
func MustNew(opts ...Option) *Decorator {
	d, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Level returns the level of call records.
func (d *Decorator) Level() logging.Level { return d.level }

// Template returns the parsed message template.
func (d *Decorator) Template() *Template { return d.tmpl }

// Wrap returns fn with call tracing. Arguments reach fn unchanged, the
// logger keyword included.
func (d *Decorator) Wrap(name string, fn Func) Func {
	return func(args []any, kwargs Kwargs) (any, error) {
		d.Trace(Call{Name: name, Args: args, Kwargs: kwargs})
		return fn(args, kwargs)
	}
}

// Trace emits the record for c without calling anything.
func (d *Decorator) Trace(c Call) {
	logger := d.resolve(c)
	logger.Log(d.level, d.tmpl.Render(c))
}

// resolve picks the logger keyword, then a HasLogger first argument, then root.
func (d *Decorator) resolve(c Call) *logging.Logger {
	if v, ok := c.Kwargs[LoggerKey]; ok {
		switch l := v.(type) {
		case *logging.Logger:
			if l != nil {
				return l
			}
		case HasLogger:
			if got := l.Logger(); got != nil {
				return got
			}
		}
	}

	if len(c.Args) > 0 {
		if h, ok := c.Args[0].(HasLogger); ok {
			if l := h.Logger(); l != nil {
				return l
			}
		}
	}

	root := d.registry.Root()
	d.advisories(logging.Advisory{
		Kind:    logging.AdvisoryNoLogger,
		Message: fmt.Sprintf("No logger found in arguments of %s, using root logger", c.Name),
		Path:    c.Name,
	})
	return root
}
