package invocation

import "github.com/Aman-CERP/logexec/internal/logging"

// Kwarg is one keyword argument for the typed wrappers.
type Kwarg struct {
	Key   string
	Value any
}

// KW builds a keyword argument.
func KW(key string, value any) Kwarg {
	return Kwarg{Key: key, Value: value}
}

// WithLogger routes a typed call to l.
func WithLogger(l *logging.Logger) Kwarg {
	return Kwarg{Key: LoggerKey, Value: l}
}

func collect(kws []Kwarg) Kwargs {
	if len(kws) == 0 {
		return nil
	}
	kwargs := make(Kwargs, len(kws))
	for _, kw := range kws {
		kwargs[kw.Key] = kw.Value
	}
	return kwargs
}

// The typed wrappers keep fn's parameter and result types. Trailing Kwarg
// values are traced with the call but not passed to fn, since fn takes none.

// Wrap0 traces a function without parameters.
func Wrap0[R any](d *Decorator, name string, fn func() R) func(...Kwarg) R {
	return func(kws ...Kwarg) R {
		d.Trace(Call{Name: name, Kwargs: collect(kws)})
		return fn()
	}
}

// Wrap1 traces a one-parameter function.
func Wrap1[A, R any](d *Decorator, name string, fn func(A) R) func(A, ...Kwarg) R {
	return func(a A, kws ...Kwarg) R {
		d.Trace(Call{Name: name, Args: []any{a}, Kwargs: collect(kws)})
		return fn(a)
	}
}

// Wrap2 traces a two-parameter function.
func Wrap2[A, B, R any](d *Decorator, name string, fn func(A, B) R) func(A, B, ...Kwarg) R {
	return func(a A, b B, kws ...Kwarg) R {
		d.Trace(Call{Name: name, Args: []any{a, b}, Kwargs: collect(kws)})
		return fn(a, b)
	}
}

// Wrap3 traces a three-parameter function.
func Wrap3[A, B, C, R any](d *Decorator, name string, fn func(A, B, C) R) func(A, B, C, ...Kwarg) R {
	return func(a A, b B, c C, kws ...Kwarg) R {
		d.Trace(Call{Name: name, Args: []any{a, b, c}, Kwargs: collect(kws)})
		return fn(a, b, c)
	}
}
