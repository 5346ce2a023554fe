// Package invocation logs function calls before running them.
//
// A Decorator wraps a function so that every call first emits one record
// naming the function and rendering its positional and keyword arguments
// through a message template, then runs the function and returns its result
// untouched. Errors and panics from the function pass through as they are.
//
// The record goes to the logger passed as the "logger" keyword argument, or to
// the logger of a first argument implementing HasLogger, or else to the root
// logger together with a no-logger advisory.
//
// Arguments are rendered in full. Nothing is redacted or truncated, so do not
// trace functions whose arguments carry secrets.
package invocation
