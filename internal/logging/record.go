package logging

import (
	"strings"
	"time"
)

// DefaultTimeLayout is the timestamp layout shared by all sinks.
const DefaultTimeLayout = "2006-01-02 15:04:05,000"

// fieldSeparator separates the four fields of a log line.
const fieldSeparator = " - "

// Record is one log event on its way to the sinks.
type Record struct {
	Time    time.Time
	Level   Level
	Logger  string
	Message string

	// Label overrides Level.String() in the rendered line. Console sinks set it
	// to a colored label.
	Label string
}

// Formatter maps a record to its line, without the trailing newline.
type Formatter interface {
	Format(r Record) string
}

// TextFormatter renders <timestamp> - <name> - <LEVEL> - <message>.
type TextFormatter struct {
	// TimeLayout defaults to DefaultTimeLayout.
	TimeLayout string
}

// NewTextFormatter returns the formatter used by the initializer.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{TimeLayout: DefaultTimeLayout}
}

// Format implements Formatter.
func (f *TextFormatter) Format(r Record) string {
	layout := f.TimeLayout
	if layout == "" {
		layout = DefaultTimeLayout
	}
	label := r.Label
	if label == "" {
		label = r.Level.String()
	}

	var sb strings.Builder
	sb.Grow(len(layout) + len(r.Logger) + len(label) + len(r.Message) + 3*len(fieldSeparator))
	sb.WriteString(r.Time.Format(layout))
	sb.WriteString(fieldSeparator)
	sb.WriteString(r.Logger)
	sb.WriteString(fieldSeparator)
	sb.WriteString(label)
	sb.WriteString(fieldSeparator)
	sb.WriteString(r.Message)
	return sb.String()
}
