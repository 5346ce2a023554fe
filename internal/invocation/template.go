package invocation

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	lxerrors "github.com/Aman-CERP/logexec/internal/errors"
)

// Template fields.
const (
	FieldFuncName = "func_name"
	FieldArgs     = "args"
	FieldKwargs   = "kwargs"
)

// DefaultMessage is the template used when none is configured.
const DefaultMessage = "Calling function {func_name} with args: {args} kwargs: {kwargs}"

const templateCacheSize = 128

var templateCache, _ = lru.New[string, *Template](templateCacheSize)

// segment is either literal text or a field reference.
type segment struct {
	text  string
	field string
}

// Template is a parsed message template. {func_name}, {args} and {kwargs} are
// substituted; {{ and }} produce literal braces.
type Template struct {
	source   string
	segments []segment
}

// ParseTemplate parses src. Unknown fields and unbalanced braces are errors.
// Parsed templates are cached by source text.
func ParseTemplate(src string) (*Template, error) {
	if t, ok := templateCache.Get(src); ok {
		return t, nil
	}
	t, err := parseTemplate(src)
	if err != nil {
		return nil, err
	}
	templateCache.Add(src, t)
	return t, nil
}

func parseTemplate(src string) (*Template, error) {
	t := &Template{source: src}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '{' && i+1 < len(src) && src[i+1] == '{':
			lit.WriteByte('{')
			i++
		case c == '}' && i+1 < len(src) && src[i+1] == '}':
			lit.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(src[i+1:], '}')
			if end < 0 {
				return nil, templateError(src, "unclosed '{' at offset %d", i)
			}
			name := src[i+1 : i+1+end]
			switch name {
			case FieldFuncName, FieldArgs, FieldKwargs:
			default:
				return nil, templateError(src, "unknown field {%s}", name)
			}
			flush()
			t.segments = append(t.segments, segment{field: name})
			i += end + 1
		case c == '}':
			return nil, templateError(src, "single '}' at offset %d", i)
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return t, nil
}

func templateError(src, format string, args ...any) error {
	return lxerrors.New(lxerrors.ErrCodeInvalidTemplate, fmt.Sprintf(format, args...), nil).
		WithDetail("template", src).
		WithSuggestion("use {func_name}, {args} and {kwargs}; write {{ and }} for literal braces")
}

// MustParseTemplate is ParseTemplate for constant templates. It panics on error.
func MustParseTemplate(src string) *Template {
	t, err := ParseTemplate(src)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the template source.
func (t *Template) String() string {
	return t.source
}

// Render substitutes the call into the template.
func (t *Template) Render(c Call) string {
	var sb strings.Builder
	for _, s := range t.segments {
		switch s.field {
		case "":
			sb.WriteString(s.text)
		case FieldFuncName:
			sb.WriteString(c.Name)
		case FieldArgs:
			sb.WriteString(FormatArgs(c.Args))
		case FieldKwargs:
			sb.WriteString(FormatKwargs(c.Kwargs))
		}
	}
	return sb.String()
}
