package invocation

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Call is one traced invocation as seen by the template.
type Call struct {
	Name   string
	Args   []any
	Kwargs Kwargs
}

// FormatArgs renders positional arguments as a tuple: (), (x,) or (x, y).
func FormatArgs(args []any) string {
	switch len(args) {
	case 0:
		return "()"
	case 1:
		return "(" + Repr(args[0]) + ",)"
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Repr(a)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// FormatKwargs renders keyword arguments as {'k': v, ...} with sorted keys.
// The logger routing argument is left out.
func FormatKwargs(kwargs Kwargs) string {
	keys := make([]string, 0, len(kwargs))
	for k := range kwargs {
		if k == LoggerKey {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return "{}"
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = quote(k) + ": " + Repr(kwargs[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Repr renders one value: strings quoted, nil as None, booleans as True and
// False, Stringers through String, anything else with %v. Typed nils (a nil
// *time.Time, say) also render as None and never reach String.
func Repr(v any) string {
	if isNil(v) {
		return "None"
	}
	switch x := v.(type) {
	case nil:
		return "None"
	case string:
		return quote(x)
	case bool:
		if x {
			return "True"
		}
		return "False"
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// quote uses single quotes unless the string holds ' but no ".
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte(q)
	for _, r := range s {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == rune(q):
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}
