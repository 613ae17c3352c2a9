package grader

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// pyLiteral renders a value as a Python literal. OK-format test files are
// Python modules assigning a dict to "test", so the emitted syntax must be
// valid Python, not JSON.
func pyLiteral(value any, indent int) string {
	pad := strings.Repeat("    ", indent)
	childPad := strings.Repeat("    ", indent+1)
	switch v := value.(type) {
	case nil:
		return "None"
	case bool:
		if v {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return pyString(v)
	case []any:
		if len(v) == 0 {
			return "[]"
		}
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, childPad+pyLiteral(item, indent+1))
		}
		return "[\n" + strings.Join(parts, ",\n") + ",\n" + pad + "]"
	case map[string]any:
		if len(v) == 0 {
			return "{}"
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, childPad+pyString(k)+": "+pyLiteral(v[k], indent+1))
		}
		return "{\n" + strings.Join(parts, ",\n") + ",\n" + pad + "}"
	default:
		return pyString(fmt.Sprintf("%v", v))
	}
}

// pyString renders a single-quoted Python string literal.
func pyString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
