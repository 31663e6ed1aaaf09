package args

import (
	"fmt"
	"strings"
)

// Debuggable is implemented by values that have a richer debug rendering than fmt.
type Debuggable interface {
	Debuggable() string
}

// Color tags understood by the presentation layer.
const (
	TagGreen  = "<G>"
	TagYellow = "<Y>"
	TagAqua   = "<A>"
)

// DebugObj renders one named value for debug output: <G>name='<Y>value<G>'
func DebugObj(prefix string, value any) string {
	return TagGreen + prefix + "='" + TagYellow + debugString(value) + TagGreen + "'  "
}

// DebugList renders a named list of values. A nil slice renders as null.
func DebugList[T any](prefix string, values []T) string {
	if values == nil {
		return DebugObj(prefix, nil)
	}
	if len(values) == 0 {
		return DebugObj(prefix, "")
	}
	var sb strings.Builder
	sb.WriteString("[")
	for i, v := range values {
		if i > 0 {
			sb.WriteString(TagGreen + ", ")
		}
		sb.WriteString(debugString(v))
	}
	sb.WriteString(TagYellow + "]")
	return DebugObj(prefix, sb.String())
}

// DebugUniqueObj renders a value together with its unique id.
func DebugUniqueObj(prefix, id string, value any) string {
	v := "null"
	if value != nil {
		v = fmt.Sprint(value)
	}
	return TagGreen + prefix + "='" + TagAqua + id + TagYellow + "(" + v + ")" + TagGreen + "'  "
}

func debugString(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case Debuggable:
		return v.Debuggable()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
