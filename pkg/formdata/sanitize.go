package formdata

import (
	"html"
	"strings"
)

// Sanitize returns a copy of data where every string leaf is trimmed and
// HTML-escaped. Maps and sequences keep their shape; non-string scalars are
// copied unchanged.
func Sanitize(data map[string]any) Values {
	if data == nil {
		return nil
	}
	out := make(Values, len(data))
	for key, value := range data {
		out[key] = sanitizeValue(value)
	}
	return out
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case string:
		return html.EscapeString(strings.TrimSpace(typed))
	case []string:
		out := make([]string, len(typed))
		for idx, item := range typed {
			out[idx] = html.EscapeString(strings.TrimSpace(item))
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = sanitizeValue(item)
		}
		return out
	case Values:
		return map[string]any(Sanitize(typed))
	case map[string]any:
		return map[string]any(Sanitize(typed))
	default:
		return typed
	}
}
