package formdata

import (
	"strings"
)

// Values holds submitted field data keyed by name segment. Leaves are strings
// or string sequences; branches are nested maps.
type Values map[string]any

// Get resolves a bracketed field name.
func (v Values) Get(name string) (any, bool) {
	return Lookup(v, name)
}

// String returns the scalar string stored under name.
func (v Values) String(name string) string {
	value, ok := v.Get(name)
	if !ok {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

// Set stores value under name. Names ending in `[]` append to a sequence;
// any other name overwrites, matching how browsers submit repeated inputs.
func (v Values) Set(name, value string) {
	segments := SplitName(name)
	if len(segments) == 0 {
		return
	}
	appendMode := strings.HasSuffix(strings.TrimSpace(name), "[]")

	node := map[string]any(v)
	for _, segment := range segments[:len(segments)-1] {
		next, ok := asMap(node[segment])
		if !ok {
			next = make(map[string]any)
			node[segment] = next
		}
		node = next
	}

	last := segments[len(segments)-1]
	if appendMode {
		existing, _ := node[last].([]string)
		node[last] = append(existing, value)
		return
	}
	node[last] = value
}

// Strings converts a resolved value into a string sequence. The boolean
// reports whether the value was a sequence to begin with.
func Strings(value any) ([]string, bool) {
	switch typed := value.(type) {
	case []string:
		return typed, true
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	case string:
		return []string{typed}, false
	case nil:
		return nil, false
	default:
		return nil, false
	}
}

// Scalar returns the string form of a scalar leaf. Sequences and maps yield
// false.
func Scalar(value any) (string, bool) {
	if s, ok := value.(string); ok {
		return s, true
	}
	return "", false
}

// Submission bundles everything one request submitted for a form.
type Submission struct {
	Method  string
	Values  Values
	Uploads Uploads
}
