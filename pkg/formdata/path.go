package formdata

import (
	"strconv"
	"strings"
)

var controlIDReplacer = strings.NewReplacer("[", "_", "]", "_")

// HasBrackets reports whether name uses bracket notation.
func HasBrackets(name string) bool {
	return strings.ContainsAny(name, "[]")
}

// SplitName breaks a bracketed field name into its path segments:
// `a[b][c]` yields [a b c] and `a[]` yields [a]. Empty segments are dropped.
func SplitName(name string) []string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '[' || r == ']'
	})
	out := parts[:0]
	for _, part := range parts {
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// BaseName strips a trailing `[]` so repeated inputs share one identity in
// the required registry and the error set.
func BaseName(name string) string {
	trimmed := strings.TrimSpace(name)
	for strings.HasSuffix(trimmed, "[]") {
		trimmed = strings.TrimSuffix(trimmed, "[]")
	}
	return trimmed
}

// ControlID derives an HTML id from a field name by replacing every bracket
// with an underscore.
func ControlID(name string) string {
	return controlIDReplacer.Replace(name)
}

// Lookup resolves name against source. Names without brackets are looked up
// directly; bracketed names walk the nested maps one segment at a time and
// any missing intermediate key yields (nil, false).
func Lookup(source map[string]any, name string) (any, bool) {
	if source == nil {
		return nil, false
	}
	if !HasBrackets(name) {
		value, ok := source[name]
		return value, ok
	}
	segments := SplitName(name)
	if len(segments) == 0 {
		return nil, false
	}
	return walk(source, segments)
}

func walk(tree any, segments []string) (any, bool) {
	current := tree
	for _, segment := range segments {
		next, ok := child(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func child(node any, segment string) (any, bool) {
	switch typed := node.(type) {
	case map[string]any:
		value, ok := typed[segment]
		return value, ok
	case Values:
		value, ok := typed[segment]
		return value, ok
	case []string:
		idx, ok := index(segment, len(typed))
		if !ok {
			return nil, false
		}
		return typed[idx], true
	case []any:
		idx, ok := index(segment, len(typed))
		if !ok {
			return nil, false
		}
		return typed[idx], true
	default:
		return nil, false
	}
}

func index(segment string, length int) (int, bool) {
	idx, err := strconv.Atoi(segment)
	if err != nil || idx < 0 || idx >= length {
		return 0, false
	}
	return idx, true
}

// setTree writes value at path inside tree, creating intermediate maps. When
// appendMode is set the leaf becomes (or extends) a sequence.
func setTree(tree any, path []string, value any, appendMode bool) any {
	if len(path) == 0 {
		if !appendMode {
			return value
		}
		list, _ := tree.([]any)
		return append(list, value)
	}
	node, ok := asMap(tree)
	if !ok {
		node = make(map[string]any)
	}
	node[path[0]] = setTree(node[path[0]], path[1:], value, appendMode)
	return node
}

func asMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case Values:
		return typed, true
	default:
		return nil, false
	}
}
