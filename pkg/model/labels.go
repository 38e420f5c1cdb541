package model

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s\[\]]+`)

// DefaultLabeler converts a field name into a human-friendly label. It splits
// on brackets, underscores, dashes and camelCase boundaries, so
// `user[first_name]` becomes "User First Name".
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	words := splitWordsPattern.Split(name, -1)
	var segments []string
	for _, word := range words {
		if word == "" {
			continue
		}
		segments = append(segments, titleCase(splitCamel(word)))
	}
	return strings.TrimSpace(strings.Join(segments, " "))
}

func splitCamel(input string) string {
	var out strings.Builder
	prev := utf8.RuneError
	for i, r := range input {
		if i > 0 && isBoundary(prev, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
		prev = r
	}
	return out.String()
}

func isBoundary(prev, r rune) bool {
	return (unicode.IsLower(prev) && unicode.IsUpper(r)) ||
		(unicode.IsLetter(prev) && unicode.IsDigit(r)) ||
		(unicode.IsDigit(prev) && unicode.IsLetter(r))
}

func titleCase(words string) string {
	parts := strings.Fields(words)
	for idx, word := range parts {
		lower := strings.ToLower(word)
		first, size := utf8.DecodeRuneInString(lower)
		parts[idx] = string(unicode.ToUpper(first)) + lower[size:]
	}
	return strings.Join(parts, " ")
}
