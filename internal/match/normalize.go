package match

import (
	"strings"
	"unicode"
)

// NormalizeTag folds a tag or annotation name for fuzzy matching: it is
// lower-cased and separators (_, -, ., \ and spaces) are dropped.
//
//   - "JSON" -> "json"
//   - "cache.ttl" -> "cachettl"
//   - "Str_ing" -> "string"
func NormalizeTag(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == '\\' || r == ' '
}
