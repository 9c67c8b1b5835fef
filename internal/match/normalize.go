package match

import (
	"strings"
	"unicode"
)

// Normalize lowercases text, strips everything that is not a letter, digit,
// or whitespace, and collapses runs of whitespace. Applied identically to
// user text and canonical answers before any comparison; normalizing
// already-normalized text is a no-op.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens splits normalized text into its word set.
func Tokens(normalized string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(normalized) {
		set[w] = true
	}
	return set
}
