// Package normalize canonicalizes free-text answers so that user input can be
// matched against known answers regardless of accents, case or spacing.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key returns the canonical form of s: decomposed, stripped of combining
// marks, lowercased, trimmed, with internal whitespace collapsed to a single
// space. Key(Key(s)) == Key(s).
func Key(s string) string {
	// transform chains keep state, so a fresh one is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

// Equal reports whether a and b are the same answer once normalized.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}
