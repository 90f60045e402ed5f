// Package fuzzy implements the token generation shared by the write path
// (document indexing) and the read path (query composition). Both sides
// must tokenize identically or retrieval silently degrades, so all entry
// points are pure functions of their arguments.
package fuzzy

import "strings"

// specialCharacters is the fixed punctuation set removed during
// normalization when escaping is enabled. Underscore is absent on
// purpose: it always becomes a space.
const specialCharacters = "!\"#%&'()*+,-./:;<=>?@[\\]^`{|}~"

// Normalize lowercases text, optionally removes punctuation, and
// converts every underscore to a single space.
func Normalize(text string, escapeSpecial bool) string {
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '_':
			b.WriteByte(' ')
		case escapeSpecial && strings.ContainsRune(specialCharacters, r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
