package fuzzy

import "strings"

// TokenizeField tokenizes multi-word text: the text is normalized, split
// on spaces, and each word's n-gram set is unioned into one deduplicated
// token set. Normalization may itself introduce spaces (underscores), so
// splitting happens after it. Empty text yields the empty set.
func TokenizeField(text string, escapeSpecial bool, minSize int, prefixOnly bool) ([]string, error) {
	if text == "" {
		return []string{}, nil
	}

	set := newTokenSet()
	for _, word := range strings.Split(Normalize(text, escapeSpecial), " ") {
		if word == "" {
			continue
		}
		toks, err := Tokens(word, minSize, prefixOnly)
		if err != nil {
			return nil, err
		}
		set.addAll(toks)
	}
	return set.tokens, nil
}
