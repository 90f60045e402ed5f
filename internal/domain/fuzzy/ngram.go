package fuzzy

import (
	"fmt"

	"github.com/kailas-cloud/fuzzdex/internal/domain"
)

// Token generation fallbacks, used when a field spec or query omits
// explicit values. Fixed at load, never mutated.
const (
	DefaultMinSize    = 2
	DefaultPrefixOnly = false
)

// Tokens enumerates the deduplicated n-gram set of one normalized word.
//
// Substring mode returns every contiguous substring of length minSize up
// to len(text); prefix mode returns only the prefixes in that length
// range. Lengths are counted in runes. A word no longer than minSize is
// its own single token so short words are never lost. Enumeration order
// is not contractual.
func Tokens(text string, minSize int, prefixOnly bool) ([]string, error) {
	if minSize <= 0 {
		return nil, fmt.Errorf("min size must be positive, got %d: %w", minSize, domain.ErrInvalidArgument)
	}
	if text == "" {
		return []string{}, nil
	}

	runes := []rune(text)
	if len(runes) <= minSize {
		return []string{text}, nil
	}

	set := newTokenSet()
	if prefixOnly {
		for size := minSize; size <= len(runes); size++ {
			set.add(string(runes[:size]))
		}
		return set.tokens, nil
	}

	for size := minSize; size <= len(runes); size++ {
		for start := 0; start+size <= len(runes); start++ {
			set.add(string(runes[start : start+size]))
		}
	}
	return set.tokens, nil
}

// tokenSet accumulates tokens preserving first-seen order.
type tokenSet struct {
	seen   map[string]struct{}
	tokens []string
}

func newTokenSet() *tokenSet {
	return &tokenSet{seen: make(map[string]struct{}), tokens: []string{}}
}

func (s *tokenSet) add(tok string) {
	if _, ok := s.seen[tok]; ok {
		return
	}
	s.seen[tok] = struct{}{}
	s.tokens = append(s.tokens, tok)
}

func (s *tokenSet) addAll(toks []string) {
	for _, t := range toks {
		s.add(t)
	}
}
