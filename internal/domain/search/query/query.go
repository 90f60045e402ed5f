package query

import (
	"fmt"

	"github.com/kailas-cloud/fuzzdex/internal/domain"
	"github.com/kailas-cloud/fuzzdex/internal/domain/fuzzy"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/filter"
)

// Search parameter limits.
const (
	MaxQueryLength = 1024
	DefaultLimit   = 10
	MaxLimit       = 100
)

// Query is a validated, ephemeral fuzzy search request. Token generation
// parameters default to the package-wide constants when omitted.
type Query struct {
	text       string
	minSize    int
	prefixOnly bool
	filters    filter.Expression
	limit      int
}

// New validates and normalizes search parameters. minSize 0 means the
// default; a negative value is rejected up front rather than deep inside
// token generation.
func New(text string, minSize int, prefixOnly bool, filters filter.Expression, limit int) (Query, error) {
	if text == "" {
		return Query{}, fmt.Errorf("query text is required: %w", domain.ErrInvalidArgument)
	}
	if len(text) > MaxQueryLength {
		return Query{}, fmt.Errorf("query too long (max %d chars): %w", MaxQueryLength, domain.ErrInvalidArgument)
	}
	if minSize < 0 {
		return Query{}, fmt.Errorf("min size must not be negative: %w", domain.ErrInvalidArgument)
	}
	if minSize == 0 {
		minSize = fuzzy.DefaultMinSize
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Query{
		text:       text,
		minSize:    minSize,
		prefixOnly: prefixOnly,
		filters:    filters,
		limit:      limit,
	}, nil
}

// Text returns the raw query text.
func (q *Query) Text() string { return q.text }

// MinSize returns the minimum token size.
func (q *Query) MinSize() int { return q.minSize }

// PrefixOnly reports whether only prefixes are matched.
func (q *Query) PrefixOnly() bool { return q.prefixOnly }

// Filters returns the extra predicate AND-combined with the text search.
func (q *Query) Filters() filter.Expression { return q.filters }

// Limit returns the maximum number of results.
func (q *Query) Limit() int { return q.limit }
