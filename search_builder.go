package fuzzdex

import (
	"context"
	"fmt"
)

// Hit is a typed search result.
type Hit[T any] struct {
	Item  T
	Score float64
}

// SearchBuilder is a fluent builder for typed search queries.
type SearchBuilder[T any] struct {
	idx *TypedIndex[T]

	query      string
	minSize    int
	prefixOnly bool
	filters    []FilterCondition
	limit      int
}

// Query sets the fuzzy query text.
func (b *SearchBuilder[T]) Query(q string) *SearchBuilder[T] {
	b.query = q
	return b
}

// MinSize sets the minimum token size for query tokenization.
func (b *SearchBuilder[T]) MinSize(n int) *SearchBuilder[T] {
	b.minSize = n
	return b
}

// PrefixOnly restricts matching to word prefixes.
func (b *SearchBuilder[T]) PrefixOnly() *SearchBuilder[T] {
	b.prefixOnly = true
	return b
}

// Where adds a tag filter condition (exact match).
func (b *SearchBuilder[T]) Where(key, value string) *SearchBuilder[T] {
	b.filters = append(b.filters, FilterCondition{Key: key, Match: value})
	return b
}

// WhereRange adds a numeric range filter condition.
func (b *SearchBuilder[T]) WhereRange(key string, r RangeFilter) *SearchBuilder[T] {
	bounds := r
	b.filters = append(b.filters, FilterCondition{Key: key, Range: &bounds})
	return b
}

// Limit sets the maximum number of results.
func (b *SearchBuilder[T]) Limit(n int) *SearchBuilder[T] {
	b.limit = n
	return b
}

// Do executes the search and returns typed results.
func (b *SearchBuilder[T]) Do(ctx context.Context) ([]Hit[T], error) {
	opts := &SearchOptions{
		MinSize:    b.minSize,
		PrefixOnly: b.prefixOnly,
		Limit:      b.limit,
	}
	if len(b.filters) > 0 {
		opts.Filters = FilterExpression{Must: b.filters}
	}

	results, err := b.idx.client.Search(b.idx.name).Query(ctx, b.query, opts)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return b.toHits(results), nil
}

func (b *SearchBuilder[T]) toHits(results []SearchResult) []Hit[T] {
	hits := make([]Hit[T], len(results))
	for i, r := range results {
		doc := Document{ID: r.ID, Attrs: r.Attrs}
		item, ok := b.idx.meta.fromDocument(doc).(T)
		if !ok {
			continue
		}
		hits[i] = Hit[T]{Item: item, Score: r.Score}
	}
	return hits
}
