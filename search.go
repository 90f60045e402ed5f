package fuzzdex

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/fuzzdex/internal/domain/search/query"
	searchuc "github.com/kailas-cloud/fuzzdex/internal/usecase/search"
)

// SearchService executes fuzzy queries against a single collection.
type SearchService struct {
	collection string
	svc        *searchuc.Service
}

// SearchOptions configures a search query. Zero values mean the
// defaults: MinSize 2, substring matching, no filters, limit 10.
type SearchOptions struct {
	MinSize    int
	PrefixOnly bool
	Filters    FilterExpression
	Limit      int
}

// Query runs a fuzzy search, returning hits ordered by descending
// relevance. The query text is tokenized the same way documents were
// tokenized at write time.
func (s *SearchService) Query(
	ctx context.Context, text string, opts *SearchOptions,
) ([]SearchResult, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}

	filters, err := toInternalFilters(opts.Filters)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	q, err := query.New(text, opts.MinSize, opts.PrefixOnly, filters, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	results, err := s.svc.Search(ctx, s.collection, &q)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return fromSearchResults(results), nil
}
