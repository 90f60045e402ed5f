package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/fuzzdex/internal/domain"
	domcol "github.com/kailas-cloud/fuzzdex/internal/domain/collection"
	"github.com/kailas-cloud/fuzzdex/internal/domain/fuzzy"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/filter"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/query"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/result"
)

// Service handles fuzzy document search over tokenized collections.
type Service struct {
	repo  Repository
	colls CollectionReader
}

// New creates a search service.
func New(repo Repository, colls CollectionReader) *Service {
	return &Service{repo: repo, colls: colls}
}

// Search tokenizes the query text the same way documents were tokenized at
// write time and runs a single scored search, most relevant first.
func (s *Service) Search(
	ctx context.Context, collectionName string, q *query.Query,
) ([]result.Result, error) {
	col, err := s.colls.Get(ctx, collectionName)
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}

	if err = validateFiltersAgainstSchema(q.Filters(), &col); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}

	// Query text is never escaped; the driver escapes RediSearch syntax
	// characters per term instead.
	terms, err := fuzzy.TokenizeField(q.Text(), false, q.MinSize(), q.PrefixOnly())
	if err != nil {
		return nil, fmt.Errorf("tokenize query: %w", err)
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("query produced no searchable tokens: %w", domain.ErrInvalidArgument)
	}

	results, err := s.repo.SearchText(ctx, collectionName, terms, q.Filters(), q.Limit())
	if err != nil {
		return nil, fmt.Errorf("search text: %w", err)
	}
	if len(results) > q.Limit() {
		results = results[:q.Limit()]
	}
	return results, nil
}

// validateFiltersAgainstSchema ensures filter keys exist in the collection
// and that filter shape (match/range) matches the attribute type (tag/numeric).
func validateFiltersAgainstSchema(expr filter.Expression, col *domcol.Collection) error {
	if expr.IsEmpty() {
		return nil
	}
	groups := [][]filter.Condition{expr.Must(), expr.Should(), expr.MustNot()}
	for _, conditions := range groups {
		for _, c := range conditions {
			f, ok := col.FilterByName(c.Key())
			if !ok {
				return fmt.Errorf("unknown filter field %q", c.Key())
			}
			if c.IsMatch() && f.Type != domcol.FilterTag {
				return fmt.Errorf("match filter on non-tag field %q", c.Key())
			}
			if c.IsRange() && f.Type != domcol.FilterNumeric {
				return fmt.Errorf("range filter on non-numeric field %q", c.Key())
			}
		}
	}
	return nil
}
