package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kailas-cloud/fuzzdex/internal/db"
	"github.com/kailas-cloud/fuzzdex/internal/domain"
	"github.com/kailas-cloud/fuzzdex/internal/domain/fuzzy"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/filter"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/result"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// SearchText performs a scored token search on a collection with filter
// pre-filtering. Each returned result carries the external attribute view,
// token attributes stripped.
func (r *Repo) SearchText(
	ctx context.Context, collectionName string,
	terms []string, filters filter.Expression, topK int,
) ([]result.Result, error) {
	indexName := fmt.Sprintf("%s%s:idx", domain.KeyPrefix, collectionName)

	q := &db.TextQuery{
		IndexName:    indexName,
		Terms:        terms,
		Filters:      filters,
		TopK:         topK,
		ReturnFields: []string{"$"},
	}

	sr, err := r.store.SearchText(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search text %s: %w", collectionName, err)
	}

	return parseResults(sr, collectionName), nil
}

// parseResults converts db.SearchResult into []result.Result.
func parseResults(sr *db.SearchResult, collection string) []result.Result {
	if sr == nil || sr.Total == 0 {
		return nil
	}

	prefix := fmt.Sprintf("%s%s:doc:", domain.KeyPrefix, collection)
	results := make([]result.Result, 0, len(sr.Entries))

	for _, entry := range sr.Entries {
		docID := strings.TrimPrefix(entry.Key, prefix)
		attrs := parseEntryAttrs(entry)
		results = append(results, result.New(docID, entry.Score, attrs))
	}

	return results
}

// parseEntryAttrs decodes the stored JSON document and strips token
// attributes from the returned view.
func parseEntryAttrs(entry db.SearchEntry) map[string]any {
	jsonStr := entry.Fields["$"]
	if jsonStr == "" {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &m); err != nil {
		return map[string]any{}
	}
	return fuzzy.Strip(m)
}
