package db

import "github.com/kailas-cloud/fuzzdex/internal/domain/search/filter"

// TextQuery is the input for a ranked full-text search. Terms are
// combined disjunctively (a match on any term contributes to the score),
// while Filters are AND-combined ahead of the text predicate.
type TextQuery struct {
	IndexName    string
	Terms        []string
	Filters      filter.Expression
	TopK         int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
