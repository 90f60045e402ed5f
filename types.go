package fuzzdex

import "time"

// FilterFieldType is the index type of a filterable attribute.
type FilterFieldType string

const (
	// FilterTag indexes an attribute for exact-match filtering.
	FilterTag FilterFieldType = "tag"
	// FilterNumeric indexes an attribute for range filtering.
	FilterNumeric FilterFieldType = "numeric"
)

// FilterInfo describes one filterable attribute of a collection.
type FilterInfo struct {
	Name string
	Type FilterFieldType
}

// FieldInfo describes one fuzzy-indexed field of a collection.
type FieldInfo struct {
	Name       string
	Kind       string
	Weight     float64
	Keys       []string
	MinSize    int
	PrefixOnly bool
}

// CollectionInfo is the public view of a collection definition.
type CollectionInfo struct {
	Name      string
	Fields    []FieldInfo
	Filters   []FilterInfo
	Language  string
	CreatedAt time.Time
}

// Document is a schemaless document. Attrs holds the caller's attributes;
// synthetic token attributes never appear here.
type Document struct {
	ID    string
	Attrs map[string]any
}

// SearchResult is a single scored hit.
type SearchResult struct {
	ID    string
	Score float64
	Attrs map[string]any
}

// FilterExpression combines filter conditions. Must conditions are ANDed,
// Should conditions are ORed, MustNot conditions are negated.
type FilterExpression struct {
	Must    []FilterCondition
	Should  []FilterCondition
	MustNot []FilterCondition
}

// FilterCondition is a single filter: either an exact tag match or a
// numeric range (set Range to make it a range condition).
type FilterCondition struct {
	Key   string
	Match string
	Range *RangeFilter
}

// RangeFilter bounds a numeric attribute. Nil bounds are open.
type RangeFilter struct {
	GT  *float64
	GTE *float64
	LT  *float64
	LTE *float64
}
