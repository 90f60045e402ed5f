package chi

import "time"

// errorCode enumerates machine-readable API error codes.
type errorCode string

const (
	codeBadRequest         errorCode = "bad_request"
	codeValidationFailed   errorCode = "validation_failed"
	codeUnauthorized       errorCode = "unauthorized"
	codeCollectionNotFound errorCode = "collection_not_found"
	codeDocumentNotFound   errorCode = "document_not_found"
	codeCollectionExists   errorCode = "collection_already_exists"
	codeInternalError      errorCode = "internal_error"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// FilterFieldDef declares one filterable attribute.
type FilterFieldDef struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// UpsertCollectionRequest is the PUT /collections/{name} body. Fields is
// the declarative activation list: names or objects with name, weight,
// keys, min_size, prefix_only and escape_special_characters entries.
type UpsertCollectionRequest struct {
	Fields   []any            `json:"fields"`
	Filters  []FilterFieldDef `json:"filters,omitempty"`
	Language string           `json:"language,omitempty"`
}

// FieldDef is the stored form of one fuzzy field spec.
type FieldDef struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Weight     float64  `json:"weight,omitempty"`
	Keys       []string `json:"keys,omitempty"`
	MinSize    int      `json:"min_size"`
	PrefixOnly bool     `json:"prefix_only"`
}

// CollectionResponse is the public view of a collection.
type CollectionResponse struct {
	Name          string           `json:"name"`
	Fields        []FieldDef       `json:"fields"`
	Filters       []FilterFieldDef `json:"filters,omitempty"`
	Language      string           `json:"language,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	DocumentCount *int             `json:"document_count,omitempty"`
}

// CollectionListResponse is the GET /collections body.
type CollectionListResponse struct {
	Items []CollectionResponse `json:"items"`
	Total int                  `json:"total"`
}

// DocumentResponse is the external view of a document.
type DocumentResponse struct {
	ID    string         `json:"id"`
	Attrs map[string]any `json:"attrs"`
}

// DocumentListResponse is a cursor page of documents.
type DocumentListResponse struct {
	Items      []DocumentResponse `json:"items"`
	HasMore    bool               `json:"has_more"`
	NextCursor *string            `json:"next_cursor,omitempty"`
}

// RangeDTO bounds a numeric filter. Nil bounds are open.
type RangeDTO struct {
	Gt  *float64 `json:"gt,omitempty"`
	Gte *float64 `json:"gte,omitempty"`
	Lt  *float64 `json:"lt,omitempty"`
	Lte *float64 `json:"lte,omitempty"`
}

// FilterConditionDTO is a single filter clause.
type FilterConditionDTO struct {
	Key   string    `json:"key"`
	Match *string   `json:"match,omitempty"`
	Range *RangeDTO `json:"range,omitempty"`
}

// FilterExpressionDTO combines filter clauses.
type FilterExpressionDTO struct {
	Must    *[]FilterConditionDTO `json:"must,omitempty"`
	Should  *[]FilterConditionDTO `json:"should,omitempty"`
	MustNot *[]FilterConditionDTO `json:"must_not,omitempty"`
}

// SearchRequest is the POST /collections/{name}/search body.
type SearchRequest struct {
	Query      string               `json:"query"`
	MinSize    int                  `json:"min_size,omitempty"`
	PrefixOnly bool                 `json:"prefix_only,omitempty"`
	Filters    *FilterExpressionDTO `json:"filters,omitempty"`
	Limit      int                  `json:"limit,omitempty"`
}

// SearchResultItem is a single scored hit.
type SearchResultItem struct {
	ID    string         `json:"id"`
	Score float64        `json:"score"`
	Attrs map[string]any `json:"attrs"`
}

// SearchResultListResponse is the search response body.
type SearchResultListResponse struct {
	Items []SearchResultItem `json:"items"`
	Total int                `json:"total"`
}

// CountResponse is the document count body.
type CountResponse struct {
	Count int `json:"count"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
