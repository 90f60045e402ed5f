package result

// Result is a single search hit: the document's external attribute view
// plus the store's relevance score.
type Result struct {
	id    string
	score float64
	attrs map[string]any
}

// New creates a search result.
func New(id string, score float64, attrs map[string]any) Result {
	return Result{id: id, score: score, attrs: attrs}
}

// ID returns the document identifier.
func (r *Result) ID() string { return r.id }

// Score returns the store's textual relevance score.
func (r *Result) Score() float64 { return r.score }

// Attrs returns the external attribute view of the matched document.
func (r *Result) Attrs() map[string]any { return r.attrs }
