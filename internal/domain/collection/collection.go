package collection

import (
	"fmt"
	"regexp"
	"time"

	"github.com/kailas-cloud/fuzzdex/internal/domain"
	"github.com/kailas-cloud/fuzzdex/internal/domain/field"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxNameLength is the maximum collection name length.
const MaxNameLength = 128

// FilterType enumerates the index types of filterable attributes.
type FilterType string

const (
	// FilterTag indexes an attribute for exact-match filtering.
	FilterTag FilterType = "tag"
	// FilterNumeric indexes an attribute for range filtering.
	FilterNumeric FilterType = "numeric"
)

// IsValid reports whether the filter type is known.
func (t FilterType) IsValid() bool {
	return t == FilterTag || t == FilterNumeric
}

// FilterField declares one filterable (non-fuzzy) attribute.
type FilterField struct {
	Name string
	Type FilterType
}

// Collection is the collection aggregate: a name, the fuzzy field specs,
// optional filterable attributes and an optional language override.
type Collection struct {
	name      string
	specs     []field.Spec
	filters   []FilterField
	language  string
	createdAt time.Time
}

// New validates and creates a Collection.
func New(name string, specs []field.Spec, filters []FilterField, language string) (Collection, error) {
	if name == "" {
		return Collection{}, fmt.Errorf("collection name is required: %w", domain.ErrConfiguration)
	}
	if len(name) > MaxNameLength {
		return Collection{}, fmt.Errorf("collection name too long (max %d): %w", MaxNameLength, domain.ErrConfiguration)
	}
	if !nameRegex.MatchString(name) {
		return Collection{}, fmt.Errorf(
			"collection name must be alphanumeric with underscores and hyphens: %w", domain.ErrConfiguration,
		)
	}
	if len(specs) == 0 {
		return Collection{}, fmt.Errorf("at least one field spec is required: %w", domain.ErrConfiguration)
	}

	seen := make(map[string]bool, len(specs))
	for i := range specs {
		n := specs[i].Name()
		if seen[n] {
			return Collection{}, fmt.Errorf("duplicate field %q: %w", n, domain.ErrConfiguration)
		}
		seen[n] = true
	}
	for _, f := range filters {
		if f.Name == "" {
			return Collection{}, fmt.Errorf("filter field name is required: %w", domain.ErrConfiguration)
		}
		if !f.Type.IsValid() {
			return Collection{}, fmt.Errorf("filter field %q: unknown type %q: %w", f.Name, f.Type, domain.ErrConfiguration)
		}
		if seen[f.Name] {
			return Collection{}, fmt.Errorf("filter field %q collides with a fuzzy field: %w", f.Name, domain.ErrConfiguration)
		}
		seen[f.Name] = true
	}

	return Collection{
		name:      name,
		specs:     specs,
		filters:   filters,
		language:  language,
		createdAt: time.Now().UTC(),
	}, nil
}

// Reconstruct creates a Collection without validation (storage hydration).
func Reconstruct(
	name string, specs []field.Spec, filters []FilterField,
	language string, createdAt time.Time,
) Collection {
	return Collection{
		name: name, specs: specs, filters: filters,
		language: language, createdAt: createdAt,
	}
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Specs returns the fuzzy field specs in declaration order.
func (c *Collection) Specs() []field.Spec { return c.specs }

// Filters returns the filterable attribute declarations.
func (c *Collection) Filters() []FilterField { return c.filters }

// FilterByName looks up a filterable attribute declaration by name.
func (c *Collection) FilterByName(name string) (FilterField, bool) {
	for _, f := range c.filters {
		if f.Name == name {
			return f, true
		}
	}
	return FilterField{}, false
}

// Language returns the language override attribute name ("" if unset).
func (c *Collection) Language() string { return c.language }

// CreatedAt returns the creation timestamp.
func (c *Collection) CreatedAt() time.Time { return c.createdAt }
