package field

import (
	"fmt"

	"github.com/kailas-cloud/fuzzdex/internal/domain"
)

// FuzzySuffix is appended to a source attribute name to form the name of
// its synthetic token attribute.
const FuzzySuffix = "_fuzzy"

// Kind discriminates the field spec variants.
type Kind int

const (
	// Simple indexes one string attribute with default parameters.
	Simple Kind = iota
	// Weighted is a simple field with a relevance weight.
	Weighted
	// Nested indexes an array-of-records attribute, one token set per key
	// per element.
	Nested
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Simple:
		return "simple"
	case Weighted:
		return "weighted"
	case Nested:
		return "nested"
	default:
		return "unknown"
	}
}

// Spec declares one source attribute to index for fuzzy search
// (immutable value object).
type Spec struct {
	name       string
	kind       Kind
	weight     float64
	keys       []string
	minSize    int // 0 means "use the package default"
	prefixOnly bool
	noEscape   bool // inverted so the zero value keeps escaping on
}

// NestedParams carries the optional overrides of a nested field spec.
type NestedParams struct {
	Weight     float64
	MinSize    int
	PrefixOnly bool
	// EscapeSpecial defaults to true when nil.
	EscapeSpecial *bool
}

// NewSimple validates and creates a simple field spec.
func NewSimple(name string) (Spec, error) {
	if name == "" {
		return Spec{}, fmt.Errorf("field name is required: %w", domain.ErrConfiguration)
	}
	return Spec{name: name, kind: Simple}, nil
}

// NewWeighted validates and creates a weighted field spec.
func NewWeighted(name string, weight float64) (Spec, error) {
	if name == "" {
		return Spec{}, fmt.Errorf("field name is required: %w", domain.ErrConfiguration)
	}
	if weight < 0 {
		return Spec{}, fmt.Errorf("field %q: weight must not be negative: %w", name, domain.ErrConfiguration)
	}
	return Spec{name: name, kind: Weighted, weight: weight}, nil
}

// NewNested validates and creates a nested field spec.
func NewNested(name string, keys []string, p NestedParams) (Spec, error) {
	if name == "" {
		return Spec{}, fmt.Errorf("field name is required: %w", domain.ErrConfiguration)
	}
	if len(keys) == 0 {
		return Spec{}, fmt.Errorf("field %q: keys must be a non-empty list: %w", name, domain.ErrConfiguration)
	}
	for i, k := range keys {
		if k == "" {
			return Spec{}, fmt.Errorf("field %q: empty key at index %d: %w", name, i, domain.ErrConfiguration)
		}
	}
	if p.Weight < 0 {
		return Spec{}, fmt.Errorf("field %q: weight must not be negative: %w", name, domain.ErrConfiguration)
	}
	if p.MinSize < 0 {
		return Spec{}, fmt.Errorf("field %q: min size must not be negative: %w", name, domain.ErrConfiguration)
	}
	noEscape := false
	if p.EscapeSpecial != nil {
		noEscape = !*p.EscapeSpecial
	}
	return Spec{
		name:       name,
		kind:       Nested,
		weight:     p.Weight,
		keys:       cloneKeys(keys),
		minSize:    p.MinSize,
		prefixOnly: p.PrefixOnly,
		noEscape:   noEscape,
	}, nil
}

// Reconstruct creates a Spec without validation (storage hydration).
func Reconstruct(
	name string, kind Kind, weight float64, keys []string,
	minSize int, prefixOnly, escapeSpecial bool,
) Spec {
	return Spec{
		name: name, kind: kind, weight: weight, keys: keys,
		minSize: minSize, prefixOnly: prefixOnly, noEscape: !escapeSpecial,
	}
}

// Name returns the source attribute name.
func (s *Spec) Name() string { return s.name }

// Kind returns the spec variant.
func (s *Spec) Kind() Kind { return s.kind }

// Weight returns the relevance weight (0 means unweighted).
func (s *Spec) Weight() float64 { return s.weight }

// Keys returns the nested record keys (nil for non-nested specs).
func (s *Spec) Keys() []string { return s.keys }

// MinSize returns the minimum token size override (0 means default).
func (s *Spec) MinSize() int { return s.minSize }

// PrefixOnly reports whether only prefixes are generated for this field.
func (s *Spec) PrefixOnly() bool { return s.prefixOnly }

// EscapeSpecial reports whether punctuation is stripped during
// normalization (default true).
func (s *Spec) EscapeSpecial() bool { return !s.noEscape }

// IsNested reports whether this spec indexes an array of sub-records.
func (s *Spec) IsNested() bool { return s.kind == Nested }

// FuzzyName returns the name of the synthetic token attribute.
func (s *Spec) FuzzyName() string { return s.name + FuzzySuffix }

// KeyFuzzyName returns the per-key sub-attribute name of a nested spec.
func KeyFuzzyName(key string) string { return key + FuzzySuffix }

func cloneKeys(keys []string) []string {
	c := make([]string, len(keys))
	copy(c, keys)
	return c
}
