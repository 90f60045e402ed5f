package fuzzdex

import (
	"fmt"

	domcol "github.com/kailas-cloud/fuzzdex/internal/domain/collection"
	"github.com/kailas-cloud/fuzzdex/internal/domain/field"
)

// CollectionOption configures collection creation.
type CollectionOption func(*collectionConfig)

// NestedFieldParams tunes token generation for a nested field. Zero
// values mean the defaults; EscapeSpecial nil means enabled.
type NestedFieldParams struct {
	Weight        float64
	MinSize       int
	PrefixOnly    bool
	EscapeSpecial *bool
}

type collectionConfig struct {
	specs    []field.Spec
	filters  []domcol.FilterField
	language string
	err      error
}

func (c *collectionConfig) addSpec(s field.Spec, err error) {
	if c.err != nil {
		return
	}
	if err != nil {
		c.err = err
		return
	}
	c.specs = append(c.specs, s)
}

// WithFieldNames activates fuzzy indexing for plain string attributes
// with default token generation settings.
func WithFieldNames(names ...string) CollectionOption {
	return func(c *collectionConfig) {
		for _, name := range names {
			c.addSpec(field.NewSimple(name))
		}
	}
}

// WithWeightedField activates fuzzy indexing for one attribute with a
// relevance weight.
func WithWeightedField(name string, weight float64) CollectionOption {
	return func(c *collectionConfig) {
		c.addSpec(field.NewWeighted(name, weight))
	}
}

// WithNestedField activates fuzzy indexing for the given keys of an
// object (or array-of-objects) attribute.
func WithNestedField(name string, keys []string, params NestedFieldParams) CollectionOption {
	return func(c *collectionConfig) {
		c.addSpec(field.NewNested(name, keys, field.NestedParams{
			Weight:        params.Weight,
			MinSize:       params.MinSize,
			PrefixOnly:    params.PrefixOnly,
			EscapeSpecial: params.EscapeSpecial,
		}))
	}
}

// WithFieldSpecs activates fields from a declarative list: each element
// is either an attribute name or a map with name, weight, keys,
// min_size, prefix_only and escape_special_characters entries. Useful
// when the schema comes from configuration rather than code.
func WithFieldSpecs(raw any) CollectionOption {
	return func(c *collectionConfig) {
		if c.err != nil {
			return
		}
		specs, err := field.Parse(raw)
		if err != nil {
			c.err = fmt.Errorf("field specs: %w", err)
			return
		}
		c.specs = append(c.specs, specs...)
	}
}

// WithFilterField declares a filterable (non-fuzzy) attribute.
func WithFilterField(name string, ft FilterFieldType) CollectionOption {
	return func(c *collectionConfig) {
		c.filters = append(c.filters, domcol.FilterField{
			Name: name,
			Type: domcol.FilterType(ft),
		})
	}
}

// WithLanguageOverride names the document attribute holding the
// per-document stemming language.
func WithLanguageOverride(attr string) CollectionOption {
	return func(c *collectionConfig) {
		c.language = attr
	}
}
