package collection

import (
	"fmt"

	"github.com/kailas-cloud/fuzzdex/internal/db"
	domcol "github.com/kailas-cloud/fuzzdex/internal/domain/collection"
	"github.com/kailas-cloud/fuzzdex/internal/domain/field"
)

// buildIndex creates an IndexDefinition from a collection's field specs.
// Token attributes are indexed as TEXT NOSTEM via JSONPath so that each
// precomputed token is a searchable term; filter attributes become TAG or
// NUMERIC fields on the raw value.
func buildIndex(col *domcol.Collection) (*db.IndexDefinition, error) {
	b := db.NewIndex(indexName(col.Name())).
		OnJSON().
		Prefix(docPrefix(col.Name()))

	if lang := col.Language(); lang != "" {
		b.LanguageField("$." + lang)
	}

	specs := col.Specs()
	for i := range specs {
		sp := &specs[i]
		if sp.IsNested() {
			for _, key := range sp.Keys() {
				path := fmt.Sprintf("$.%s[*].%s[*]", sp.FuzzyName(), field.KeyFuzzyName(key))
				alias := fmt.Sprintf("%s_%s%s", sp.Name(), key, field.FuzzySuffix)
				b.TokenText(path, alias, sp.Weight())
			}
			continue
		}
		path := fmt.Sprintf("$.%s[*]", sp.FuzzyName())
		b.TokenText(path, sp.FuzzyName(), sp.Weight())
	}

	for _, f := range col.Filters() {
		path := "$." + f.Name
		switch f.Type {
		case domcol.FilterTag:
			b.Tag(path, f.Name)
		case domcol.FilterNumeric:
			b.Numeric(path, f.Name)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", f.Type)
		}
	}

	return b.Build()
}
