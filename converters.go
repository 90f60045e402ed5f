package fuzzdex

import (
	"fmt"

	domcol "github.com/kailas-cloud/fuzzdex/internal/domain/collection"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/filter"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/result"
)

func fromInternalCollection(col *domcol.Collection) CollectionInfo {
	specs := col.Specs()
	fields := make([]FieldInfo, len(specs))
	for i := range specs {
		s := &specs[i]
		fields[i] = FieldInfo{
			Name:       s.Name(),
			Kind:       s.Kind().String(),
			Weight:     s.Weight(),
			Keys:       s.Keys(),
			MinSize:    s.MinSize(),
			PrefixOnly: s.PrefixOnly(),
		}
	}

	domFilters := col.Filters()
	filters := make([]FilterInfo, len(domFilters))
	for i, f := range domFilters {
		filters[i] = FilterInfo{Name: f.Name, Type: FilterFieldType(f.Type)}
	}

	return CollectionInfo{
		Name:      col.Name(),
		Fields:    fields,
		Filters:   filters,
		Language:  col.Language(),
		CreatedAt: col.CreatedAt(),
	}
}

func toInternalFilters(fe FilterExpression) (filter.Expression, error) {
	must, err := toConditions(fe.Must)
	if err != nil {
		return filter.Expression{}, fmt.Errorf("filter must: %w", err)
	}
	should, err := toConditions(fe.Should)
	if err != nil {
		return filter.Expression{}, fmt.Errorf("filter should: %w", err)
	}
	mustNot, err := toConditions(fe.MustNot)
	if err != nil {
		return filter.Expression{}, fmt.Errorf("filter must_not: %w", err)
	}
	expr, err := filter.NewExpression(must, should, mustNot)
	if err != nil {
		return filter.Expression{}, fmt.Errorf("filter expression: %w", err)
	}
	return expr, nil
}

func toConditions(conds []FilterCondition) ([]filter.Condition, error) {
	if len(conds) == 0 {
		return nil, nil
	}
	out := make([]filter.Condition, len(conds))
	for i, c := range conds {
		var err error
		if c.Range != nil {
			r, rerr := filter.NewRangeBounds(
				c.Range.GT, c.Range.GTE, c.Range.LT, c.Range.LTE,
			)
			if rerr != nil {
				return nil, fmt.Errorf("filter %q: %w", c.Key, rerr)
			}
			out[i], err = filter.NewRange(c.Key, r)
		} else {
			out[i], err = filter.NewMatch(c.Key, c.Match)
		}
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", c.Key, err)
		}
	}
	return out, nil
}

func fromSearchResults(results []result.Result) []SearchResult {
	out := make([]SearchResult, len(results))
	for i := range results {
		r := &results[i]
		out[i] = SearchResult{
			ID:    r.ID(),
			Score: r.Score(),
			Attrs: r.Attrs(),
		}
	}
	return out
}
