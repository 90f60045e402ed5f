package fuzzy

import (
	"fmt"

	"github.com/kailas-cloud/fuzzdex/internal/domain/field"
)

// Augment returns a copy of attrs extended with one synthetic token
// attribute per field spec whose source attribute is present. Absent
// sources are silently skipped so partial update payloads that do not
// touch an indexed field stay untouched.
//
// The write path must call this synchronously on the proposed attribute
// values before any create or update persists.
func Augment(attrs map[string]any, specs []field.Spec) (map[string]any, error) {
	out := make(map[string]any, len(attrs)+len(specs))
	for k, v := range attrs {
		out[k] = v
	}

	for i := range specs {
		sp := &specs[i]
		src, ok := attrs[sp.Name()]
		if !ok || src == nil {
			continue
		}

		if sp.IsNested() {
			entries, err := nestedTokenSets(src, sp)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", sp.Name(), err)
			}
			out[sp.FuzzyName()] = entries
			continue
		}

		tokens, err := TokenizeField(attrString(src), true, minSizeOf(sp), sp.PrefixOnly())
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", sp.Name(), err)
		}
		out[sp.FuzzyName()] = tokens
	}
	return out, nil
}

// nestedTokenSets builds the positionally aligned token records for a
// nested spec: one entry per source array element, one token set per
// configured key.
func nestedTokenSets(src any, sp *field.Spec) ([]map[string][]string, error) {
	elements := sourceElements(src)
	entries := make([]map[string][]string, 0, len(elements))

	for _, el := range elements {
		record, _ := el.(map[string]any)
		entry := make(map[string][]string, len(sp.Keys()))
		for _, key := range sp.Keys() {
			var text string
			if record != nil {
				if v, ok := record[key]; ok && v != nil {
					text = attrString(v)
				}
			}
			tokens, err := TokenizeField(text, sp.EscapeSpecial(), minSizeOf(sp), sp.PrefixOnly())
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			entry[field.KeyFuzzyName(key)] = tokens
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// sourceElements accepts an array attribute or a single record, which is
// treated as a one-element array.
func sourceElements(src any) []any {
	switch v := src.(type) {
	case []any:
		return v
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out
	default:
		return []any{src}
	}
}

func minSizeOf(sp *field.Spec) int {
	if sp.MinSize() > 0 {
		return sp.MinSize()
	}
	return DefaultMinSize
}

// attrString renders a source attribute value as text for tokenization.
func attrString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
