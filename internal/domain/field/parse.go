package field

import (
	"fmt"

	"github.com/kailas-cloud/fuzzdex/internal/domain"
)

// Parse converts the declarative activation list into validated Specs.
// Each element is either a plain attribute name or an object with
// name, weight, keys, min_size, prefix_only and
// escape_special_characters entries. keys may be a single string,
// which is treated as a one-element list.
func Parse(raw any) ([]Spec, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("fields must be a list, got %T: %w", raw, domain.ErrConfiguration)
	}

	specs := make([]Spec, 0, len(list))
	for i, el := range list {
		var (
			spec Spec
			err  error
		)
		switch v := el.(type) {
		case string:
			spec, err = NewSimple(v)
		case map[string]any:
			spec, err = parseObject(v)
		default:
			return nil, fmt.Errorf(
				"field %d must be a string or an object, got %T: %w",
				i, el, domain.ErrConfiguration,
			)
		}
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseObject(obj map[string]any) (Spec, error) {
	name, _ := obj["name"].(string)
	if name == "" {
		return Spec{}, fmt.Errorf("field object requires a name: %w", domain.ErrConfiguration)
	}

	keys, hasKeys, err := parseKeys(obj["keys"])
	if err != nil {
		return Spec{}, fmt.Errorf("field %q: %w", name, err)
	}

	weight, err := parseNumber(obj, "weight")
	if err != nil {
		return Spec{}, fmt.Errorf("field %q: %w", name, err)
	}

	if hasKeys {
		minSize, sizeErr := parseNumber(obj, "min_size")
		if sizeErr != nil {
			return Spec{}, fmt.Errorf("field %q: %w", name, sizeErr)
		}
		prefixOnly, boolErr := parseBool(obj, "prefix_only")
		if boolErr != nil {
			return Spec{}, fmt.Errorf("field %q: %w", name, boolErr)
		}
		params := NestedParams{
			Weight:     weight,
			MinSize:    int(minSize),
			PrefixOnly: prefixOnly,
		}
		if rawEscape, present := obj["escape_special_characters"]; present {
			escape, escOk := rawEscape.(bool)
			if !escOk {
				return Spec{}, fmt.Errorf(
					"field %q: escape_special_characters must be a boolean: %w",
					name, domain.ErrConfiguration,
				)
			}
			params.EscapeSpecial = &escape
		}
		return NewNested(name, keys, params)
	}

	if weight > 0 {
		return NewWeighted(name, weight)
	}
	return NewSimple(name)
}

// parseKeys accepts a string (one-element list) or a list of strings.
func parseKeys(raw any) ([]string, bool, error) {
	if raw == nil {
		return nil, false, nil
	}
	switch v := raw.(type) {
	case string:
		return []string{v}, true, nil
	case []string:
		return v, true, nil
	case []any:
		keys := make([]string, 0, len(v))
		for _, el := range v {
			s, ok := el.(string)
			if !ok {
				return nil, false, fmt.Errorf(
					"keys must be strings, got %T: %w", el, domain.ErrConfiguration,
				)
			}
			keys = append(keys, s)
		}
		return keys, true, nil
	default:
		return nil, false, fmt.Errorf(
			"keys must be a string or a list of strings, got %T: %w",
			raw, domain.ErrConfiguration,
		)
	}
}

func parseNumber(obj map[string]any, key string) (float64, error) {
	raw, ok := obj[key]
	if !ok {
		return 0, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%s must be a number, got %T: %w", key, raw, domain.ErrConfiguration)
	}
}

func parseBool(obj map[string]any, key string) (bool, error) {
	raw, ok := obj[key]
	if !ok {
		return false, nil
	}
	v, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%s must be a boolean, got %T: %w", key, raw, domain.ErrConfiguration)
	}
	return v, nil
}
