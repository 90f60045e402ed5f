package fuzzdex

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

const tagKey = "fuzzdex"

// schemaMeta holds parsed struct tag metadata, cached per TypedIndex.
type schemaMeta struct {
	typ reflect.Type // struct type for reconstruction

	idIdx int

	// Every tagged non-id field, mapped to its document attribute name.
	attrFields []fieldMapping

	// Schema declarations for collection creation.
	fuzzyFields  []fuzzyMapping
	filterFields []FilterInfo
	langAttr     string
}

type fieldMapping struct {
	structIdx int
	name      string
}

type fuzzyMapping struct {
	name   string
	weight float64
}

// parseSchema reflects on T and extracts fuzzdex struct tag metadata.
func parseSchema[T any]() (*schemaMeta, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return nil, fmt.Errorf("fuzzdex: type parameter is not a struct")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("fuzzdex: type %s is not a struct", t)
	}

	meta := &schemaMeta{typ: t, idIdx: -1}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get(tagKey)
		if tag == "" || tag == "-" {
			continue
		}
		if err := applyTag(meta, i, f.Name, tag); err != nil {
			return nil, err
		}
	}

	if meta.idIdx == -1 {
		return nil, fmt.Errorf("fuzzdex: no field with `fuzzdex:\"...,id\"` tag in %s", t)
	}
	return meta, nil
}

// applyTag processes a single struct field's fuzzdex tag.
func applyTag(meta *schemaMeta, idx int, fieldName, tag string) error {
	parts := strings.Split(tag, ",")
	name := parts[0]
	if name == "" {
		return fmt.Errorf("fuzzdex: empty attribute name on field %s", fieldName)
	}

	if len(parts) == 1 {
		// Mapped name only, stored but not indexed.
		meta.attrFields = append(meta.attrFields, fieldMapping{structIdx: idx, name: name})
		return nil
	}

	switch modifier := parts[1]; modifier {
	case "id":
		if meta.idIdx != -1 {
			return fmt.Errorf("fuzzdex: duplicate id tag on field %s", fieldName)
		}
		meta.idIdx = idx
	case "fuzzy":
		weight, err := parseWeight(parts[2:], fieldName)
		if err != nil {
			return err
		}
		meta.fuzzyFields = append(meta.fuzzyFields, fuzzyMapping{name: name, weight: weight})
		meta.attrFields = append(meta.attrFields, fieldMapping{structIdx: idx, name: name})
	case "tag":
		meta.filterFields = append(meta.filterFields, FilterInfo{Name: name, Type: FilterTag})
		meta.attrFields = append(meta.attrFields, fieldMapping{structIdx: idx, name: name})
	case "numeric":
		meta.filterFields = append(meta.filterFields, FilterInfo{Name: name, Type: FilterNumeric})
		meta.attrFields = append(meta.attrFields, fieldMapping{structIdx: idx, name: name})
	case "lang":
		if meta.langAttr != "" {
			return fmt.Errorf("fuzzdex: duplicate lang tag on field %s", fieldName)
		}
		meta.langAttr = name
		meta.attrFields = append(meta.attrFields, fieldMapping{structIdx: idx, name: name})
	default:
		return fmt.Errorf("fuzzdex: unknown modifier %q on field %s", modifier, fieldName)
	}
	return nil
}

func parseWeight(extras []string, fieldName string) (float64, error) {
	if len(extras) == 0 {
		return 0, nil
	}
	if len(extras) > 1 || !strings.HasPrefix(extras[0], "weight=") {
		return 0, fmt.Errorf("fuzzdex: malformed tag options on field %s", fieldName)
	}
	w, err := strconv.ParseFloat(strings.TrimPrefix(extras[0], "weight="), 64)
	if err != nil {
		return 0, fmt.Errorf("fuzzdex: invalid weight on field %s: %w", fieldName, err)
	}
	return w, nil
}

// collectionOptions builds CollectionOption slice from parsed schema.
func (m *schemaMeta) collectionOptions() []CollectionOption {
	opts := make([]CollectionOption, 0, len(m.fuzzyFields)+len(m.filterFields)+1)
	for _, f := range m.fuzzyFields {
		if f.weight > 0 {
			opts = append(opts, WithWeightedField(f.name, f.weight))
		} else {
			opts = append(opts, WithFieldNames(f.name))
		}
	}
	for _, f := range m.filterFields {
		opts = append(opts, WithFilterField(f.Name, f.Type))
	}
	if m.langAttr != "" {
		opts = append(opts, WithLanguageOverride(m.langAttr))
	}
	return opts
}

// toDocument converts a typed struct to Document using schema metadata.
func (m *schemaMeta) toDocument(item any) Document {
	v := reflect.ValueOf(item)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	attrs := make(map[string]any, len(m.attrFields))
	for _, f := range m.attrFields {
		attrs[f.name] = v.Field(f.structIdx).Interface()
	}

	return Document{
		ID:    fmt.Sprint(v.Field(m.idIdx).Interface()),
		Attrs: attrs,
	}
}

// fromDocument converts a Document back to a typed struct using schema
// metadata. Attribute values round-trip through JSON, so numbers arrive
// as float64.
func (m *schemaMeta) fromDocument(doc Document) any {
	v := reflect.New(m.typ).Elem()

	v.Field(m.idIdx).SetString(doc.ID)
	for _, f := range m.attrFields {
		if val, ok := doc.Attrs[f.name]; ok {
			setValue(v.Field(f.structIdx), val)
		}
	}
	return v.Interface()
}

func setValue(field reflect.Value, val any) {
	switch field.Kind() {
	case reflect.String:
		if s, ok := val.(string); ok {
			field.SetString(s)
		}
	case reflect.Bool:
		if b, ok := val.(bool); ok {
			field.SetBool(b)
		}
	case reflect.Float32, reflect.Float64:
		field.SetFloat(toFloat64(val))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		field.SetInt(int64(toFloat64(val)))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		field.SetUint(uint64(toFloat64(val)))
	}
}

func toFloat64(val any) float64 {
	switch n := val.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return 0
	}
}
