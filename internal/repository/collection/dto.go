package collection

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	domcol "github.com/kailas-cloud/fuzzdex/internal/domain/collection"
	"github.com/kailas-cloud/fuzzdex/internal/domain/field"
)

// specRow is the JSON-serializable representation of a field spec for HSET.
type specRow struct {
	Name          string   `json:"name"`
	Kind          string   `json:"kind"`
	Weight        float64  `json:"weight,omitempty"`
	Keys          []string `json:"keys,omitempty"`
	MinSize       int      `json:"min_size,omitempty"`
	PrefixOnly    bool     `json:"prefix_only,omitempty"`
	EscapeSpecial bool     `json:"escape_special"`
}

// filterRow is the JSON-serializable representation of a filter field.
type filterRow struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// collectionToHash converts a domain Collection to a map for HSET.
func collectionToHash(col domcol.Collection) (map[string]string, error) {
	specs := col.Specs()
	rows := make([]specRow, len(specs))
	for i := range specs {
		sp := &specs[i]
		rows[i] = specRow{
			Name:          sp.Name(),
			Kind:          sp.Kind().String(),
			Weight:        sp.Weight(),
			Keys:          sp.Keys(),
			MinSize:       sp.MinSize(),
			PrefixOnly:    sp.PrefixOnly(),
			EscapeSpecial: sp.EscapeSpecial(),
		}
	}
	specsJSON, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("marshal specs: %w", err)
	}

	filters := col.Filters()
	frows := make([]filterRow, len(filters))
	for i, f := range filters {
		frows[i] = filterRow{Name: f.Name, Type: string(f.Type)}
	}
	filtersJSON, err := json.Marshal(frows)
	if err != nil {
		return nil, fmt.Errorf("marshal filters: %w", err)
	}

	return map[string]string{
		"name":         col.Name(),
		"type":         "json",
		"specs_json":   string(specsJSON),
		"filters_json": string(filtersJSON),
		"language":     col.Language(),
		"created_at":   strconv.FormatInt(col.CreatedAt().UnixMilli(), 10),
	}, nil
}

// collectionFromHash hydrates a domain Collection from an HGETALL result map.
func collectionFromHash(m map[string]string) (domcol.Collection, error) {
	name := m["name"]

	createdAt, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("invalid created_at: %w", err)
	}

	var rows []specRow
	if specsJSON := m["specs_json"]; specsJSON != "" {
		if err := json.Unmarshal([]byte(specsJSON), &rows); err != nil {
			return domcol.Collection{}, fmt.Errorf("unmarshal specs: %w", err)
		}
	}

	specs := make([]field.Spec, len(rows))
	for i, r := range rows {
		specs[i] = field.Reconstruct(
			r.Name, kindFromString(r.Kind), r.Weight, r.Keys,
			r.MinSize, r.PrefixOnly, r.EscapeSpecial,
		)
	}

	var frows []filterRow
	if filtersJSON := m["filters_json"]; filtersJSON != "" {
		if err := json.Unmarshal([]byte(filtersJSON), &frows); err != nil {
			return domcol.Collection{}, fmt.Errorf("unmarshal filters: %w", err)
		}
	}

	filters := make([]domcol.FilterField, len(frows))
	for i, f := range frows {
		filters[i] = domcol.FilterField{Name: f.Name, Type: domcol.FilterType(f.Type)}
	}

	return domcol.Reconstruct(
		name, specs, filters, m["language"],
		time.UnixMilli(createdAt).UTC(),
	), nil
}

func kindFromString(s string) field.Kind {
	switch s {
	case "weighted":
		return field.Weighted
	case "nested":
		return field.Nested
	default:
		return field.Simple
	}
}
