package collection

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/fuzzdex/internal/domain"
	"github.com/kailas-cloud/fuzzdex/internal/domain/field"
)

func titleSpec(t *testing.T) field.Spec {
	t.Helper()
	sp, err := field.NewSimple("title")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return sp
}

func TestNew_Valid(t *testing.T) {
	col, err := New("movies", []field.Spec{titleSpec(t)},
		[]FilterField{{Name: "genre", Type: FilterTag}}, "lang")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col.Name() != "movies" {
		t.Errorf("Name() = %q", col.Name())
	}
	if len(col.Specs()) != 1 || len(col.Filters()) != 1 {
		t.Errorf("specs = %d, filters = %d", len(col.Specs()), len(col.Filters()))
	}
	if col.Language() != "lang" {
		t.Errorf("Language() = %q", col.Language())
	}
	if col.CreatedAt().IsZero() {
		t.Error("CreatedAt() is zero")
	}
}

func TestNew_Invalid(t *testing.T) {
	title := titleSpec(t)
	tests := []struct {
		name    string
		colName string
		specs   []field.Spec
		filters []FilterField
	}{
		{"empty name", "", []field.Spec{title}, nil},
		{"bad characters", "mov ies", []field.Spec{title}, nil},
		{"too long", strings.Repeat("a", MaxNameLength+1), []field.Spec{title}, nil},
		{"no specs", "movies", nil, nil},
		{"duplicate specs", "movies", []field.Spec{title, title}, nil},
		{"filter without name", "movies", []field.Spec{title}, []FilterField{{Type: FilterTag}}},
		{"filter with bad type", "movies", []field.Spec{title}, []FilterField{{Name: "x", Type: "geo"}}},
		{"filter colliding with spec", "movies", []field.Spec{title}, []FilterField{{Name: "title", Type: FilterTag}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.colName, tt.specs, tt.filters, "")
			if !errors.Is(err, domain.ErrConfiguration) {
				t.Fatalf("error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestReconstruct(t *testing.T) {
	col := Reconstruct("movies", []field.Spec{titleSpec(t)}, nil, "", time.Time{})
	if col.Name() != "movies" {
		t.Errorf("Name() = %q", col.Name())
	}
}
