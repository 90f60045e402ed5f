package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder_Build(t *testing.T) {
	def, err := NewIndex("fuzzdex:movies:idx").
		OnJSON().
		Prefix("fuzzdex:movies:doc:").
		LanguageField("lang").
		TokenText("$.title_fuzzy[*]", "title_fuzzy", 5).
		TokenText("$.tags_fuzzy[*].label_fuzzy[*]", "tags_label_fuzzy", 0).
		Tag("$.genre", "genre").
		Numeric("$.year", "year").
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if def.StorageType != StorageJSON {
		t.Errorf("StorageType = %q, want JSON", def.StorageType)
	}
	if len(def.Prefixes) != 1 || def.Prefixes[0] != "fuzzdex:movies:doc:" {
		t.Errorf("Prefixes = %v", def.Prefixes)
	}
	if def.LanguageField != "lang" {
		t.Errorf("LanguageField = %q", def.LanguageField)
	}
	if len(def.Fields) != 4 {
		t.Fatalf("len(Fields) = %d, want 4", len(def.Fields))
	}
	title := def.Fields[0]
	if title.Type != IndexFieldText || !title.TextNoStem || title.TextWeight != 5 {
		t.Errorf("title field = %+v", title)
	}
}

func TestIndexBuilder_Validate(t *testing.T) {
	if _, err := NewIndex("").Text("f", "").Build(); err == nil {
		t.Error("expected error for empty index name")
	}
	if _, err := NewIndex("idx").Build(); err == nil {
		t.Error("expected error for no fields")
	}
	if _, err := NewIndex("idx").Text("", "").Build(); err == nil {
		t.Error("expected error for empty field name")
	}
	if _, err := NewIndex("idx").Text("f", "a").Text("g", "a").Build(); err == nil {
		t.Error("expected error for duplicate alias")
	}
	if _, err := NewIndex("bad name").Text("f", "").Build(); err == nil {
		t.Error("expected error for invalid identifier")
	}
}

func TestIndexDefinition_String(t *testing.T) {
	def := NewIndex("idx").
		OnJSON().
		Prefix("p:").
		TokenText("$.title_fuzzy[*]", "title_fuzzy", 2).
		MustBuild()

	s := def.String()
	for _, want := range []string{
		"FT.CREATE idx", "ON JSON", "PREFIX p:",
		"$.title_fuzzy[*] AS title_fuzzy TEXT NOSTEM WEIGHT 2",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"idx", "fuzzdex:movies:idx", "a_b-c", "A1"}
	for _, s := range valid {
		if !IsValidIdentifier(s) {
			t.Errorf("IsValidIdentifier(%q) = false", s)
		}
	}
	invalid := []string{"", "with space", "semi;colon", "star*"}
	for _, s := range invalid {
		if IsValidIdentifier(s) {
			t.Errorf("IsValidIdentifier(%q) = true", s)
		}
	}
}
