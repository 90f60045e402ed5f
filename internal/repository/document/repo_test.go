package document

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/kailas-cloud/fuzzdex/internal/db"
	"github.com/kailas-cloud/fuzzdex/internal/domain"
	domdoc "github.com/kailas-cloud/fuzzdex/internal/domain/document"
)

// --- Upsert ---

func TestUpsert_Created(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	doc := domdoc.Reconstruct("doc-1", map[string]any{
		"title":       "Hello",
		"title_fuzzy": []string{"he", "el", "hel"},
	})

	var setKey string
	var setData []byte
	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return false, nil }
	ms.jsonSetFn = func(_ context.Context, key, path string, data []byte) error {
		setKey = key
		setData = data
		if path != "$" {
			t.Errorf("unexpected path: %s", path)
		}
		return nil
	}

	created, err := repo.Upsert(ctx, "movies", &doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true for a new document")
	}
	if setKey != "fuzzdex:movies:doc:doc-1" {
		t.Errorf("unexpected key: %s", setKey)
	}

	var stored map[string]any
	if err := json.Unmarshal(setData, &stored); err != nil {
		t.Fatalf("stored payload is not JSON: %v", err)
	}
	if stored["title"] != "Hello" {
		t.Errorf("unexpected stored title: %v", stored["title"])
	}
	if _, ok := stored["title_fuzzy"]; !ok {
		t.Error("token attribute must be persisted")
	}
}

func TestUpsert_Updated(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	doc := domdoc.Reconstruct("doc-1", map[string]any{"title": "Hello"})

	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
	ms.jsonSetFn = func(_ context.Context, _, _ string, _ []byte) error { return nil }

	created, err := repo.Upsert(ctx, "movies", &doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected created=false for an existing document")
	}
}

func TestUpsert_SetError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	doc := domdoc.Reconstruct("doc-1", map[string]any{"title": "Hello"})

	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return false, nil }
	ms.jsonSetFn = func(_ context.Context, _, _ string, _ []byte) error {
		return errors.New("connection lost")
	}

	if _, err := repo.Upsert(ctx, "movies", &doc); err == nil {
		t.Fatal("expected error on JSON.SET failure")
	}
}

// --- Get ---

func TestGet_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.jsonGetFn = func(_ context.Context, key string, _ ...string) ([]byte, error) {
		if key != "fuzzdex:movies:doc:doc-1" {
			t.Errorf("unexpected key: %s", key)
		}
		return []byte(`[{"title":"Hello","title_fuzzy":["he","el","hel"]}]`), nil
	}

	doc, err := repo.Get(ctx, "movies", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID() != "doc-1" {
		t.Errorf("unexpected id: %s", doc.ID())
	}
	if doc.Attrs()["title"] != "Hello" {
		t.Errorf("unexpected attrs: %v", doc.Attrs())
	}
	if _, ok := doc.Attrs()["title_fuzzy"]; !ok {
		t.Error("stored token attribute must be hydrated")
	}
	if _, ok := doc.External()["title_fuzzy"]; ok {
		t.Error("external view must not include token attributes")
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.jsonGetFn = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return nil, db.ErrKeyNotFound
	}

	_, err := repo.Get(ctx, "movies", "ghost")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestGet_EmptyArray(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.jsonGetFn = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return []byte(`[]`), nil
	}

	_, err := repo.Get(ctx, "movies", "doc-1")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

// --- List ---

func TestList_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchListFn = func(_ context.Context, index, query string, offset, limit int, fields []string) (*db.SearchResult, error) {
		if index != "fuzzdex:movies:idx" {
			t.Errorf("unexpected index: %s", index)
		}
		if query != "*" {
			t.Errorf("unexpected query: %s", query)
		}
		if offset != 0 || limit != 3 { // limit+1 for cursor detection
			t.Errorf("unexpected window: offset=%d limit=%d", offset, limit)
		}
		if len(fields) != 1 || fields[0] != "$" {
			t.Errorf("unexpected return fields: %v", fields)
		}
		return &db.SearchResult{
			Total: 2,
			Entries: []db.SearchEntry{
				{Key: "fuzzdex:movies:doc:a", Fields: map[string]string{"$": `{"title":"A"}`}},
				{Key: "fuzzdex:movies:doc:b", Fields: map[string]string{"$": `{"title":"B"}`}},
			},
		}, nil
	}

	docs, cursor, err := repo.List(ctx, "movies", "", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
	if docs[0].ID() != "a" || docs[1].ID() != "b" {
		t.Errorf("unexpected ids: %s, %s", docs[0].ID(), docs[1].ID())
	}
	if cursor != "" {
		t.Errorf("expected empty cursor, got %q", cursor)
	}
}

func TestList_NextCursor(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchListFn = func(_ context.Context, _, _ string, _, _ int, _ []string) (*db.SearchResult, error) {
		return &db.SearchResult{
			Total: 5,
			Entries: []db.SearchEntry{
				{Key: "fuzzdex:movies:doc:a", Fields: map[string]string{"$": `{}`}},
				{Key: "fuzzdex:movies:doc:b", Fields: map[string]string{"$": `{}`}},
				{Key: "fuzzdex:movies:doc:c", Fields: map[string]string{"$": `{}`}},
			},
		}, nil
	}

	docs, cursor, err := repo.List(ctx, "movies", "", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
	if cursor != "2" {
		t.Errorf("expected cursor 2, got %q", cursor)
	}
}

func TestList_InvalidCursor(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, _, err := repo.List(ctx, "movies", "not-a-number", 10)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestList_Empty(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchListFn = func(_ context.Context, _, _ string, _, _ int, _ []string) (*db.SearchResult, error) {
		return &db.SearchResult{}, nil
	}

	docs, cursor, err := repo.List(ctx, "movies", "", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 0 || cursor != "" {
		t.Errorf("expected empty page, got %d docs, cursor %q", len(docs), cursor)
	}
}

// --- Count ---

func TestCount_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchCountFn = func(_ context.Context, index, query string) (int, error) {
		if index != "fuzzdex:movies:idx" || query != "*" {
			t.Errorf("unexpected count call: %s %s", index, query)
		}
		return 42, nil
	}

	n, err := repo.Count(ctx, "movies")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Errorf("expected 42, got %d", n)
	}
}

// --- Delete ---

func TestDelete_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	var delKey string
	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
	ms.delFn = func(_ context.Context, key string) error {
		delKey = key
		return nil
	}

	if err := repo.Delete(ctx, "movies", "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delKey != "fuzzdex:movies:doc:doc-1" {
		t.Errorf("unexpected key: %s", delKey)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return false, nil }

	err := repo.Delete(ctx, "movies", "ghost")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

// --- dto ---

func TestParseJSONGetResult_PlainObject(t *testing.T) {
	doc, err := parseJSONGetResult("doc-1", []byte(`{"title":"Hello"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Attrs()["title"] != "Hello" {
		t.Errorf("unexpected attrs: %v", doc.Attrs())
	}
}

func TestParseJSONGetResult_Garbage(t *testing.T) {
	_, err := parseJSONGetResult("doc-1", []byte(`not json`))
	if err == nil {
		t.Fatal("expected error")
	}
}
