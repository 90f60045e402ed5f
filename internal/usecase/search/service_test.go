package search

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kailas-cloud/fuzzdex/internal/domain"
	domcol "github.com/kailas-cloud/fuzzdex/internal/domain/collection"
	"github.com/kailas-cloud/fuzzdex/internal/domain/field"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/filter"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/query"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/result"
)

// --- Mocks ---

type mockRepo struct {
	gotCollection string
	gotTerms      []string
	gotFilters    filter.Expression
	gotTopK       int

	results []result.Result
	err     error
}

func (m *mockRepo) SearchText(
	_ context.Context, collectionName string, terms []string,
	filters filter.Expression, topK int,
) ([]result.Result, error) {
	m.gotCollection = collectionName
	m.gotTerms = terms
	m.gotFilters = filters
	m.gotTopK = topK
	return m.results, m.err
}

type mockColls struct {
	col domcol.Collection
	err error
}

func (m *mockColls) Get(_ context.Context, _ string) (domcol.Collection, error) {
	return m.col, m.err
}

func testCollection(t *testing.T) domcol.Collection {
	t.Helper()
	title, err := field.NewSimple("title")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	filters := []domcol.FilterField{
		{Name: "genre", Type: domcol.FilterTag},
		{Name: "year", Type: domcol.FilterNumeric},
	}
	return domcol.Reconstruct(
		"movies", []field.Spec{title}, filters, "",
		time.UnixMilli(1700000000000).UTC(),
	)
}

func newTestService(t *testing.T) (*Service, *mockRepo, *mockColls) {
	t.Helper()
	repo := &mockRepo{}
	colls := &mockColls{col: testCollection(t)}
	return New(repo, colls), repo, colls
}

func mustQuery(t *testing.T, text string, minSize int, prefixOnly bool, filters filter.Expression, limit int) *query.Query {
	t.Helper()
	q, err := query.New(text, minSize, prefixOnly, filters, limit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &q
}

// --- Search ---

func TestSearch_TokenizesQuery(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.results = []result.Result{
		result.New("doc-1", 2.5, map[string]any{"title": "Joe"}),
	}

	q := mustQuery(t, "Joe", 0, false, filter.Expression{}, 0)
	results, err := svc.Search(context.Background(), "movies", q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.gotCollection != "movies" {
		t.Errorf("unexpected collection: %s", repo.gotCollection)
	}
	want := map[string]bool{"jo": true, "oe": true, "joe": true}
	if len(repo.gotTerms) != len(want) {
		t.Fatalf("unexpected terms: %v", repo.gotTerms)
	}
	for _, term := range repo.gotTerms {
		if !want[term] {
			t.Errorf("unexpected term %q", term)
		}
	}
	if repo.gotTopK != query.DefaultLimit {
		t.Errorf("unexpected topK: %d", repo.gotTopK)
	}
	if len(results) != 1 || results[0].ID() != "doc-1" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestSearch_MultiWordQueryUnionsTokens(t *testing.T) {
	svc, repo, _ := newTestService(t)

	q := mustQuery(t, "Joe Doe", 3, false, filter.Expression{}, 0)
	if _, err := svc.Search(context.Background(), "movies", q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]bool{"joe": true, "doe": true}
	if len(repo.gotTerms) != len(want) {
		t.Fatalf("unexpected terms: %v", repo.gotTerms)
	}
	for _, term := range repo.gotTerms {
		if !want[term] {
			t.Errorf("unexpected term %q", term)
		}
	}
}

func TestSearch_PrefixOnly(t *testing.T) {
	svc, repo, _ := newTestService(t)

	q := mustQuery(t, "Joe", 2, true, filter.Expression{}, 0)
	if _, err := svc.Search(context.Background(), "movies", q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]bool{"jo": true, "joe": true}
	if len(repo.gotTerms) != len(want) {
		t.Fatalf("unexpected terms: %v", repo.gotTerms)
	}
	for _, term := range repo.gotTerms {
		if !want[term] {
			t.Errorf("unexpected term %q", term)
		}
	}
}

func TestSearch_PunctuationOnlyQuery(t *testing.T) {
	svc, _, _ := newTestService(t)

	q := mustQuery(t, "!!!", 2, false, filter.Expression{}, 0)
	_, err := svc.Search(context.Background(), "movies", q)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSearch_FiltersForwarded(t *testing.T) {
	svc, repo, _ := newTestService(t)

	cond, _ := filter.NewMatch("genre", "drama")
	expr, _ := filter.NewExpression([]filter.Condition{cond}, nil, nil)
	q := mustQuery(t, "joe", 0, false, expr, 7)
	if _, err := svc.Search(context.Background(), "movies", q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.gotFilters.IsEmpty() {
		t.Fatal("expected filters to be forwarded")
	}
	if repo.gotTopK != 7 {
		t.Errorf("unexpected topK: %d", repo.gotTopK)
	}
}

func TestSearch_CollectionNotFound(t *testing.T) {
	svc, _, colls := newTestService(t)
	colls.err = fmt.Errorf("lookup: %w", domain.ErrNotFound)

	q := mustQuery(t, "joe", 0, false, filter.Expression{}, 0)
	_, err := svc.Search(context.Background(), "ghost", q)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearch_RepoError(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.err = errors.New("connection refused")

	q := mustQuery(t, "joe", 0, false, filter.Expression{}, 0)
	if _, err := svc.Search(context.Background(), "movies", q); err == nil {
		t.Error("expected error")
	}
}

func TestSearch_TruncatesToLimit(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.results = []result.Result{
		result.New("doc-1", 3, nil),
		result.New("doc-2", 2, nil),
		result.New("doc-3", 1, nil),
	}

	q := mustQuery(t, "joe", 0, false, filter.Expression{}, 2)
	results, err := svc.Search(context.Background(), "movies", q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID() != "doc-1" || results[1].ID() != "doc-2" {
		t.Errorf("unexpected order: %+v", results)
	}
}

// --- Filter validation ---

func mustExpr(t *testing.T, must, should, mustNot []filter.Condition) filter.Expression {
	t.Helper()
	expr, err := filter.NewExpression(must, should, mustNot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return expr
}

func TestValidateFilters(t *testing.T) {
	gte := 1990.0
	genreMatch, _ := filter.NewMatch("genre", "drama")
	ratingMatch, _ := filter.NewMatch("rating", "high")
	yearMatch, _ := filter.NewMatch("year", "1990")
	missingMatch, _ := filter.NewMatch("missing", "x")
	yearBounds, _ := filter.NewRangeBounds(nil, &gte, nil, nil)
	yearRange, _ := filter.NewRange("year", yearBounds)
	genreRange, _ := filter.NewRange("genre", yearBounds)

	tests := []struct {
		name    string
		expr    filter.Expression
		wantErr bool
	}{
		{
			name: "tag match ok",
			expr: mustExpr(t, []filter.Condition{genreMatch}, nil, nil),
		},
		{
			name: "numeric range ok",
			expr: mustExpr(t, []filter.Condition{yearRange}, nil, nil),
		},
		{
			name:    "unknown field",
			expr:    mustExpr(t, []filter.Condition{ratingMatch}, nil, nil),
			wantErr: true,
		},
		{
			name:    "match on numeric field",
			expr:    mustExpr(t, []filter.Condition{yearMatch}, nil, nil),
			wantErr: true,
		},
		{
			name:    "range on tag field",
			expr:    mustExpr(t, []filter.Condition{genreRange}, nil, nil),
			wantErr: true,
		},
		{
			name:    "should group validated",
			expr:    mustExpr(t, nil, []filter.Condition{missingMatch}, nil),
			wantErr: true,
		},
		{
			name:    "must_not group validated",
			expr:    mustExpr(t, nil, nil, []filter.Condition{missingMatch}),
			wantErr: true,
		},
	}

	svc, _, _ := newTestService(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := mustQuery(t, "joe", 0, false, tt.expr, 0)
			_, err := svc.Search(context.Background(), "movies", q)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
