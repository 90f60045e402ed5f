package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fuzzdex/internal/domain"
	domcol "github.com/kailas-cloud/fuzzdex/internal/domain/collection"
	domdoc "github.com/kailas-cloud/fuzzdex/internal/domain/document"
	"github.com/kailas-cloud/fuzzdex/internal/domain/field"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/filter"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/query"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/fuzzdex/internal/logger"
	"github.com/kailas-cloud/fuzzdex/internal/metrics"
	collectionuc "github.com/kailas-cloud/fuzzdex/internal/usecase/collection"
	documentuc "github.com/kailas-cloud/fuzzdex/internal/usecase/document"
	healthuc "github.com/kailas-cloud/fuzzdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/fuzzdex/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API handler set.
type Server struct {
	collections   *collectionuc.Service
	documents     *documentuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	collections *collectionuc.Service,
	documents *documentuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		collections: collections,
		documents:   documents,
		search:      search,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeCollectionNotFound),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeDocumentNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, codeCollectionExists),
		sentinelHandler(domain.ErrConfiguration, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidArgument, http.StatusBadRequest, codeValidationFailed),
	}
	return s
}

// Routes mounts all API handlers on a fresh router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/collections", func(r chi.Router) {
		r.Get("/", s.ListCollections)
		r.Route("/{name}", func(r chi.Router) {
			r.Put("/", s.UpsertCollection)
			r.Get("/", s.GetCollection)
			r.Delete("/", s.DeleteCollection)

			r.Route("/documents", func(r chi.Router) {
				r.Get("/", s.ListDocuments)
				r.Get("/count", s.CountDocuments)
				r.Put("/{id}", s.SaveDocument)
				r.Patch("/{id}", s.PatchDocument)
				r.Get("/{id}", s.GetDocument)
				r.Delete("/{id}", s.DeleteDocument)
			})

			r.Post("/search", s.SearchDocuments)
		})
	})

	return r
}

// UpsertCollection handles PUT /collections/{name}. Idempotent: an
// existing collection with the same name is returned as-is.
func (s *Server) UpsertCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req UpsertCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	specs, err := field.Parse(req.Fields)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	filters := make([]domcol.FilterField, len(req.Filters))
	for i, f := range req.Filters {
		filters[i] = domcol.FilterField{Name: f.Name, Type: domcol.FilterType(f.Type)}
	}

	col, err := s.collections.Ensure(r.Context(), name, specs, filters, req.Language)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, collectionToDTO(&col))
}

// ListCollections handles GET /collections.
func (s *Server) ListCollections(w http.ResponseWriter, r *http.Request) {
	cols, err := s.collections.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]CollectionResponse, len(cols))
	for i := range cols {
		items[i] = collectionToDTO(&cols[i])
	}

	writeJSON(w, http.StatusOK, CollectionListResponse{Items: items, Total: len(items)})
}

// GetCollection handles GET /collections/{name}.
func (s *Server) GetCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	col, err := s.collections.Get(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := collectionToDTO(&col)
	if count, err := s.documents.Count(r.Context(), name); err == nil {
		resp.DocumentCount = &count
	}

	writeJSON(w, http.StatusOK, resp)
}

// DeleteCollection handles DELETE /collections/{name}.
func (s *Server) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := s.collections.Delete(r.Context(), name); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SaveDocument handles PUT /collections/{name}/documents/{id}. The body
// is the document's attribute object.
func (s *Server) SaveDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	id := chi.URLParam(r, "id")

	var attrs map[string]any
	if err := json.NewDecoder(r.Body).Decode(&attrs); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := s.documents.Save(r.Context(), name, id, attrs)
	if err != nil {
		metrics.DocumentWritesTotal.WithLabelValues(name, "save", "error").Inc()
		s.handleDomainError(w, r, err)
		return
	}
	metrics.DocumentWritesTotal.WithLabelValues(name, "save", "ok").Inc()

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", fmt.Sprintf("/collections/%s/documents/%s", name, id))
	}

	doc, err := s.documents.Get(r.Context(), name, id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, status, documentToDTO(&doc))
}

// PatchDocument handles PATCH /collections/{name}/documents/{id}. The
// body attributes are merged into the stored document and token
// attributes are regenerated.
func (s *Server) PatchDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	id := chi.URLParam(r, "id")

	var attrs map[string]any
	if err := json.NewDecoder(r.Body).Decode(&attrs); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc, err := s.documents.FindOneAndUpdate(r.Context(), name, id, attrs)
	if err != nil {
		metrics.DocumentWritesTotal.WithLabelValues(name, "patch", "error").Inc()
		s.handleDomainError(w, r, err)
		return
	}
	metrics.DocumentWritesTotal.WithLabelValues(name, "patch", "ok").Inc()

	writeJSON(w, http.StatusOK, documentToDTO(&doc))
}

// GetDocument handles GET /collections/{name}/documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	id := chi.URLParam(r, "id")

	doc, err := s.documents.Get(r.Context(), name, id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, documentToDTO(&doc))
}

// DeleteDocument handles DELETE /collections/{name}/documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	id := chi.URLParam(r, "id")

	if err := s.documents.Delete(r.Context(), name, id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListDocuments handles GET /collections/{name}/documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var cursor string
	if err := runtime.BindQueryParameter(
		"form", true, false, "cursor", r.URL.Query(), &cursor,
	); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid cursor parameter")
		return
	}

	var limit int
	if err := runtime.BindQueryParameter(
		"form", true, false, "limit", r.URL.Query(), &limit,
	); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid limit parameter")
		return
	}

	docs, nextCursor, err := s.documents.List(r.Context(), name, cursor, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]DocumentResponse, len(docs))
	for i := range docs {
		items[i] = documentToDTO(&docs[i])
	}

	resp := DocumentListResponse{Items: items, HasMore: nextCursor != ""}
	if nextCursor != "" {
		resp.NextCursor = &nextCursor
	}

	writeJSON(w, http.StatusOK, resp)
}

// CountDocuments handles GET /collections/{name}/documents/count.
func (s *Server) CountDocuments(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	count, err := s.documents.Count(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CountResponse{Count: count})
}

// SearchDocuments handles POST /collections/{name}/search.
func (s *Server) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	start := time.Now()

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	q, err := queryFromDTO(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	results, err := s.search.Search(r.Context(), name, &q)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(name, "error").Inc()
		s.handleDomainError(w, r, err)
		return
	}
	metrics.SearchRequestsTotal.WithLabelValues(name, "ok").Inc()
	metrics.SearchRequestDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	metrics.SearchResultsReturned.WithLabelValues(name).Observe(float64(len(results)))

	items := make([]SearchResultItem, len(results))
	for i := range results {
		items[i] = searchResultToDTO(&results[i])
	}

	writeJSON(w, http.StatusOK, SearchResultListResponse{Items: items, Total: len(items)})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrDocumentNotFound,
		domain.ErrAlreadyExists,
		domain.ErrConfiguration,
		domain.ErrInvalidArgument,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	reqLogger := logpkg.FromContext(r.Context())
	reqLogger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func collectionToDTO(c *domcol.Collection) CollectionResponse {
	specs := c.Specs()
	fields := make([]FieldDef, len(specs))
	for i := range specs {
		sp := &specs[i]
		fields[i] = FieldDef{
			Name:       sp.Name(),
			Kind:       sp.Kind().String(),
			Weight:     sp.Weight(),
			Keys:       sp.Keys(),
			MinSize:    sp.MinSize(),
			PrefixOnly: sp.PrefixOnly(),
		}
	}

	var filters []FilterFieldDef
	if len(c.Filters()) > 0 {
		filters = make([]FilterFieldDef, len(c.Filters()))
		for i, f := range c.Filters() {
			filters[i] = FilterFieldDef{Name: f.Name, Type: string(f.Type)}
		}
	}

	return CollectionResponse{
		Name:      c.Name(),
		Fields:    fields,
		Filters:   filters,
		Language:  c.Language(),
		CreatedAt: c.CreatedAt(),
	}
}

func documentToDTO(doc *domdoc.Document) DocumentResponse {
	return DocumentResponse{
		ID:    doc.ID(),
		Attrs: doc.External(),
	}
}

func searchResultToDTO(r *result.Result) SearchResultItem {
	return SearchResultItem{
		ID:    r.ID(),
		Score: r.Score(),
		Attrs: r.Attrs(),
	}
}

func queryFromDTO(req *SearchRequest) (query.Query, error) {
	filters, err := filtersFromDTO(req.Filters)
	if err != nil {
		return query.Query{}, fmt.Errorf("parse filters: %w", err)
	}

	q, err := query.New(req.Query, req.MinSize, req.PrefixOnly, filters, req.Limit)
	if err != nil {
		return query.Query{}, fmt.Errorf("build query: %w", err)
	}
	return q, nil
}

func filtersFromDTO(f *FilterExpressionDTO) (filter.Expression, error) {
	if f == nil {
		return filter.Expression{}, nil
	}

	must, err := conditionsFromDTO(f.Must)
	if err != nil {
		return filter.Expression{}, err
	}
	should, err := conditionsFromDTO(f.Should)
	if err != nil {
		return filter.Expression{}, err
	}
	mustNot, err := conditionsFromDTO(f.MustNot)
	if err != nil {
		return filter.Expression{}, err
	}

	expr, err := filter.NewExpression(must, should, mustNot)
	if err != nil {
		return filter.Expression{}, fmt.Errorf("new expression: %w", err)
	}
	return expr, nil
}

func conditionsFromDTO(cs *[]FilterConditionDTO) ([]filter.Condition, error) {
	if cs == nil {
		return nil, nil
	}
	out := make([]filter.Condition, 0, len(*cs))
	for _, c := range *cs {
		cond, err := conditionFromDTO(c)
		if err != nil {
			return nil, err
		}
		out = append(out, cond)
	}
	return out, nil
}

func conditionFromDTO(c FilterConditionDTO) (filter.Condition, error) {
	if c.Match != nil && c.Range != nil {
		return filter.Condition{},
			fmt.Errorf("filter condition for %q must have match or range, not both", c.Key)
	}
	if c.Match != nil {
		cond, err := filter.NewMatch(c.Key, *c.Match)
		if err != nil {
			return filter.Condition{}, fmt.Errorf("match filter: %w", err)
		}
		return cond, nil
	}
	if c.Range != nil {
		r, err := filter.NewRangeBounds(c.Range.Gt, c.Range.Gte, c.Range.Lt, c.Range.Lte)
		if err != nil {
			return filter.Condition{}, fmt.Errorf("range filter: %w", err)
		}
		cond, err := filter.NewRange(c.Key, r)
		if err != nil {
			return filter.Condition{}, fmt.Errorf("range condition: %w", err)
		}
		return cond, nil
	}
	return filter.Condition{},
		errors.New("filter condition must have either match or range")
}
