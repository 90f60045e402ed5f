package document

import (
	"context"
	"fmt"

	domdoc "github.com/kailas-cloud/fuzzdex/internal/domain/document"
	"github.com/kailas-cloud/fuzzdex/internal/domain/fuzzy"
)

// Service handles document CRUD with automatic token generation. Every
// write path runs the proposed attributes through fuzzy.Augment before the
// document is persisted, so the stored form always carries token
// attributes consistent with the collection's field specs.
type Service struct {
	repo            Repository
	colls           CollectionReader
	defaultPageSize int
	maxPageSize     int
}

// New creates a document service.
func New(repo Repository, colls CollectionReader) *Service {
	return &Service{
		repo:            repo,
		colls:           colls,
		defaultPageSize: 20,
		maxPageSize:     100,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// Save creates or replaces a document, generating token attributes from
// the given attribute set. Returns true if the document was created.
func (s *Service) Save(ctx context.Context, collectionName, id string, attrs map[string]any) (bool, error) {
	col, err := s.colls.Get(ctx, collectionName)
	if err != nil {
		return false, fmt.Errorf("get collection: %w", err)
	}

	augmented, err := fuzzy.Augment(attrs, col.Specs())
	if err != nil {
		return false, fmt.Errorf("augment document: %w", err)
	}

	doc, err := domdoc.New(id, augmented)
	if err != nil {
		return false, err
	}

	created, err := s.repo.Upsert(ctx, collectionName, &doc)
	if err != nil {
		return false, fmt.Errorf("upsert document: %w", err)
	}
	return created, nil
}

// Update merges the given attributes into an existing document and
// regenerates token attributes for the merged set. Attributes absent from
// attrs keep their stored values.
func (s *Service) Update(ctx context.Context, collectionName, id string, attrs map[string]any) error {
	_, err := s.update(ctx, collectionName, id, attrs)
	return err
}

// FindOneAndUpdate is Update returning the new external document.
func (s *Service) FindOneAndUpdate(
	ctx context.Context, collectionName, id string, attrs map[string]any,
) (domdoc.Document, error) {
	return s.update(ctx, collectionName, id, attrs)
}

func (s *Service) update(
	ctx context.Context, collectionName, id string, attrs map[string]any,
) (domdoc.Document, error) {
	col, err := s.colls.Get(ctx, collectionName)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("get collection: %w", err)
	}

	current, err := s.repo.Get(ctx, collectionName, id)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("get document: %w", err)
	}

	// Merge over the stored external view; stale token attributes are
	// regenerated from the merged set below.
	merged := current.External()
	for k, v := range attrs {
		merged[k] = v
	}

	augmented, err := fuzzy.Augment(merged, col.Specs())
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("augment document: %w", err)
	}

	doc := domdoc.Reconstruct(id, augmented)
	if _, err := s.repo.Upsert(ctx, collectionName, &doc); err != nil {
		return domdoc.Document{}, fmt.Errorf("upsert document: %w", err)
	}

	return doc, nil
}

// Get retrieves a document by collection and ID.
func (s *Service) Get(ctx context.Context, collectionName, id string) (domdoc.Document, error) {
	if _, err := s.colls.Get(ctx, collectionName); err != nil {
		return domdoc.Document{}, fmt.Errorf("get collection: %w", err)
	}

	doc, err := s.repo.Get(ctx, collectionName, id)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// List returns a paginated list of documents.
func (s *Service) List(
	ctx context.Context, collectionName, cursor string, limit int,
) ([]domdoc.Document, string, error) {
	if _, err := s.colls.Get(ctx, collectionName); err != nil {
		return nil, "", fmt.Errorf("get collection: %w", err)
	}

	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	docs, nextCursor, err := s.repo.List(ctx, collectionName, cursor, limit)
	if err != nil {
		return nil, "", fmt.Errorf("list documents: %w", err)
	}
	return docs, nextCursor, nil
}

// Delete removes a document.
func (s *Service) Delete(ctx context.Context, collectionName, id string) error {
	if _, err := s.colls.Get(ctx, collectionName); err != nil {
		return fmt.Errorf("get collection: %w", err)
	}

	if err := s.repo.Delete(ctx, collectionName, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Count returns the number of documents in a collection.
func (s *Service) Count(ctx context.Context, collectionName string) (int, error) {
	if _, err := s.colls.Get(ctx, collectionName); err != nil {
		return 0, fmt.Errorf("get collection: %w", err)
	}
	count, err := s.repo.Count(ctx, collectionName)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}
