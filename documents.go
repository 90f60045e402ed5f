package fuzzdex

import (
	"context"
	"fmt"

	domdoc "github.com/kailas-cloud/fuzzdex/internal/domain/document"
	documentuc "github.com/kailas-cloud/fuzzdex/internal/usecase/document"
)

// DocumentService manages documents of a single collection.
type DocumentService struct {
	collection string
	svc        *documentuc.Service
}

// Save stores a document, replacing any previous version. Token
// attributes are generated from the collection's field specs before the
// write. Returns true when the document was created.
func (s *DocumentService) Save(ctx context.Context, id string, attrs map[string]any) (bool, error) {
	created, err := s.svc.Save(ctx, s.collection, id, attrs)
	if err != nil {
		return false, fmt.Errorf("save document: %w", err)
	}
	return created, nil
}

// Update merges attrs into an existing document and regenerates token
// attributes from the merged set.
func (s *DocumentService) Update(ctx context.Context, id string, attrs map[string]any) error {
	if err := s.svc.Update(ctx, s.collection, id, attrs); err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

// FindOneAndUpdate is Update returning the updated document.
func (s *DocumentService) FindOneAndUpdate(
	ctx context.Context, id string, attrs map[string]any,
) (Document, error) {
	doc, err := s.svc.FindOneAndUpdate(ctx, s.collection, id, attrs)
	if err != nil {
		return Document{}, fmt.Errorf("update document: %w", err)
	}
	return fromInternalDocument(&doc), nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (Document, error) {
	doc, err := s.svc.Get(ctx, s.collection, id)
	if err != nil {
		return Document{}, fmt.Errorf("get document: %w", err)
	}
	return fromInternalDocument(&doc), nil
}

// List returns a page of documents. Pass the returned cursor to get the
// next page; an empty cursor means the end.
func (s *DocumentService) List(
	ctx context.Context, cursor string, limit int,
) ([]Document, string, error) {
	docs, next, err := s.svc.List(ctx, s.collection, cursor, limit)
	if err != nil {
		return nil, "", fmt.Errorf("list documents: %w", err)
	}
	out := make([]Document, len(docs))
	for i := range docs {
		out[i] = fromInternalDocument(&docs[i])
	}
	return out, next, nil
}

// Delete removes a document by ID.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if err := s.svc.Delete(ctx, s.collection, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Count returns the number of documents in the collection.
func (s *DocumentService) Count(ctx context.Context) (int, error) {
	n, err := s.svc.Count(ctx, s.collection)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

func fromInternalDocument(d *domdoc.Document) Document {
	return Document{ID: d.ID(), Attrs: d.External()}
}
