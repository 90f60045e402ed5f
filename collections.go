package fuzzdex

import (
	"context"
	"fmt"

	collectionuc "github.com/kailas-cloud/fuzzdex/internal/usecase/collection"
)

// CollectionService manages collection definitions.
type CollectionService struct {
	svc *collectionuc.Service
}

// Create defines a new collection. Fails if a collection with the same
// name already exists.
func (s *CollectionService) Create(
	ctx context.Context, name string, opts ...CollectionOption,
) (CollectionInfo, error) {
	cfg := &collectionConfig{}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.err != nil {
		return CollectionInfo{}, fmt.Errorf("create collection: %w", cfg.err)
	}

	col, err := s.svc.Create(ctx, name, cfg.specs, cfg.filters, cfg.language)
	if err != nil {
		return CollectionInfo{}, fmt.Errorf("create collection: %w", err)
	}
	return fromInternalCollection(&col), nil
}

// Ensure creates the collection if it does not exist and returns the
// stored definition otherwise. Idempotent, safe to call on startup.
func (s *CollectionService) Ensure(
	ctx context.Context, name string, opts ...CollectionOption,
) (CollectionInfo, error) {
	cfg := &collectionConfig{}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.err != nil {
		return CollectionInfo{}, fmt.Errorf("ensure collection: %w", cfg.err)
	}

	col, err := s.svc.Ensure(ctx, name, cfg.specs, cfg.filters, cfg.language)
	if err != nil {
		return CollectionInfo{}, fmt.Errorf("ensure collection: %w", err)
	}
	return fromInternalCollection(&col), nil
}

// Get retrieves a collection definition by name.
func (s *CollectionService) Get(ctx context.Context, name string) (CollectionInfo, error) {
	col, err := s.svc.Get(ctx, name)
	if err != nil {
		return CollectionInfo{}, fmt.Errorf("get collection: %w", err)
	}
	return fromInternalCollection(&col), nil
}

// List returns all collection definitions, oldest first.
func (s *CollectionService) List(ctx context.Context) ([]CollectionInfo, error) {
	cols, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	out := make([]CollectionInfo, len(cols))
	for i := range cols {
		out[i] = fromInternalCollection(&cols[i])
	}
	return out, nil
}

// Drop removes a collection definition and its index. Documents are
// left in place.
func (s *CollectionService) Drop(ctx context.Context, name string) error {
	if err := s.svc.Delete(ctx, name); err != nil {
		return fmt.Errorf("drop collection: %w", err)
	}
	return nil
}
