package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/fuzzdex/internal/domain"
	domcol "github.com/kailas-cloud/fuzzdex/internal/domain/collection"
	"github.com/kailas-cloud/fuzzdex/internal/domain/field"
)

// Service handles collection CRUD operations.
type Service struct {
	repo Repository
}

// New creates a collection service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new collection.
func (s *Service) Create(
	ctx context.Context, name string, specs []field.Spec,
	filters []domcol.FilterField, language string,
) (domcol.Collection, error) {
	col, err := domcol.New(name, specs, filters, language)
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("validate collection: %w", err)
	}

	if err := s.repo.Create(ctx, col); err != nil {
		return domcol.Collection{}, fmt.Errorf("create collection: %w", err)
	}

	return col, nil
}

// Ensure creates the collection if it does not exist yet and returns the
// stored one otherwise. Safe to call on every startup.
func (s *Service) Ensure(
	ctx context.Context, name string, specs []field.Spec,
	filters []domcol.FilterField, language string,
) (domcol.Collection, error) {
	col, err := s.Create(ctx, name, specs, filters, language)
	if err == nil {
		return col, nil
	}
	if !errors.Is(err, domain.ErrAlreadyExists) {
		return domcol.Collection{}, err
	}

	existing, err := s.repo.Get(ctx, name)
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("get collection: %w", err)
	}
	return existing, nil
}

// Get retrieves a collection by name.
func (s *Service) Get(ctx context.Context, name string) (domcol.Collection, error) {
	col, err := s.repo.Get(ctx, name)
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("get collection: %w", err)
	}
	return col, nil
}

// List returns all collections.
func (s *Service) List(ctx context.Context) ([]domcol.Collection, error) {
	cols, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return cols, nil
}

// Delete removes a collection.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return nil
}
