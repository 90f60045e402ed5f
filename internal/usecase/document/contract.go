package document

import (
	"context"

	domcol "github.com/kailas-cloud/fuzzdex/internal/domain/collection"
	domdoc "github.com/kailas-cloud/fuzzdex/internal/domain/document"
)

// Repository defines the storage contract for documents.
type Repository interface {
	Upsert(ctx context.Context, collectionName string, doc *domdoc.Document) (created bool, err error)
	Get(ctx context.Context, collectionName, id string) (domdoc.Document, error)
	List(ctx context.Context, collectionName, cursor string, limit int) (
		docs []domdoc.Document, nextCursor string, err error,
	)
	Delete(ctx context.Context, collectionName, id string) error
	Count(ctx context.Context, collectionName string) (int, error)
}

// CollectionReader reads collections for existence checks and field specs.
type CollectionReader interface {
	Get(ctx context.Context, name string) (domcol.Collection, error)
}
