package search

import (
	"context"

	domcol "github.com/kailas-cloud/fuzzdex/internal/domain/collection"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/filter"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/result"
)

// Repository executes token searches against the store.
type Repository interface {
	SearchText(
		ctx context.Context, collectionName string, terms []string,
		filters filter.Expression, topK int,
	) ([]result.Result, error)
}

// CollectionReader loads collection definitions.
type CollectionReader interface {
	Get(ctx context.Context, name string) (domcol.Collection, error)
}
