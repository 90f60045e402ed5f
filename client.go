package fuzzdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/fuzzdex/internal/db"
	dbRedis "github.com/kailas-cloud/fuzzdex/internal/db/redis"
	collectionrepo "github.com/kailas-cloud/fuzzdex/internal/repository/collection"
	documentrepo "github.com/kailas-cloud/fuzzdex/internal/repository/document"
	searchrepo "github.com/kailas-cloud/fuzzdex/internal/repository/search"
	collectionuc "github.com/kailas-cloud/fuzzdex/internal/usecase/collection"
	documentuc "github.com/kailas-cloud/fuzzdex/internal/usecase/document"
	searchuc "github.com/kailas-cloud/fuzzdex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the fuzzdex SDK entry point.
type Client struct {
	store     db.Store
	collSvc   *collectionuc.Service
	docSvc    *documentuc.Service
	searchSvc *searchuc.Service
}

// New creates a fuzzdex Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("fuzzdex: database address required (use WithRedis)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("fuzzdex: database not ready: %w", err)
	}

	return wireClient(store), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("fuzzdex: create redis store: %w", err)
	}
	return s, nil
}

func wireClient(store db.Store) *Client {
	collRepo := collectionrepo.New(store)
	docRepo := documentrepo.New(store)
	searchRepo := searchrepo.New(store)

	collSvc := collectionuc.New(collRepo)
	docSvc := documentuc.New(docRepo, collRepo)
	searchSvc := searchuc.New(searchRepo, collRepo)

	return &Client{
		store:     store,
		collSvc:   collSvc,
		docSvc:    docSvc,
		searchSvc: searchSvc,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Collections returns the collection management service.
func (c *Client) Collections() *CollectionService {
	return &CollectionService{svc: c.collSvc}
}

// Documents returns the document service for a given collection.
func (c *Client) Documents(collection string) *DocumentService {
	return &DocumentService{collection: collection, svc: c.docSvc}
}

// Search returns the search service for a given collection.
func (c *Client) Search(collection string) *SearchService {
	return &SearchService{collection: collection, svc: c.searchSvc}
}
