package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/creatorpulse/admin-api/pkg/config"
	"github.com/creatorpulse/admin-api/pkg/logging"
)

// Store wraps the document store client. It is created once by the
// composition root and shared; the underlying client is a pooled,
// thread-safe handle. No retry or backoff: an unreachable store at
// startup is fatal by contract.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New creates a new document store connection
func New(cfg *config.StoreConfig) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetMaxConnIdleTime(time.Hour)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	// Test connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping document store: %w", err)
	}

	logging.GetLogger().Info("Document store connection established")

	return &Store{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

// Database returns the underlying database handle
func (s *Store) Database() *mongo.Database {
	return s.db
}

// Collection returns a collection handle by name
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// Close tears down the connection pool
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Health checks document store health
func (s *Store) Health(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}
