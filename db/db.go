// Package db opens the document store used by the services: MongoDB in
// production, or an in-process store for development and tests.
package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/satheeshds/invoicing/config"
	"github.com/satheeshds/invoicing/logging"
)

// Store bundles the collection handles opened once at startup.
type Store struct {
	Invoices Collection
	Products Collection
	Sequence Sequencer

	ping    func(ctx context.Context) error
	migrate func(ctx context.Context) error
	close   func(ctx context.Context) error
}

// Open connects to the configured driver and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logging.Warn().Msg("using in-memory store, data is lost on exit")
		return NewMemoryStore(), nil
	case config.DriverMongo, "":
		return openMongo(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func openMongo(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("invoicing").
		SetConnectTimeout(cfg.Timeout).
		SetServerSelectionTimeout(cfg.Timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	database := client.Database(cfg.Name)
	logging.Info().Str("database", cfg.Name).Msg("database connected")

	return &Store{
		Invoices: NewMongoCollection(database.Collection(cfg.Invoices), cfg.Timeout),
		Products: NewMongoCollection(database.Collection(cfg.Products), cfg.Timeout),
		Sequence: NewMongoSequence(database.Collection(cfg.Counters), cfg.Timeout),
		ping: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
			return client.Ping(ctx, readpref.Primary())
		},
		migrate: func(ctx context.Context) error {
			return migrate(ctx, database, cfg)
		},
		close: client.Disconnect,
	}, nil
}

// Ping checks that the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Migrate creates indexes. It is a no-op for the memory store.
func (s *Store) Migrate(ctx context.Context) error {
	if s.migrate == nil {
		return nil
	}
	return s.migrate(ctx)
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
