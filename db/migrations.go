package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/satheeshds/invoicing/config"
	"github.com/satheeshds/invoicing/logging"
)

type indexSpec struct {
	collection func(config.DatabaseConfig) string
	model      mongo.IndexModel
}

func invoicesColl(c config.DatabaseConfig) string { return c.Invoices }
func productsColl(c config.DatabaseConfig) string { return c.Products }

var indexes = []indexSpec{
	// Invoice numbers are looked up directly and must never repeat.
	{invoicesColl, mongo.IndexModel{
		Keys:    bson.D{{Key: "number", Value: 1}},
		Options: options.Index().SetName("uniq_invoice_number").SetUnique(true),
	}},
	// Sales over time filters and groups on the creation day.
	{invoicesColl, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: 1}},
		Options: options.Index().SetName("idx_invoices_created_at"),
	}},
	{invoicesColl, mongo.IndexModel{
		Keys:    bson.D{{Key: "client_name", Value: 1}},
		Options: options.Index().SetName("idx_invoices_client_name"),
	}},
	{productsColl, mongo.IndexModel{
		Keys:    bson.D{{Key: "reference", Value: 1}},
		Options: options.Index().SetName("idx_products_reference"),
	}},
}

// migrate creates all indexes. Safe to call repeatedly: creating an index
// that already exists with the same definition is a no-op.
func migrate(ctx context.Context, database *mongo.Database, cfg config.DatabaseConfig) error {
	logging.Info().Str("database", database.Name()).Msg("running database migrations")

	for _, spec := range indexes {
		coll := spec.collection(cfg)
		ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		name, err := database.Collection(coll).Indexes().CreateOne(ctx, spec.model)
		cancel()
		if err != nil {
			return fmt.Errorf("creating index on %s: %w", coll, err)
		}
		logging.Debug().Str("collection", coll).Str("index", name).Msg("index ready")
	}

	logging.Info().Msg("database migrations complete")
	return nil
}
