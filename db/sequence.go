package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/satheeshds/invoicing/metrics"
)

// MongoSequence keeps one counter document per name:
//
//	{_id: "invoices", seq: 42}
//
// Next is a single findOneAndUpdate with $inc, so concurrent callers always
// get distinct values.
type MongoSequence struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoSequence(coll *mongo.Collection, timeout time.Duration) *MongoSequence {
	return &MongoSequence{coll: coll, timeout: timeout}
}

func (s *MongoSequence) Next(ctx context.Context, name string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	start := time.Now()

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&doc)
	metrics.RecordStoreOperation("sequence_next", s.coll.Name(), time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("advancing sequence %s: %w", name, err)
	}
	return doc.Seq, nil
}

func (s *MongoSequence) Seed(ctx context.Context, name string, floor int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	start := time.Now()

	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$max": bson.M{"seq": floor}},
		options.Update().SetUpsert(true),
	)
	metrics.RecordStoreOperation("sequence_seed", s.coll.Name(), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("seeding sequence %s: %w", name, err)
	}
	return nil
}
