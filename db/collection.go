package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/satheeshds/invoicing/metrics"
)

// ErrNoDocuments is returned by FindOne when nothing matches.
var ErrNoDocuments = mongo.ErrNoDocuments

// Collection is the subset of a document collection the services use.
// Results come back as raw BSON so callers decode into their own types.
type Collection interface {
	Name() string
	Find(ctx context.Context, filter any) ([]bson.Raw, error)
	FindOne(ctx context.Context, filter any) (bson.Raw, error)
	CountDocuments(ctx context.Context, filter any) (int64, error)
	InsertOne(ctx context.Context, doc any) (primitive.ObjectID, error)
	// UpdateOne returns the number of matched documents (0 or 1).
	UpdateOne(ctx context.Context, filter, update any) (int64, error)
	Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]bson.Raw, error)
}

// Sequencer hands out monotonically increasing numbers per name.
type Sequencer interface {
	Next(ctx context.Context, name string) (int64, error)
	// Seed raises the sequence to at least floor without lowering it.
	Seed(ctx context.Context, name string, floor int64) error
}

// MongoCollection implements Collection on a MongoDB collection. Every call
// runs under its own timeout and is recorded in the store metrics.
type MongoCollection struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoCollection(coll *mongo.Collection, timeout time.Duration) *MongoCollection {
	return &MongoCollection{coll: coll, timeout: timeout}
}

func (c *MongoCollection) Name() string { return c.coll.Name() }

func (c *MongoCollection) op(ctx context.Context, name string) (context.Context, func(error)) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	start := time.Now()
	return ctx, func(err error) {
		cancel()
		metrics.RecordStoreOperation(name, c.coll.Name(), time.Since(start), err)
	}
}

func (c *MongoCollection) Find(ctx context.Context, filter any) (docs []bson.Raw, err error) {
	ctx, done := c.op(ctx, "find")
	defer func() { done(err) }()

	cur, err := c.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", c.coll.Name(), err)
	}
	docs = []bson.Raw{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("reading %s cursor: %w", c.coll.Name(), err)
	}
	return docs, nil
}

func (c *MongoCollection) FindOne(ctx context.Context, filter any) (doc bson.Raw, err error) {
	ctx, done := c.op(ctx, "find_one")
	defer func() {
		if errors.Is(err, ErrNoDocuments) {
			done(nil)
			return
		}
		done(err)
	}()

	doc, err = c.coll.FindOne(ctx, filter).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoDocuments
		}
		return nil, fmt.Errorf("find one in %s: %w", c.coll.Name(), err)
	}
	return doc, nil
}

func (c *MongoCollection) CountDocuments(ctx context.Context, filter any) (n int64, err error) {
	ctx, done := c.op(ctx, "count")
	defer func() { done(err) }()

	if filter == nil {
		filter = bson.D{}
	}
	n, err = c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count in %s: %w", c.coll.Name(), err)
	}
	return n, nil
}

func (c *MongoCollection) InsertOne(ctx context.Context, doc any) (id primitive.ObjectID, err error) {
	ctx, done := c.op(ctx, "insert")
	defer func() { done(err) }()

	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert into %s: %w", c.coll.Name(), err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert into %s: unexpected id type %T", c.coll.Name(), res.InsertedID)
	}
	return id, nil
}

func (c *MongoCollection) UpdateOne(ctx context.Context, filter, update any) (matched int64, err error) {
	ctx, done := c.op(ctx, "update")
	defer func() { done(err) }()

	res, err := c.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("update in %s: %w", c.coll.Name(), err)
	}
	return res.MatchedCount, nil
}

func (c *MongoCollection) Aggregate(ctx context.Context, pipeline mongo.Pipeline) (docs []bson.Raw, err error) {
	ctx, done := c.op(ctx, "aggregate")
	defer func() { done(err) }()

	cur, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate on %s: %w", c.coll.Name(), err)
	}
	docs = []bson.Raw{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("reading %s aggregation: %w", c.coll.Name(), err)
	}
	return docs, nil
}

// DecodeAll unmarshals every raw document into a T.
func DecodeAll[T any](docs []bson.Raw) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, raw := range docs {
		var v T
		if err := bson.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decoding document: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}
