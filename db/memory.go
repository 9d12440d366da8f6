package db

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewMemoryStore returns a Store that keeps everything in process. Invoice
// numbers are unique, mirroring the MongoDB index.
func NewMemoryStore() *Store {
	return &Store{
		Invoices: NewMemoryCollection("invoices", "number"),
		Products: NewMemoryCollection("products"),
		Sequence: NewMemorySequence(),
	}
}

// MemoryCollection is an in-process Collection. Filters support equality
// and the comparison operators; Aggregate runs the pipeline stages listed
// in pipeline.go.
type MemoryCollection struct {
	name   string
	unique []string

	mu   sync.RWMutex
	docs []bson.M
}

// NewMemoryCollection creates an empty collection. Each uniqueKeys entry
// behaves like a unique single-field index.
func NewMemoryCollection(name string, uniqueKeys ...string) *MemoryCollection {
	return &MemoryCollection{name: name, unique: uniqueKeys}
}

func (c *MemoryCollection) Name() string { return c.name }

func (c *MemoryCollection) Find(ctx context.Context, filter any) ([]bson.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []bson.Raw{}
	for _, doc := range c.docs {
		ok, err := matches(doc, filter)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		raw, err := bson.Marshal(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

func (c *MemoryCollection) FindOne(ctx context.Context, filter any) (bson.Raw, error) {
	docs, err := c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	return docs[0], nil
}

func (c *MemoryCollection) CountDocuments(ctx context.Context, filter any) (int64, error) {
	docs, err := c.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(docs)), nil
}

func (c *MemoryCollection) InsertOne(ctx context.Context, doc any) (primitive.ObjectID, error) {
	if err := ctx.Err(); err != nil {
		return primitive.NilObjectID, err
	}
	m, err := toM(doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert into %s: %w", c.name, err)
	}

	id, ok := m["_id"].(primitive.ObjectID)
	if _, present := m["_id"]; !present {
		id, ok = primitive.NewObjectID(), true
		m["_id"] = id
	}
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert into %s: unexpected id type %T", c.name, m["_id"])
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.docs {
		if existing["_id"] == id {
			return primitive.NilObjectID, fmt.Errorf("insert into %s: duplicate _id %s", c.name, id.Hex())
		}
		for _, key := range c.unique {
			if v, ok := m[key]; ok && equalValues(existing[key], v) {
				return primitive.NilObjectID, fmt.Errorf("insert into %s: duplicate key %s: %v", c.name, key, v)
			}
		}
	}
	c.docs = append(c.docs, m)
	return id, nil
}

// UpdateOne supports {$set: {...}} updates.
func (c *MemoryCollection) UpdateOne(ctx context.Context, filter, update any) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	u, err := toM(update)
	if err != nil {
		return 0, fmt.Errorf("update in %s: %w", c.name, err)
	}
	rawSet, hasSet := u["$set"]
	set, err := toM(rawSet)
	if err != nil || !hasSet || len(u) != 1 {
		return 0, fmt.Errorf("update in %s: only $set updates are supported", c.name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, doc := range c.docs {
		ok, err := matches(doc, filter)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		for k, v := range set {
			doc[k] = v
		}
		return 1, nil
	}
	return 0, nil
}

func (c *MemoryCollection) Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]bson.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	docs := make([]bson.M, len(c.docs))
	for i, d := range c.docs {
		docs[i] = cloneM(d)
	}
	c.mu.RUnlock()

	out, err := runPipeline(docs, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate on %s: %w", c.name, err)
	}

	raws := make([]bson.Raw, 0, len(out))
	for _, d := range out {
		raw, err := bson.Marshal(d)
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

// toM normalises any BSON-marshalable value (struct, bson.D, bson.M) into
// a bson.M by round-tripping through the encoder.
func toM(v any) (bson.M, error) {
	if v == nil {
		return bson.M{}, nil
	}
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func cloneM(m bson.M) bson.M {
	out, err := toM(m)
	if err != nil {
		return bson.M{}
	}
	return out
}

// MemorySequence is the in-process Sequencer.
type MemorySequence struct {
	mu   sync.Mutex
	seqs map[string]int64
}

func NewMemorySequence() *MemorySequence {
	return &MemorySequence{seqs: map[string]int64{}}
}

func (s *MemorySequence) Next(ctx context.Context, name string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs[name]++
	return s.seqs[name], nil
}

func (s *MemorySequence) Seed(ctx context.Context, name string, floor int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seqs[name] < floor {
		s.seqs[name] = floor
	}
	return nil
}
