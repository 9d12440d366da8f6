package db

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type widget struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Name  string             `bson:"name"`
	Price float64            `bson:"price"`
}

func TestMemoryCollection_InsertAndFind(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewMemoryCollection("widgets")

	id, err := c.InsertOne(ctx, widget{Name: "bolt", Price: 1.5})
	if err != nil {
		t.Fatalf("InsertOne() error = %v", err)
	}
	if id.IsZero() {
		t.Fatal("InsertOne() returned zero id")
	}

	raw, err := c.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		t.Fatalf("FindOne() error = %v", err)
	}
	var got widget
	if err := bson.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.ID != id || got.Name != "bolt" || got.Price != 1.5 {
		t.Errorf("FindOne() = %+v", got)
	}

	if _, err := c.FindOne(ctx, bson.M{"name": "nut"}); !errors.Is(err, ErrNoDocuments) {
		t.Errorf("FindOne() missing error = %v, want ErrNoDocuments", err)
	}

	n, err := c.CountDocuments(ctx, nil)
	if err != nil || n != 1 {
		t.Errorf("CountDocuments() = %d, %v; want 1", n, err)
	}
}

func TestMemoryCollection_FindReturnsEmptySlice(t *testing.T) {
	t.Parallel()

	docs, err := NewMemoryCollection("empty").Find(context.Background(), nil)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if docs == nil || len(docs) != 0 {
		t.Errorf("Find() = %v, want empty non-nil slice", docs)
	}
}

func TestMemoryCollection_UniqueKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewMemoryCollection("invoices", "number")

	if _, err := c.InsertOne(ctx, bson.M{"number": "1"}); err != nil {
		t.Fatalf("first insert error = %v", err)
	}
	if _, err := c.InsertOne(ctx, bson.M{"number": "1"}); err == nil {
		t.Error("expected duplicate key error")
	}
	if _, err := c.InsertOne(ctx, bson.M{"number": "2"}); err != nil {
		t.Errorf("second number insert error = %v", err)
	}
}

func TestMemoryCollection_UpdateOne(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewMemoryCollection("widgets")

	id, _ := c.InsertOne(ctx, widget{Name: "bolt", Price: 1})

	matched, err := c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"price": 2.5}})
	if err != nil || matched != 1 {
		t.Fatalf("UpdateOne() = %d, %v; want 1", matched, err)
	}
	raw, _ := c.FindOne(ctx, bson.M{"_id": id})
	var got widget
	_ = bson.Unmarshal(raw, &got)
	if got.Price != 2.5 || got.Name != "bolt" {
		t.Errorf("after update = %+v", got)
	}

	matched, err = c.UpdateOne(ctx, bson.M{"_id": primitive.NewObjectID()}, bson.M{"$set": bson.M{"price": 3}})
	if err != nil || matched != 0 {
		t.Errorf("UpdateOne() on missing = %d, %v; want 0", matched, err)
	}

	if _, err := c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"price": 1}}); err == nil {
		t.Error("expected error for unsupported update operator")
	}
}

func TestMemoryCollection_AggregateDoesNotMutate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewMemoryCollection("widgets")
	_, _ = c.InsertOne(ctx, widget{Name: "bolt", Price: 1})

	_, err := c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$addFields", Value: bson.D{{Key: "name", Value: "changed"}}}},
	})
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	if n, _ := c.CountDocuments(ctx, bson.M{"name": "bolt"}); n != 1 {
		t.Error("Aggregate modified stored documents")
	}
}

func TestMemoryCollection_CancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewMemoryCollection("w").Find(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Find() error = %v, want context.Canceled", err)
	}
}

func TestMemorySequence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemorySequence()

	if err := s.Seed(ctx, "invoices", 4); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	// Seeding lower never moves the counter back.
	_ = s.Seed(ctx, "invoices", 2)

	n, err := s.Next(ctx, "invoices")
	if err != nil || n != 5 {
		t.Fatalf("Next() = %d, %v; want 5", n, err)
	}

	var wg sync.WaitGroup
	seen := sync.Map{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _ := s.Next(ctx, "invoices")
			if _, dup := seen.LoadOrStore(v, true); dup {
				t.Errorf("duplicate sequence value %d", v)
			}
		}()
	}
	wg.Wait()

	if n, _ := s.Next(ctx, "other"); n != 1 {
		t.Errorf("Next() on fresh name = %d, want 1", n)
	}
}
