// Package sequence hands out human-facing order numbers. Numbers are unique
// and strictly increasing; gaps are allowed when an order write fails after a
// number was taken.
package sequence

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-restaurant-ordering/models"
)

// OrderNoKey is the counter document used for order numbers.
const OrderNoKey = "orderNo"

type Sequencer interface {
	Next(ctx context.Context) (int64, error)
}

// SequencingError wraps a failed counter increment.
type SequencingError struct {
	Key string
	Err error
}

func (e *SequencingError) Error() string {
	return fmt.Sprintf("sequence %q: %v", e.Key, e.Err)
}

func (e *SequencingError) Unwrap() error { return e.Err }

// MongoSequencer increments a counter document with a single atomic
// findAndModify, so concurrent callers across processes never share a value.
type MongoSequencer struct {
	counters *mongo.Collection
	key      string
}

func NewMongoSequencer(counters *mongo.Collection, key string) *MongoSequencer {
	return &MongoSequencer{counters: counters, key: key}
}

func (s *MongoSequencer) Next(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.Counter
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": s.key},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, &SequencingError{Key: s.key, Err: err}
	}
	return counter.Seq, nil
}

// EnsureAtLeast raises the counter to floor if it is behind, e.g. after
// orders were imported with their numbers. It never lowers it.
func (s *MongoSequencer) EnsureAtLeast(ctx context.Context, floor int64) error {
	_, err := s.counters.UpdateOne(ctx,
		bson.M{"_id": s.key},
		bson.M{"$max": bson.M{"seq": floor}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return &SequencingError{Key: s.key, Err: err}
	}
	return nil
}

// MemorySequencer is an in-process counter for tests and single-instance
// deployments without a shared store.
type MemorySequencer struct {
	seq atomic.Int64
}

func NewMemorySequencer(start int64) *MemorySequencer {
	s := &MemorySequencer{}
	s.seq.Store(start)
	return s
}

func (s *MemorySequencer) Next(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, &SequencingError{Key: OrderNoKey, Err: err}
	}
	return s.seq.Add(1), nil
}
