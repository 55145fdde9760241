package sequence

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMemorySequencer_ConcurrentCallersGetDistinctNumbers(t *testing.T) {
	const callers = 200
	seq := NewMemorySequencer(0)

	var wg sync.WaitGroup
	results := make(chan int64, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := seq.Next(context.Background())
			assert.NoError(t, err)
			results <- n
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool, callers)
	for n := range results {
		assert.False(t, seen[n], "duplicate order number %d", n)
		seen[n] = true
	}
	assert.Len(t, seen, callers)
}

func TestMemorySequencer_SequentialCallsIncrease(t *testing.T) {
	seq := NewMemorySequencer(41)
	ctx := context.Background()

	prev, err := seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), prev)

	for i := 0; i < 10; i++ {
		n, err := seq.Next(ctx)
		require.NoError(t, err)
		assert.Greater(t, n, prev)
		prev = n
	}
}

func TestMemorySequencer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemorySequencer(0).Next(ctx)
	var se *SequencingError
	require.True(t, errors.As(err, &se))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMongoSequencer(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("next returns incremented value", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: OrderNoKey},
			{Key: "seq", Value: int64(1001)},
		}}))

		n, err := NewMongoSequencer(mt.Coll, OrderNoKey).Next(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(1001), n)
	})

	mt.Run("storage failure is a sequencing error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "counter unavailable",
		}))

		_, err := NewMongoSequencer(mt.Coll, OrderNoKey).Next(context.Background())
		var se *SequencingError
		require.True(mt, errors.As(err, &se))
		assert.Equal(mt, OrderNoKey, se.Key)
	})

	mt.Run("ensure at least", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := NewMongoSequencer(mt.Coll, OrderNoKey).EnsureAtLeast(context.Background(), 500)
		assert.NoError(mt, err)
	})
}
