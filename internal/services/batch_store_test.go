package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streampulse/internal/analytics"
)

func TestBatchStore_PutGet(t *testing.T) {
	store := NewBatchStore(time.Hour, 4, testLogger())
	ctx := context.Background()

	batch := store.Put(ctx, "a.xlsx", &analytics.Result{})
	require.NotEmpty(t, batch.ID)

	got, ok := store.Get(batch.ID)
	require.True(t, ok)
	assert.Equal(t, "a.xlsx", got.SourceName)

	_, ok = store.Get("unknown")
	assert.False(t, ok)
}

func TestBatchStore_TTLExpiry(t *testing.T) {
	store := NewBatchStore(time.Minute, 4, testLogger())
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }
	batch := store.Put(ctx, "a.xlsx", &analytics.Result{})

	_, ok := store.Get(batch.ID)
	require.True(t, ok)

	// Advance past the TTL.
	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, ok = store.Get(batch.ID)
	assert.False(t, ok)
	assert.Zero(t, store.Len())
}

func TestBatchStore_EvictsOldestWhenFull(t *testing.T) {
	store := NewBatchStore(time.Hour, 2, testLogger())
	ctx := context.Background()

	now := time.Now()
	tick := 0
	store.now = func() time.Time {
		tick++
		return now.Add(time.Duration(tick) * time.Second)
	}

	first := store.Put(ctx, "first.xlsx", &analytics.Result{})
	second := store.Put(ctx, "second.xlsx", &analytics.Result{})
	third := store.Put(ctx, "third.xlsx", &analytics.Result{})

	_, ok := store.Get(first.ID)
	assert.False(t, ok, "oldest batch should be evicted")
	_, ok = store.Get(second.ID)
	assert.True(t, ok)
	_, ok = store.Get(third.ID)
	assert.True(t, ok)
}

func TestBatchStore_Delete(t *testing.T) {
	store := NewBatchStore(time.Hour, 4, testLogger())
	batch := store.Put(context.Background(), "a.xlsx", &analytics.Result{})

	store.Delete(batch.ID)
	_, ok := store.Get(batch.ID)
	assert.False(t, ok)

	// Deleting twice is harmless.
	store.Delete(batch.ID)
}
