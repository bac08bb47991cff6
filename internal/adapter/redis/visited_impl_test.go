package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*VisitedStoreImpl, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return NewVisitedStore(client), mr
}

func TestMarkAndCheckIngested(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	ingested, err := store.IsIngested(ctx, "P2026010200001")
	require.NoError(t, err)
	assert.False(t, ingested)

	require.NoError(t, store.MarkIngested(ctx, "P2026010200001", time.Hour))

	ingested, err = store.IsIngested(ctx, "P2026010200001")
	require.NoError(t, err)
	assert.True(t, ingested)

	ingested, err = store.IsIngested(ctx, "P2026010200002")
	require.NoError(t, err)
	assert.False(t, ingested, "other ids stay unmarked")
}

func TestIngestedMarkExpires(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.MarkIngested(ctx, "P2026010200001", time.Hour))
	mr.FastForward(2 * time.Hour)

	ingested, err := store.IsIngested(ctx, "P2026010200001")
	require.NoError(t, err)
	assert.False(t, ingested, "expired marks force re-ingestion")
}

func TestRemoveIngestedMark(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.MarkIngested(ctx, "P2026010200001", time.Hour))
	require.NoError(t, store.Remove(ctx, "P2026010200001"))

	ingested, err := store.IsIngested(ctx, "P2026010200001")
	require.NoError(t, err)
	assert.False(t, ingested)
}
