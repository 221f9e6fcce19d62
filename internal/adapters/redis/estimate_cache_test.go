package redis_adapter

import (
	"context"
	"marketplace-service/internal/core/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*EstimateCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache, err := NewEstimateCache(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestEstimateCache_SetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	estimate := domain.LoanEstimate{MonthlyPayment: 2528, LoanAmount: 400000}
	require.NoError(t, cache.Set(ctx, "estimate:loan:x", estimate, time.Minute))

	var got domain.LoanEstimate
	found, err := cache.Get(ctx, "estimate:loan:x", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, estimate, got)
}

func TestEstimateCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t)

	var got domain.LoanEstimate
	found, err := cache.Get(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEstimateCache_TTL(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var got map[string]int
	found, err := cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEstimateCache_CorruptEntryIsMiss(t *testing.T) {
	cache, mr := newTestCache(t)
	require.NoError(t, mr.Set("bad", "{not json"))

	var got map[string]int
	found, err := cache.Get(context.Background(), "bad", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, mr.Exists("bad"))
}

func TestNewEstimateCache_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewEstimateCache(context.Background(), Config{Addr: addr})
	assert.Error(t, err)
}
