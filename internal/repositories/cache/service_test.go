package cache

import (
	"context"
	"testing"
	"time"

	"tembo/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewCacheService(client, time.Minute)
	t.Cleanup(func() { svc.Close() })
	return svc, mr
}

func TestSetGet(t *testing.T) {
	svc, _ := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, svc.Set(ctx, "key", payload{Name: "x", Count: 3}))

	var out payload
	found, err := svc.Get(ctx, "key", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "x", Count: 3}, out)

	found, err = svc.Get(ctx, "missing", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetWithTTL(t *testing.T) {
	svc, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, svc.SetWithTTL(ctx, "key", "value", 5*time.Second))

	mr.FastForward(6 * time.Second)

	var out string
	found, err := svc.Get(ctx, "key", &out)
	require.NoError(t, err)
	assert.False(t, found, "entry must expire")
}

func TestWalletRoundTrip(t *testing.T) {
	svc, _ := newTestCache(t)
	ctx := context.Background()

	w := &models.Wallet{
		OwnerID:    7,
		Name:       "Primary",
		Balance:    decimal.RequireFromString("123.45"),
		DailySpent: decimal.RequireFromString("10.00"),
		Frozen:     true,
		Version:    4,
	}
	require.NoError(t, svc.SetWallet(ctx, w))

	got, err := svc.GetWallet(ctx, 7, "Primary")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Balance.Equal(w.Balance))
	assert.True(t, got.DailySpent.Equal(w.DailySpent))
	assert.True(t, got.Frozen)
	assert.Equal(t, uint64(4), got.Version)

	// Wallets are keyed per owner and name.
	got, err = svc.GetWallet(ctx, 7, "Savings")
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = svc.GetWallet(ctx, 8, "Primary")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInvalidateWallet(t *testing.T) {
	svc, _ := newTestCache(t)
	ctx := context.Background()

	w := &models.Wallet{OwnerID: 7, Name: "Primary", Balance: decimal.Zero, DailySpent: decimal.Zero}
	require.NoError(t, svc.SetWallet(ctx, w))
	require.NoError(t, svc.InvalidateWallet(ctx, 7, "Primary"))

	got, err := svc.GetWallet(ctx, 7, "Primary")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteAndFlush(t *testing.T) {
	svc, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "a", 1))
	require.NoError(t, svc.Set(ctx, "b", 2))
	require.NoError(t, svc.Delete(ctx, "a"))

	var out int
	found, err := svc.Get(ctx, "a", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, svc.FlushAll(ctx))
	found, err = svc.Get(ctx, "b", &out)
	require.NoError(t, err)
	assert.False(t, found)
}
