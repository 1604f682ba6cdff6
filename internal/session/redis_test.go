package session

import (
	"context"
	"os"
	"testing"
	"time"

	"tomato-harvest/internal/config"
	"tomato-harvest/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRedis(t *testing.T, ttl time.Duration) *Redis {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	client, err := NewRedisClient(context.Background(), config.Redis{URL: url, ReadTimeout: 3, WriteTimeout: 3, DialTimeout: 5})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, ttl)
}

func TestRedis_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	r := testRedis(t, time.Minute)
	id := NewID()

	_, err := r.Load(ctx, id)
	require.ErrorIs(t, err, domain.ErrNotFound)

	state := State{
		Lines:     []domain.CartLine{{ID: "2", Name: "Roma Tomatoes", Price: decimal.RequireFromString("3.49"), Quantity: 3}},
		PanelOpen: true,
		Notice:    "hi",
	}
	require.NoError(t, r.Save(ctx, id, state))

	loaded, err := r.Load(ctx, id)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 1)
	assert.True(t, loaded.Lines[0].Price.Equal(decimal.RequireFromString("3.49")))
	assert.Equal(t, 3, loaded.Lines[0].Quantity)
	assert.True(t, loaded.PanelOpen)
	assert.Equal(t, "hi", loaded.Notice)

	ttl, err := r.rdb.TTL(ctx, r.key(id)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, r.Delete(ctx, id))
	require.ErrorIs(t, r.Delete(ctx, id), domain.ErrNotFound)
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), config.Redis{URL: "not a url"})
	require.Error(t, err)
}
