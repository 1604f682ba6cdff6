package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"tomato-harvest/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestMemory(ttl time.Duration) (*Memory, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	m := NewMemory(ttl)
	m.now = clock.Now
	return m, clock
}

func TestMemory_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory(time.Hour)

	_, err := m.Load(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	state := State{
		Lines:     []domain.CartLine{{ID: "1", Name: "Heirloom Tomatoes", Price: decimal.RequireFromString("4.99"), Quantity: 2}},
		PanelOpen: true,
	}
	require.NoError(t, m.Save(ctx, "s1", state))

	state.Lines[0].Quantity = 50
	loaded, err := m.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, loaded.PanelOpen)
	require.Len(t, loaded.Lines, 1)
	assert.Equal(t, 2, loaded.Lines[0].Quantity, "saved state must not alias caller slice")

	loaded.Lines[0].Quantity = 7
	again, err := m.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Lines[0].Quantity, "loaded state must not alias stored slice")
}

func TestMemory_ExpiresAfterIdleTTL(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestMemory(10 * time.Minute)

	require.NoError(t, m.Save(ctx, "s1", State{PanelOpen: true}))
	clock.now = clock.now.Add(9 * time.Minute)
	_, err := m.Load(ctx, "s1")
	require.NoError(t, err)

	require.NoError(t, m.Save(ctx, "s1", State{PanelOpen: true}))
	clock.now = clock.now.Add(9 * time.Minute)
	_, err = m.Load(ctx, "s1")
	require.NoError(t, err, "save should slide the expiry")

	clock.now = clock.now.Add(2 * time.Minute)
	_, err = m.Load(ctx, "s1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestMemory_Sweep(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestMemory(time.Minute)

	require.NoError(t, m.Save(ctx, "old", State{}))
	clock.now = clock.now.Add(2 * time.Minute)
	require.NoError(t, m.Save(ctx, "fresh", State{}))

	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())
	_, err := m.Load(ctx, "fresh")
	require.NoError(t, err)
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory(time.Minute)
	require.NoError(t, m.Save(ctx, "s1", State{}))
	require.NoError(t, m.Delete(ctx, "s1"))
	assert.True(t, errors.Is(m.Delete(ctx, "s1"), domain.ErrNotFound))
}

func TestMemory_RunStopsOnCancel(t *testing.T) {
	m, _ := newTestMemory(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond, nil)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
