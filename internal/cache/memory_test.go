package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)}
}

func TestKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Key("jobs", "open"), Key("jobs", "open"))
	})
	t.Run("different inputs differ", func(t *testing.T) {
		assert.NotEqual(t, Key("jobs", "open"), Key("jobs", "closed"))
	})
	t.Run("has prefix", func(t *testing.T) {
		k := Key("jobs")
		assert.Equal(t, "nd:", k[:3])
		assert.Len(t, k, 3+24)
	})
}

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10, newClock().Now)

	_, err := m.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	value := []byte(`[{"ID":"job-1"}]`)
	require.NoError(t, m.Set(ctx, "jobs", value, time.Minute))

	value[0] = 'X'
	got, err := m.Get(ctx, "jobs")
	require.NoError(t, err)
	assert.Equal(t, `[{"ID":"job-1"}]`, string(got), "stored value must not alias the caller's slice")

	require.ErrorIs(t, m.Set(ctx, "", value, time.Minute), ErrInvalidKey)
}

func TestMemoryExpiration(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	m := NewMemory(10, clock.Now)

	require.NoError(t, m.Set(ctx, "jobs", []byte("v"), time.Minute))
	clock.Advance(59 * time.Second)
	_, err := m.Get(ctx, "jobs")
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = m.Get(ctx, "jobs")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestMemoryEviction(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	m := NewMemory(2, clock.Now)

	require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Minute))
	clock.Advance(time.Second)
	require.NoError(t, m.Set(ctx, "b", []byte("2"), time.Minute))
	clock.Advance(time.Second)
	require.NoError(t, m.Set(ctx, "c", []byte("3"), time.Minute))

	assert.Equal(t, 2, m.Len())
	_, err := m.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound, "oldest entry should be evicted")

	require.NoError(t, m.Set(ctx, "b", []byte("updated"), time.Minute))
	assert.Equal(t, 2, m.Len(), "overwriting an entry must not evict")
}

func TestMemoryDeleteClearClose(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0, nil)

	require.NoError(t, m.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), 0))

	require.NoError(t, m.Delete(ctx, "a"))
	_, err := m.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Clear(ctx))
	assert.Equal(t, 0, m.Len())

	require.NoError(t, m.Close())
	_, err = m.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, m.Set(ctx, "b", nil, 0), ErrClosed)
}

func TestMemoryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(16, nil)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := Key("jobs", string(rune('a'+i%8)))
			_ = m.Set(ctx, key, []byte{byte(i)}, time.Minute)
			_, _ = m.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, m.Len(), 16)
}
