package authority

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock for renewal tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func countingIssuer(calls *atomic.Int32) Issuer {
	return func(now time.Time) ([]byte, error) {
		n := calls.Add(1)
		return []byte(fmt.Sprintf("issued-%d-at-%s", n, now.Format(time.RFC3339))), nil
	}
}

func TestCache_ServesUntilHalfLifetime(t *testing.T) {
	clock := newFakeClock()
	var calls atomic.Int32
	cache := NewCache(countingIssuer(&calls), time.Hour, clock.Now)

	first, err := cache.Get()
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	// Just short of half the lifetime: still the same object.
	clock.Advance(30*time.Minute - time.Second)
	again, err := cache.Get()
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, int32(1), calls.Load())

	// Crossing the half-lifetime boundary triggers a reissue.
	clock.Advance(2 * time.Second)
	renewed, err := cache.Get()
	require.NoError(t, err)
	assert.NotEqual(t, first, renewed)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCache_ServesStaleOnRenewalFailure(t *testing.T) {
	clock := newFakeClock()
	var fail atomic.Bool
	var calls atomic.Int32
	issuer := func(now time.Time) ([]byte, error) {
		if fail.Load() {
			return nil, errors.New("hsm offline")
		}
		return countingIssuer(&calls)(now)
	}
	cache := NewCache(issuer, time.Hour, clock.Now)

	first, err := cache.Get()
	require.NoError(t, err)

	fail.Store(true)
	clock.Advance(45 * time.Minute)
	stale, err := cache.Get()
	require.NoError(t, err, "a failed renewal must not surface while a previous object exists")
	assert.Equal(t, first, stale)

	// Once the issuer recovers, the next read renews.
	fail.Store(false)
	fresh, err := cache.Get()
	require.NoError(t, err)
	assert.NotEqual(t, first, fresh)
}

func TestCache_FirstIssueFailurePropagates(t *testing.T) {
	clock := newFakeClock()
	cache := NewCache(func(time.Time) ([]byte, error) {
		return nil, errors.New("hsm offline")
	}, time.Hour, clock.Now)

	_, err := cache.Get()
	assert.Error(t, err)
}

func TestCache_ConcurrentRenewalsCollapse(t *testing.T) {
	clock := newFakeClock()
	var calls atomic.Int32
	slowIssuer := func(now time.Time) ([]byte, error) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return []byte("object"), nil
	}
	cache := NewCache(slowIssuer, time.Hour, clock.Now)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := cache.Get()
			assert.NoError(t, err)
			assert.Equal(t, []byte("object"), data)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load(), "concurrent first reads must share one issuer call")
}

func TestRegistry_PerPayeeCaches(t *testing.T) {
	clock := newFakeClock()
	registry := NewRegistry([]string{"86344", "77003"}, time.Hour, clock.Now,
		func(id string) Issuer {
			return func(now time.Time) ([]byte, error) {
				return []byte("authority-" + id), nil
			}
		})

	data, ok, err := registry.Get("86344")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("authority-86344"), data)

	_, ok, err = registry.Get("00000")
	require.NoError(t, err)
	assert.False(t, ok)
}
