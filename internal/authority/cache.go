// Package authority maintains the published authority objects: issued once,
// then lazily reissued when they reach half of their lifetime so consumers
// never observe an expired object.
package authority

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Issuer produces a freshly signed authority object stamped at now.
type Issuer func(now time.Time) ([]byte, error)

type issued struct {
	data     []byte
	issuedAt time.Time
}

// Cache serves one authority object, renewing it when it passes half of its
// lifetime. Concurrent renewals collapse into a single issuer call; if
// renewal fails the previous object keeps being served until it succeeds.
type Cache struct {
	issuer   Issuer
	lifetime time.Duration
	now      func() time.Time

	current atomic.Pointer[issued]
	group   singleflight.Group
}

// NewCache creates a cache around issuer. The now func is injectable for
// tests; pass nil for the wall clock.
func NewCache(issuer Issuer, lifetime time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{issuer: issuer, lifetime: lifetime, now: now}
}

func (c *Cache) fresh() *issued {
	cur := c.current.Load()
	if cur != nil && c.now().Sub(cur.issuedAt) < c.lifetime/2 {
		return cur
	}
	return nil
}

// Get returns the current authority object, renewing first if it has passed
// half of its lifetime.
func (c *Cache) Get() ([]byte, error) {
	if cur := c.fresh(); cur != nil {
		return cur.data, nil
	}
	v, err, _ := c.group.Do("renew", func() (any, error) {
		// Late arrivals piggyback on a renewal that already happened.
		if cur := c.fresh(); cur != nil {
			return cur, nil
		}
		now := c.now()
		data, err := c.issuer(now)
		if err != nil {
			// Stale beats unavailable, but only if something was ever issued.
			if cur := c.current.Load(); cur != nil {
				return cur, nil
			}
			return nil, err
		}
		next := &issued{data: data, issuedAt: now}
		c.current.Store(next)
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*issued).data, nil
}

// Run renews the object on a half-lifetime schedule until ctx is done, so
// the served object stays fresh even without traffic.
func (c *Cache) Run(ctx context.Context) {
	ticker := time.NewTicker(c.lifetime / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = c.Get()
		}
	}
}
