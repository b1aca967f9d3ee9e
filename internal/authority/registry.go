package authority

import (
	"time"
)

// Registry holds one renewal cache per registered payee, created up front
// from the payee database so lookups never allocate.
type Registry struct {
	caches map[string]*Cache
}

// NewRegistry builds a cache per payee ID. issuerFor returns the issuer
// closure for one payee's authority object.
func NewRegistry(ids []string, lifetime time.Duration, now func() time.Time, issuerFor func(id string) Issuer) *Registry {
	caches := make(map[string]*Cache, len(ids))
	for _, id := range ids {
		caches[id] = NewCache(issuerFor(id), lifetime, now)
	}
	return &Registry{caches: caches}
}

// Get returns the current authority object for a payee. The second return is
// false for unregistered IDs.
func (r *Registry) Get(id string) ([]byte, bool, error) {
	cache, ok := r.caches[id]
	if !ok {
		return nil, false, nil
	}
	data, err := cache.Get()
	return data, true, err
}
