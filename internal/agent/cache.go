package agent

import "time"

// cacheEntry wraps a fetched payload with its capture time and TTL.
// Entries are replaced wholesale on each successful fetch, never merged.
type cacheEntry[T any] struct {
	value      T
	capturedAt time.Time
	ttl        time.Duration
}

func newCacheEntry[T any](value T, ttl time.Duration) *cacheEntry[T] {
	return &cacheEntry[T]{
		value:      value,
		capturedAt: time.Now(),
		ttl:        ttl,
	}
}

// valid reports whether the entry exists and has not expired. An entry is
// valid iff elapsed < ttl; elapsed == ttl counts as expired.
func (e *cacheEntry[T]) valid(now time.Time) bool {
	return e != nil && now.Sub(e.capturedAt) < e.ttl
}
