// Package holiday resolves bank and school holidays for a country and
// date, backed by the Nager.Date and OpenHolidays public APIs with a
// pluggable year-level cache.
package holiday

import "errors"

// Store caches raw provider responses keyed by country and year so a
// year of holidays is fetched at most once per process (or once ever,
// with the SQLite store). Implementations must be safe for concurrent
// use.
type Store interface {
	// Get retrieves a cached entry.
	// Returns ErrNotCached if the key has never been stored.
	Get(key string) ([]byte, error)

	// Put stores an entry, overwriting any previous value for key.
	Put(key string, data []byte) error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for cache operations.
var (
	// ErrNotCached indicates the key has no cached entry.
	ErrNotCached = errors.New("holiday data not cached")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("holiday store closed")
)
