package interfaces

import "github.com/goliatone/go-repository-cache/cache"

// CacheService and KeySerializer re-export the repository cache contracts
// so hosts can wire a cache without importing the cache module directly.
type (
	CacheService  = cache.CacheService
	KeySerializer = cache.KeySerializer
)
