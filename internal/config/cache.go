package config

import (
	"time"
)

// CacheConfig controls the Redis response cache applied to public
// seat-map reads.  Display views tolerate slightly stale data, so a
// short TTL trades freshness for load on the primary database.  When
// Enabled is false or no Redis client is available, caching is a
// no-op.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads the cache settings from the environment with
// defaults suitable for the seat-map endpoint.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 5*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
