// Package cache keeps computed corpus statistics warm so the dashboard
// does not re-read and re-aggregate the stats JSON files on every request.
package cache

import "time"

// Cache is a TTL key/value store for computed dashboard state.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
	Clear()
}

// Key builds the cache key for one corpus' stats directory.
func Key(statsDir string) string {
	return "elanstats:v1:" + statsDir
}
