package cache

import (
	"strings"

	"promptlane.ai/prompt-gateway/config/environment_variables"
)

// NewCacheService creates a shared-tier cache service based on configuration
func NewCacheService() CacheService {
	cacheType := strings.ToLower(environment_variables.EnvironmentVariables.CACHE_TYPE)

	// Default to Redis if no cache type is specified
	if cacheType == "" {
		cacheType = "redis"
	}

	switch cacheType {
	case "redis":
		return NewRedisCacheService()
	case "valkey":
		return NewValkeyCacheService()
	case "none":
		return &NoOpCacheService{}
	default:
		// Fallback to Redis for unknown types
		return NewRedisCacheService()
	}
}
