package infrastructure

import (
	"github.com/google/wire"

	"promptlane.ai/prompt-gateway/app/infrastructure/cache"
	"promptlane.ai/prompt-gateway/app/infrastructure/database"
)

var InfrastructureProvider = wire.NewSet(
	database.NewDB,
	cache.NewCacheService,
	cache.NewMemoryCache,
	cache.NewTieredCache,
)
