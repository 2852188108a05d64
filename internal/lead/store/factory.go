// internal/lead/store/factory.go
package store

import (
	"fmt"

	"lead-assistant/internal/common/config"
	"lead-assistant/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

// New builds the backend named by cfg.Backend. client is only used by the
// redis backend and may be nil otherwise.
func New(cfg config.StoreConfig, client *redis.Client, log logger.Logger) (Store, error) {
	switch cfg.Backend {
	case "", config.StoreBackendMemory:
		return NewMemoryStore(), nil
	case config.StoreBackendRedis:
		if client == nil {
			return nil, fmt.Errorf("redis store requires a redis client")
		}
		return NewRedisStore(client, cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
