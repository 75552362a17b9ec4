package cache

import (
	"fmt"

	"github.com/partnerbi/bibot/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewStore creates a cache store for the configured backend.
// The "memory" backend is only meant for development and tests; production
// deployments share one Redis between bot instances.
func NewStore(cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Cache.Backend {
	case "redis":
		store, err := NewRedisStore(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis cache store: %w", err)
		}
		logger.Info("Using Redis cache store", zap.String("addr", cfg.Redis.Addr()))
		return store, nil
	case "memory":
		logger.Warn("Using in-memory cache store; state is not shared across instances")
		return NewInMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
