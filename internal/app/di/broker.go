// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"

	"conversation_backend/internal/platform/broker"
	"conversation_backend/internal/shared/ratelimiter"
)

// NewBroker creates a fully configured Redis broker bridge whose publishes
// are paced by the configured refresh interval. With a nil client the bridge
// is still constructed and reports itself unavailable per call.
func NewBroker(rdb *redis.Client) *broker.RedisBroker {
	cfg := broker.LoadConfig()
	limiter := ratelimiter.NewRateLimiter(1, cfg.RefreshInterval)
	return broker.NewRedisBroker(rdb, limiter)
}
