// Package broker provides the pass-through bridge to the pub/sub broker.
package broker

import (
	"os"
	"time"
)

// Config holds broker configuration, fixed at process startup.
// Connection settings (host, port, credentials) are the Redis client's;
// this only configures the bridge's own behavior.
type Config struct {
	// RefreshInterval paces outgoing publishes: at most one publish per
	// interval per process.
	RefreshInterval time.Duration
}

// LoadConfig loads broker configuration from environment variables.
// BROKER_REFRESH_INTERVAL accepts a Go duration string ("1s", "500ms").
func LoadConfig() Config {
	cfg := Config{RefreshInterval: time.Second}
	if raw := os.Getenv("BROKER_REFRESH_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.RefreshInterval = d
		}
	}
	return cfg
}
