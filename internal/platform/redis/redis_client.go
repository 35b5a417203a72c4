// Package redis builds the shared go-redis connection used by the
// message broker, the session store and the conversation list cache.
package redis

import (
	"context"
	"log/slog"
	"net"
	"os"

	"github.com/redis/go-redis/v9"
)

// Connection defaults for local development.
const (
	defaultHost = "localhost"
	defaultPort = "6379"
)

// Address resolves the Redis address from REDIS_HOST and REDIS_PORT,
// falling back to localhost:6379 when either is unset.
func Address() string {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = defaultHost
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = defaultPort
	}
	return net.JoinHostPort(host, port)
}

// NewRedisClient opens a client against Address, authenticating with
// REDIS_PASSWORD when set, and verifies the connection with a ping.
func NewRedisClient() (*redis.Client, error) {
	addr := Address()

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		slog.Error("redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("redis connected", "address", addr)
	return rdb, nil
}
