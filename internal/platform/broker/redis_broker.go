package broker

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"conversation_backend/internal/feature/conversations/usecase"
	"conversation_backend/internal/shared/ratelimiter"
)

// ErrUnavailable is returned when no broker connection is configured.
var ErrUnavailable = errors.New("broker unavailable")

// RedisBroker implements usecase.Broker on Redis pub/sub channels.
// Delivery is fire-and-forget: whatever Redis pub/sub guarantees is what
// callers get. The broker holds one subscription per topic for the lifetime
// of the process; concurrent use is safe.
type RedisBroker struct {
	client  *redis.Client
	limiter ratelimiter.RateLimiterInterface

	mu   sync.Mutex
	subs map[string]*redis.PubSub
}

var _ usecase.Broker = (*RedisBroker)(nil)

// NewRedisBroker creates a broker bridge over the given Redis client.
// The limiter paces publishes; pass nil to publish unpaced.
func NewRedisBroker(client *redis.Client, limiter ratelimiter.RateLimiterInterface) *RedisBroker {
	return &RedisBroker{
		client:  client,
		limiter: limiter,
		subs:    make(map[string]*redis.PubSub),
	}
}

// Subscribe starts a subscription on the given topic. Subscribing to a topic
// the broker already listens on is a no-op.
func (b *RedisBroker) Subscribe(ctx context.Context, topic string) error {
	if b.client == nil {
		return ErrUnavailable
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[topic]; ok {
		return nil
	}

	ps := b.client.Subscribe(ctx, topic)
	// Wait for the subscription confirmation before recording it.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return err
	}
	b.subs[topic] = ps

	go drain(topic, ps)
	return nil
}

// Publish delivers one message to the given topic, best effort.
func (b *RedisBroker) Publish(ctx context.Context, topic, payload string) error {
	if b.client == nil {
		return ErrUnavailable
	}
	if b.limiter != nil {
		b.limiter.WaitIfNeeded()
	}
	return b.client.Publish(ctx, topic, payload).Err()
}

// Close tears down all subscriptions.
func (b *RedisBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var errs []error
	for topic, ps := range b.subs {
		if err := ps.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(b.subs, topic)
	}
	return errors.Join(errs...)
}

// drain consumes delivered messages until the subscription closes.
// The viewer-facing transport for these messages is out of scope; received
// payloads are only logged.
func drain(topic string, ps *redis.PubSub) {
	for msg := range ps.Channel() {
		slog.Debug("message received", "topic", topic, "payload", msg.Payload)
	}
}
