// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"conversation_backend/internal/feature/conversations/domain/entity"
	"conversation_backend/internal/feature/conversations/usecase"
)

// CachingConversationRepository decorates a ConversationRepository with Redis
// caching of the full conversation list. It implements the decorator pattern,
// transparently adding caching without modifying the underlying repository.
type CachingConversationRepository struct {
	inner     usecase.ConversationRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ConversationRepository = (*CachingConversationRepository)(nil)

// NewCachingConversationRepository decorates a ConversationRepository with
// Redis caching. If ttl is 0, it defaults to 5 minutes. If namespace is
// empty, it uses "conversations".
func NewCachingConversationRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ConversationRepository, namespace string) *CachingConversationRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "conversations"
	}
	return &CachingConversationRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts a conversation and invalidates the cached list.
func (c *CachingConversationRepository) Create(ctx context.Context, conv *entity.Conversation) error {
	if err := c.inner.Create(ctx, conv); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByName looks up a single conversation, always against the database.
// Only the list is cached; name lookups precede broker operations and must
// not serve stale rows.
func (c *CachingConversationRepository) FindByName(ctx context.Context, name string) (*entity.Conversation, error) {
	return c.inner.FindByName(ctx, name)
}

// List retrieves all conversations, checking the cache first then falling
// back to the database.
func (c *CachingConversationRepository) List(ctx context.Context) ([]entity.Conversation, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	key := c.listKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Conversation
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Delete removes a conversation and invalidates the cached list.
func (c *CachingConversationRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// listKey generates the cache key for the conversation list.
func (c *CachingConversationRepository) listKey() string {
	return c.namespace + ":all"
}

// invalidate drops the cached list, best effort.
func (c *CachingConversationRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.listKey()).Err()
}
