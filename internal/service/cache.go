package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/menucraft/backend/internal/types"
)

const menuCacheTTL = 10 * time.Minute

// MenuCache is a read-through cache for full menu documents, keyed by owner
// and name. A nil *MenuCache is valid and disables caching, so callers never
// have to branch on whether Redis is configured.
type MenuCache struct {
	client *redis.Client
}

// NewMenuCache creates a cache backed by the given Redis client.
func NewMenuCache(client *redis.Client) *MenuCache {
	return &MenuCache{client: client}
}

func menuCacheKey(userID uuid.UUID, name string) string {
	return fmt.Sprintf("menu:%s:%s", userID, name)
}

// Get returns a cached document, or ok=false on a miss or any cache failure.
// Cache errors are logged and swallowed; the database stays authoritative.
func (c *MenuCache) Get(ctx context.Context, userID uuid.UUID, name string) (*types.MenuDocument, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, menuCacheKey(userID, name)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.WithError(err).Warn("Menu cache read failed")
		}
		return nil, false
	}

	var doc types.MenuDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.WithError(err).Warn("Menu cache entry corrupt, dropping")
		c.client.Del(ctx, menuCacheKey(userID, name))
		return nil, false
	}
	return &doc, true
}

// Set stores a document under its owner and name.
func (c *MenuCache) Set(ctx context.Context, doc *types.MenuDocument) {
	if c == nil || c.client == nil || doc == nil {
		return
	}

	data, err := json.Marshal(doc)
	if err != nil {
		log.WithError(err).Warn("Menu cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, menuCacheKey(doc.UserID, doc.Name), data, menuCacheTTL).Err(); err != nil {
		log.WithError(err).Warn("Menu cache write failed")
	}
}

// Invalidate drops the cached document after a save, delete or duplicate.
func (c *MenuCache) Invalidate(ctx context.Context, userID uuid.UUID, name string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, menuCacheKey(userID, name)).Err(); err != nil {
		log.WithError(err).Warn("Menu cache invalidation failed")
	}
}
