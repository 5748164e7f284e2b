// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/feature/posts/usecase"
	"blog_backend/internal/shared/pagination"
)

const scanCount = 200

// CachingPostRepository decorates a PostRepository with Redis read caching.
// Reads go through the cache; every write invalidates the entries it can affect.
type CachingPostRepository struct {
	inner     usecase.PostRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.PostRepository = (*CachingPostRepository)(nil)

// NewCachingPostRepository decorates a PostRepository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "posts".
// A nil rdb turns the decorator into a pass-through.
func NewCachingPostRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PostRepository, namespace string) *CachingPostRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "posts"
	}
	return &CachingPostRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create stores the post and drops every cached listing.
func (c *CachingPostRepository) Create(ctx context.Context, post *entity.Post) error {
	if err := c.inner.Create(ctx, post); err != nil {
		return err
	}
	c.invalidateLists(ctx)
	return nil
}

// FindByID checks the cache first, then falls back to the inner repository.
// Not-found results are not cached.
func (c *CachingPostRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.idKey(id)
	var cached entity.Post
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	post, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, post)
	return post, nil
}

// List checks the cache first, then falls back to the inner repository.
func (c *CachingPostRepository) List(ctx context.Context, filter usecase.Filter, page pagination.Page) ([]*entity.Post, error) {
	if c.rdb == nil {
		return c.inner.List(ctx, filter, page)
	}

	key := c.listKey(filter, page)
	var cached []*entity.Post
	if c.load(ctx, key, &cached) {
		return cached, nil
	}

	posts, err := c.inner.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, posts)
	return posts, nil
}

// Update updates the post and drops its cached entry and every listing.
func (c *CachingPostRepository) Update(ctx context.Context, id uint, title, body string) error {
	if err := c.inner.Update(ctx, id, title, body); err != nil {
		return err
	}
	c.invalidatePost(ctx, id)
	return nil
}

// Delete removes the post and drops its cached entry and every listing.
func (c *CachingPostRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidatePost(ctx, id)
	return nil
}

// load reads key into dst. A corrupted entry is deleted and reported as a miss.
func (c *CachingPostRepository) load(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// store writes v under key. Failures only cost a future miss.
func (c *CachingPostRepository) store(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		slog.Warn("post cache write failed", "key", key, "error", err)
	}
}

func (c *CachingPostRepository) invalidatePost(ctx context.Context, id uint) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.idKey(id)).Err(); err != nil {
		slog.Warn("post cache invalidation failed", "post_id", id, "error", err)
	}
	c.invalidateLists(ctx)
}

func (c *CachingPostRepository) invalidateLists(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.deleteByPattern(ctx, c.listPrefix()+"*"); err != nil {
		slog.Warn("post list cache invalidation failed", "error", err)
	}
}

func (c *CachingPostRepository) idKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

func (c *CachingPostRepository) listPrefix() string {
	return c.namespace + ":list:"
}

// listKey escapes the free-text filters so that distinct filters never share a key.
func (c *CachingPostRepository) listKey(filter usecase.Filter, page pagination.Page) string {
	return fmt.Sprintf("%s%d:%d:%s:%s",
		c.listPrefix(),
		page.Limit,
		page.Number,
		url.QueryEscape(filter.Title),
		url.QueryEscape(filter.Body),
	)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingPostRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
