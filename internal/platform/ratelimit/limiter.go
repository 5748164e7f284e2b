package ratelimit

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// KeyFunc extracts the client identifier a rule is scoped to.
type KeyFunc func(*gin.Context) string

// ClientIP scopes limits to the request's client IP.
func ClientIP(c *gin.Context) string {
	return c.ClientIP()
}

// ClientPath scopes limits to the client IP and the resource a request names,
// so every resource behind a parameterised route gets its own window.
// The path is rebuilt from the route template with numeric params in canonical
// form, so /posts/1 and /posts/001 share one window.
func ClientPath(c *gin.Context) string {
	return c.ClientIP() + ":" + resourcePath(c)
}

func resourcePath(c *gin.Context) string {
	route := c.FullPath()
	if route == "" {
		return c.Request.URL.Path
	}

	segments := strings.Split(route, "/")
	for i, seg := range segments {
		if len(seg) < 2 || (seg[0] != ':' && seg[0] != '*') {
			continue
		}
		v := c.Param(seg[1:])
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			v = strconv.FormatUint(n, 10)
		}
		segments[i] = v
	}
	return strings.Join(segments, "/")
}

// Rule allows Times requests per Window for each client.
type Rule struct {
	Name   string
	Times  int
	Window time.Duration
	Key    KeyFunc
}

// Limiter builds rate limiting middleware over a shared Store.
type Limiter struct {
	store  Store
	prefix string
}

// NewLimiter returns a Limiter whose keys are namespaced by prefix.
func NewLimiter(store Store, prefix string) *Limiter {
	return &Limiter{store: store, prefix: prefix}
}

// Key returns the storage key for rule and client.
func (l *Limiter) Key(rule, client string) string {
	if l.prefix == "" {
		return rule + ":" + client
	}
	return l.prefix + ":" + rule + ":" + client
}

// Limit returns a Gin middleware enforcing rule.
// Requests are rejected with 503 when the store cannot be reached.
func (l *Limiter) Limit(rule Rule) gin.HandlerFunc {
	keyFn := rule.Key
	if keyFn == nil {
		keyFn = ClientIP
	}
	limit := strconv.Itoa(rule.Times)

	return func(c *gin.Context) {
		client := keyFn(c)
		hit, err := l.store.Hit(c.Request.Context(), l.Key(rule.Name, client), rule.Window)
		if err != nil {
			slog.Error("rate limiter unavailable", "rule", rule.Name, "client", client, "error", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"detail": "Rate limiter unavailable"})
			return
		}

		if hit.Count > int64(rule.Times) {
			seconds := RetryAfterSeconds(hit.TTL)
			slog.Warn("rate limit exceeded", "rule", rule.Name, "client", client, "retry_after", seconds)
			c.Header("Retry-After", fmt.Sprintf("%d seconds", seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"detail": fmt.Sprintf("Too many requests. Try again in %d seconds", seconds),
			})
			return
		}

		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(int64(rule.Times)-hit.Count, 10))
		c.Next()
	}
}

// RetryAfterSeconds rounds the time left in a window up to whole seconds.
func RetryAfterSeconds(ttl time.Duration) int64 {
	ms := ttl.Milliseconds()
	if ms <= 0 {
		return 0
	}
	return (ms + 999) / 1000
}
