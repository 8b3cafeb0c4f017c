// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go provides a Redis-backed cache for public JSON responses.
// The public site consumes these endpoints with time-based revalidation,
// so a short TTL is enough to absorb most of the read traffic. Admin
// writes invalidate the affected keys immediately.
package cache

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// responseKeyPrefix namespaces cached responses in Redis.
	responseKeyPrefix = "resp:"

	// DefaultResponseTTL is how long a public response stays cached.
	DefaultResponseTTL = 60 * time.Second
)

// ResponseCache stores rendered JSON responses in Redis. A nil
// *ResponseCache is valid and disables caching entirely, so callers never
// need to branch on whether Redis is configured.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given Redis client.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Get retrieves a cached response body for a key. Returns false on miss.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if rc == nil {
		return nil, false
	}
	val, err := rc.client.Get(ctx, responseKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "key", key)
	return val, true
}

// Set stores a response body for a key with the configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, key string, body []byte) {
	if rc == nil {
		return
	}
	if err := rc.client.Set(ctx, responseKeyPrefix+key, body, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// Invalidate removes all cached responses whose key starts with prefix,
// scanning rather than blocking Redis with a KEYS call.
func (rc *ResponseCache) Invalidate(ctx context.Context, prefix string) {
	if rc == nil {
		return
	}
	pattern := responseKeyPrefix + prefix + "*"
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("response cache invalidated", "prefix", prefix, "deleted", deleted)
	}
}

// InvalidatePosts clears every cached post response. Category responses
// embed nothing from posts, so they survive.
func (rc *ResponseCache) InvalidatePosts(ctx context.Context) {
	rc.Invalidate(ctx, "/api/posts")
}

// InvalidateCategories clears cached category responses and the post feed,
// which nests category data.
func (rc *ResponseCache) InvalidateCategories(ctx context.Context) {
	rc.Invalidate(ctx, "/api/categories")
	rc.Invalidate(ctx, "/api/posts")
}

// cacheRecorder buffers a handler's response so it can be stored after a
// successful write.
type cacheRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cr *cacheRecorder) WriteHeader(code int) {
	cr.status = code
	cr.ResponseWriter.WriteHeader(code)
}

func (cr *cacheRecorder) Write(b []byte) (int, error) {
	cr.buf.Write(b)
	return cr.ResponseWriter.Write(b)
}

// Middleware caches successful GET responses keyed by request path. Only
// attach it to routes whose output is deterministic per path — the
// favorites feed is randomized per request and must stay uncached.
func (rc *ResponseCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rc == nil || r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := r.URL.Path
		if body, ok := rc.Get(r.Context(), key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(body)
			return
		}

		rec := &cacheRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status == http.StatusOK {
			rc.Set(r.Context(), key, rec.buf.Bytes())
		}
	})
}
