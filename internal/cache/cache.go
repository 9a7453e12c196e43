// Package cache keeps rendered GET responses in Redis and keeps them from
// going stale after writes.
//
// Keys are namespaced by resource family and a per-family version counter.
// Invalidation is a single INCR on that counter: every previously cached
// variant of the family (any page size, order or filter) becomes
// unreachable at once, and the orphaned entries expire by TTL. This avoids
// enumerating and scanning the whole keyspace on every mutation.
//
// The cache is strictly best-effort: every failure is logged and swallowed,
// and the primary store remains the source of truth.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	keyPrefix     = "parishkit:cache"
	versionPrefix = "parishkit:cachever"
)

// Store is the narrow key-value surface the cache needs. The Redis client
// satisfies it through redisStore; tests substitute an in-memory fake.
type Store interface {
	// Get returns the value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
}

type redisStore struct {
	rdb *redis.Client
}

func (s redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s redisStore) Incr(ctx context.Context, key string) (int64, error) {
	return s.rdb.Incr(ctx, key).Result()
}

// Entry is one cached response: enough to replay it byte-for-byte,
// including the response headers that are part of the payload contract
// (listing totals).
type Entry struct {
	Status      int               `json:"status"`
	ContentType string            `json:"contentType"`
	Header      map[string]string `json:"header,omitempty"`
	Body        []byte            `json:"body"`
}

// Cache is the response cache. TTL bounds how long an entry orphaned by an
// invalidation race can survive.
type Cache struct {
	store Store
	ttl   time.Duration
	log   *zerolog.Logger
}

// New builds a Cache backed by Redis.
func New(rdb *redis.Client, ttl time.Duration, log *zerolog.Logger) *Cache {
	return NewWithStore(redisStore{rdb: rdb}, ttl, log)
}

// NewWithStore builds a Cache over any Store implementation.
func NewWithStore(store Store, ttl time.Duration, log *zerolog.Logger) *Cache {
	return &Cache{
		store: store,
		ttl:   ttl,
		log:   log,
	}
}

// Family derives the resource family from a request path: the first
// non-empty path segment. "/volunteers/42?x=1" -> "volunteers".
func Family(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(path, "/?"); i >= 0 {
		path = path[:i]
	}
	return path
}

func versionKey(family string) string {
	return versionPrefix + ":" + family
}

// version reads the family's current version counter. A family that has
// never been invalidated is at version 0.
func (c *Cache) version(ctx context.Context, family string) (int64, error) {
	val, ok, err := c.store.Get(ctx, versionKey(family))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	v, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing cache version for %s: %w", family, err)
	}
	return v, nil
}

func key(family string, version int64, method, uri string) string {
	return fmt.Sprintf("%s:%s:v%d:%s:%s", keyPrefix, family, version, method, uri)
}

// GetResponse looks up the cached response for a request. Any cache failure
// is reported as a miss so the request proceeds against the primary store.
func (c *Cache) GetResponse(ctx context.Context, family, method, uri string) (*Entry, bool) {
	version, err := c.version(ctx, family)
	if err != nil {
		c.log.Warn().Err(err).Str("family", family).Msg("cache version lookup failed")
		return nil, false
	}

	val, ok, err := c.store.Get(ctx, key(family, version, method, uri))
	if err != nil {
		c.log.Warn().Err(err).Str("family", family).Msg("cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		c.log.Warn().Err(err).Str("family", family).Msg("cache entry corrupt")
		return nil, false
	}
	return &entry, true
}

// SetResponse stores a response under the family's current version. Failures
// are logged and dropped; the response has already been served.
func (c *Cache) SetResponse(ctx context.Context, family, method, uri string, entry *Entry) {
	version, err := c.version(ctx, family)
	if err != nil {
		c.log.Warn().Err(err).Str("family", family).Msg("cache version lookup failed")
		return
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		c.log.Warn().Err(err).Str("family", family).Msg("cache entry marshal failed")
		return
	}

	if err := c.store.Set(ctx, key(family, version, method, uri), string(payload), c.ttl); err != nil {
		c.log.Warn().Err(err).Str("family", family).Msg("cache write failed")
	}
}

// Invalidate bumps the family's version counter, orphaning every cached
// response for that family in one operation. The error is returned for
// logging only; callers never fail a request over it.
func (c *Cache) Invalidate(ctx context.Context, family string) error {
	_, err := c.store.Incr(ctx, versionKey(family))
	return err
}
