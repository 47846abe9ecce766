// Package cache puts a Redis-backed response cache in front of a
// downstream.Caller. Only SUCCESS envelopes of cacheable GETs are stored;
// failures always go to the backend.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/flicker-bff/internal/config"
	"github.com/yungbote/flicker-bff/internal/downstream"
	"github.com/yungbote/flicker-bff/internal/envelope"
	"github.com/yungbote/flicker-bff/internal/observability"
	"github.com/yungbote/flicker-bff/internal/platform/logger"
)

type Caller struct {
	next    downstream.Caller
	client  redis.UniversalClient
	prefix  string
	ttl     time.Duration
	log     *logger.Logger
	metrics *observability.Metrics
}

type Option func(*Caller)

// WithTTL sets the expiration for cached envelopes.
func WithTTL(ttl time.Duration) Option {
	return func(c *Caller) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *Caller) { c.prefix = prefix }
}

func WithLogger(log *logger.Logger) Option {
	return func(c *Caller) {
		if log != nil {
			c.log = log
		}
	}
}

func WithMetrics(m *observability.Metrics) Option {
	return func(c *Caller) { c.metrics = m }
}

// NewRedisClient opens a client for the configured cache server.
func NewRedisClient(cfg config.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func New(next downstream.Caller, client redis.UniversalClient, opts ...Option) *Caller {
	c := &Caller{
		next:   next,
		client: client,
		prefix: "bff:",
		ttl:    30 * time.Second,
		log:    logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Caller) key(req downstream.Request) string {
	return c.prefix + "resp:" + string(req.Service) + ":" + req.Path
}

func cacheable(req downstream.Request) bool {
	if !req.Cacheable || req.Body != nil {
		return false
	}
	m := strings.ToUpper(strings.TrimSpace(req.Method))
	return m == "" || m == http.MethodGet
}

func (c *Caller) Call(ctx context.Context, req downstream.Request) (*envelope.Envelope, error) {
	if !cacheable(req) {
		return c.next.Call(ctx, req)
	}
	key := c.key(req)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var env envelope.Envelope
		if jsonErr := json.Unmarshal(raw, &env); jsonErr == nil && env.Succeeded() {
			c.metrics.ObserveCache(string(req.Service), true)
			return &env, nil
		}
		c.log.Warn("discarding unreadable cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		c.log.Warn("cache read failed (continuing)", "key", key, "error", err)
	}
	c.metrics.ObserveCache(string(req.Service), false)

	env, err := c.next.Call(ctx, req)
	if err != nil || env == nil || !env.Succeeded() {
		return env, err
	}
	if b, mErr := json.Marshal(env); mErr == nil {
		if setErr := c.client.Set(ctx, key, b, c.ttl).Err(); setErr != nil {
			c.log.Warn("cache write failed (continuing)", "key", key, "error", setErr)
		}
	}
	return env, nil
}

func (c *Caller) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
