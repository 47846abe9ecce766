package app

import (
	"github.com/yungbote/flicker-bff/internal/cache"
	"github.com/yungbote/flicker-bff/internal/config"
	"github.com/yungbote/flicker-bff/internal/downstream"
	"github.com/yungbote/flicker-bff/internal/observability"
	"github.com/yungbote/flicker-bff/internal/platform/logger"
)

type Callers struct {
	Downstream *downstream.Client
	// Caller is what the pipeline engine calls: the downstream client, or
	// the response cache in front of it.
	Caller downstream.Caller
	Cache  *cache.Caller
	Close  func() error
}

func wireCallers(log *logger.Logger, cfg *config.Config, metrics *observability.Metrics) Callers {
	log.Info("Wiring downstream clients...")

	client := downstream.New(downstream.BackendsFromConfig(cfg.Backends),
		downstream.WithHTTPClient(downstream.NewHTTPClient(cfg.Transport)),
		downstream.WithLogger(log),
		downstream.WithMetrics(metrics),
	)
	out := Callers{Downstream: client, Caller: client}

	// Redis
	if cfg.Cache.Enabled {
		rdb := cache.NewRedisClient(cfg.Cache)
		out.Cache = cache.New(client, rdb,
			cache.WithTTL(cfg.Cache.TTL.Duration),
			cache.WithPrefix(cfg.Cache.Prefix),
			cache.WithLogger(log),
			cache.WithMetrics(metrics),
		)
		out.Caller = out.Cache
		out.Close = rdb.Close
		log.Info("Response cache enabled", "redis_addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL.Duration.String())
	}
	return out
}
