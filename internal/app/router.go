package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/flicker-bff/internal/config"
	httpapi "github.com/yungbote/flicker-bff/internal/http"
	"github.com/yungbote/flicker-bff/internal/observability"
	"github.com/yungbote/flicker-bff/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg *config.Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	serviceName := ""
	if cfg.Tracing.Enabled {
		serviceName = cfg.Tracing.ServiceName
	}
	return httpapi.NewRouter(httpapi.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		MetricsPath:    cfg.Metrics.Path,
		ServiceName:    serviceName,
		AllowOrigins:   cfg.CORS.AllowOrigins,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		MaxBodyBytes:   cfg.HTTP.MaxRequestBytes,
		AuthMiddleware: middleware.Auth,
		MovieHandler:   handlers.Movie,
		HealthHandler:  handlers.Health,
	})
}
