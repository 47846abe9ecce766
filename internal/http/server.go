package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/flicker-bff/internal/config"
)

// NewServer wraps the router in an http.Server carrying the configured
// timeouts. Writes are left unbounded; each backend call has its own
// deadline.
func NewServer(cfg config.HTTPConfig, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout.Duration,
		IdleTimeout:       cfg.IdleTimeout.Duration,
		WriteTimeout:      0,
	}
}
