package app

import (
	"strings"

	"github.com/yungbote/flicker-bff/internal/config"
	httpMW "github.com/yungbote/flicker-bff/internal/http/middleware"
	"github.com/yungbote/flicker-bff/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

// wireMiddleware leaves Auth nil when no signing secret is configured, in
// which case every route is public.
func wireMiddleware(log *logger.Logger, cfg *config.Config) Middleware {
	log.Info("Wiring middleware...")
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		log.Warn("auth disabled: no jwt secret configured")
		return Middleware{}
	}
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, cfg.Auth.JWTSecret, cfg.Auth.UserClaim),
	}
}
