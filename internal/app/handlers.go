package app

import (
	httpH "github.com/yungbote/flicker-bff/internal/http/handlers"
	"github.com/yungbote/flicker-bff/internal/platform/logger"
)

type Handlers struct {
	Movie  *httpH.MovieHandler
	Health *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, services Services, callers Callers) Handlers {
	log.Info("Wiring handlers...")
	deps := map[string]httpH.Pinger{}
	if callers.Cache != nil {
		deps["redis"] = callers.Cache
	}
	return Handlers{
		Movie:  httpH.NewMovieHandler(log, services.Movies),
		Health: httpH.NewHealthHandler(deps),
	}
}
