package app

import (
	"github.com/yungbote/flicker-bff/internal/movies"
	"github.com/yungbote/flicker-bff/internal/observability"
	"github.com/yungbote/flicker-bff/internal/pipeline"
	"github.com/yungbote/flicker-bff/internal/platform/logger"
)

type Services struct {
	Engine *pipeline.Engine
	Movies *movies.Service
}

func wireServices(log *logger.Logger, callers Callers, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")
	engine := pipeline.NewEngine(callers.Caller, log, pipeline.WithMetrics(metrics))
	return Services{
		Engine: engine,
		Movies: movies.NewService(engine),
	}
}
