package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/flicker-bff/internal/config"
	httpapi "github.com/yungbote/flicker-bff/internal/http"
	"github.com/yungbote/flicker-bff/internal/observability"
	"github.com/yungbote/flicker-bff/internal/platform/logger"
)

type App struct {
	Log     *logger.Logger
	Config  *config.Config
	Router  *gin.Engine
	Metrics *observability.Metrics

	server   *http.Server
	shutdown []func(context.Context) error
}

// New loads configuration from the environment and wires the service.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(ctx, cfg)
}

func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Environment: cfg.Env,
	})

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
	}

	callers := wireCallers(log, cfg, metrics)

	services := wireServices(log, callers, metrics)
	handlers := wireHandlers(log, services, callers)
	middleware := wireMiddleware(log, cfg)
	router := wireRouter(log, cfg, metrics, handlers, middleware)

	a := &App{
		Log:      log,
		Config:   cfg,
		Router:   router,
		Metrics:  metrics,
		server:   httpapi.NewServer(cfg.HTTP, router),
		shutdown: []func(context.Context) error{otelShutdown},
	}
	if callers.Close != nil {
		a.shutdown = append(a.shutdown, func(context.Context) error { return callers.Close() })
	}
	return a, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests within
// the configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("BFF listening", "addr", a.server.Addr)
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		timeout := a.Config.HTTP.ShutdownTimeout.Duration
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		a.Log.Info("Shutting down BFF")
		_ = a.server.Shutdown(shutdownCtx)
		a.Close(shutdownCtx)
		return nil
	case err := <-errCh:
		a.Close(context.Background())
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	for _, fn := range a.shutdown {
		if err := fn(ctx); err != nil {
			a.Log.Warn("shutdown hook failed", "error", err)
		}
	}
	a.shutdown = nil
	a.Log.Sync()
}
