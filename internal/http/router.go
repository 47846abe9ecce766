package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/flicker-bff/internal/envelope"
	httpH "github.com/yungbote/flicker-bff/internal/http/handlers"
	httpMW "github.com/yungbote/flicker-bff/internal/http/middleware"
	"github.com/yungbote/flicker-bff/internal/http/response"
	"github.com/yungbote/flicker-bff/internal/observability"
	"github.com/yungbote/flicker-bff/internal/platform/logger"
)

// BasePath prefixes every movie route.
const BasePath = "/api/bff/movie"

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	MetricsPath    string
	ServiceName    string
	AllowOrigins   []string
	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64

	// AuthMiddleware guards admin and per-user routes when set.
	AuthMiddleware *httpMW.AuthMiddleware

	MovieHandler  *httpH.MovieHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.Recover(cfg.Log))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowOrigins))
	r.Use(httpMW.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	r.Use(httpMW.MaxBodyBytes(cfg.MaxBodyBytes))

	r.NoRoute(func(c *gin.Context) {
		response.RespondStatus(c, envelope.NotFound, "")
	})

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	// Metrics
	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(cfg.Metrics.Handler()))
	}

	h := cfg.MovieHandler
	if h == nil {
		return r
	}

	api := r.Group(BasePath)
	{
		// Catalog reads (public)
		api.GET("/list/all/:page/:size", h.MovieList)
		api.GET("/list/genre/:genre/:page/:size", h.MovieListByGenre)
		api.GET("/list/actor/:actorName/:page/:size", h.MovieListByActor)
		api.GET("/list/country/:country/:page/:size", h.MovieListByCountry)
		api.GET("/list/year/:year/:page/:size", h.MovieListByYear)
		api.GET("/list/top10", h.TopMovies)
		api.GET("/list/topRating", h.TopRatingMovies)
		api.GET("/wordCloud/:movieSeq", h.WordCloud)
	}

	protected := api.Group("")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Admin
		protected.POST("/admin/create", h.CreateMovie)
		protected.PUT("/admin/update/detail", h.UpdateMovie)
		protected.PUT("/admin/delete/:movieSeq", h.DeleteMovie)
		protected.POST("/admin/add/actor", h.AddActor)
		protected.PUT("/admin/update/actor", h.UpdateActor)
		protected.DELETE("/admin/delete/actor/:actorSeq/:movieSeq", h.DeleteActor)

		// Per user
		protected.GET("/list/search/:keyword/:userSeq/:page/:size", h.SearchMovies)
		protected.GET("/detail/:movieSeq/:userSeq", h.MovieDetail)
		protected.GET("/recommendation/action/:userSeq", h.ActionRecommendations)
		protected.GET("/recommendation/review/:userSeq", h.ReviewRecommendations)
		protected.GET("/recommendation/actor/:userSeq", h.ActorRecommendations)
	}

	return r
}
