// Package movies holds the BFF's operations: multi-backend aggregations
// built as pipeline plans, and catalog pass-throughs.
package movies

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/yungbote/flicker-bff/internal/downstream"
	"github.com/yungbote/flicker-bff/internal/envelope"
	"github.com/yungbote/flicker-bff/internal/pipeline"
)

type Service struct {
	engine *pipeline.Engine
}

func NewService(engine *pipeline.Engine) *Service {
	return &Service{engine: engine}
}

func (s *Service) run(ctx context.Context, plan pipeline.Plan) envelope.Envelope {
	return pipeline.Translate(s.engine.Run(ctx, plan))
}

func (s *Service) MovieDetail(ctx context.Context, movieSeq, userSeq int64) envelope.Envelope {
	return s.run(ctx, MovieDetailPlan(movieSeq, userSeq))
}

func (s *Service) ActionRecommendations(ctx context.Context, userSeq int64) envelope.Envelope {
	return s.run(ctx, ActionRecommendationsPlan(userSeq))
}

func (s *Service) ReviewRecommendations(ctx context.Context, userSeq int64) envelope.Envelope {
	return s.run(ctx, ReviewRecommendationsPlan(userSeq))
}

func (s *Service) ActorRecommendations(ctx context.Context, userSeq int64) envelope.Envelope {
	return s.run(ctx, ActorRecommendationsPlan(userSeq))
}

// Admin writes.

func (s *Service) CreateMovie(ctx context.Context, body json.RawMessage) envelope.Envelope {
	return s.run(ctx, passthrough("CreateMovie", http.MethodPost, downstream.MovieCreatePath(), body, false))
}

func (s *Service) UpdateMovie(ctx context.Context, body json.RawMessage) envelope.Envelope {
	return s.run(ctx, passthrough("UpdateMovie", http.MethodPut, downstream.MovieUpdatePath(), body, false))
}

// DeleteMovie is a soft delete on the catalog, hence PUT.
func (s *Service) DeleteMovie(ctx context.Context, movieSeq int64) envelope.Envelope {
	return s.run(ctx, passthrough("DeleteMovie", http.MethodPut, downstream.MovieDeletePath(movieSeq), nil, false))
}

func (s *Service) AddActor(ctx context.Context, body json.RawMessage) envelope.Envelope {
	return s.run(ctx, passthrough("AddActor", http.MethodPost, downstream.ActorAddPath(), body, false))
}

func (s *Service) UpdateActor(ctx context.Context, body json.RawMessage) envelope.Envelope {
	return s.run(ctx, passthrough("UpdateActor", http.MethodPut, downstream.ActorUpdatePath(), body, false))
}

func (s *Service) DeleteActor(ctx context.Context, actorSeq, movieSeq int64) envelope.Envelope {
	return s.run(ctx, passthrough("DeleteActor", http.MethodDelete, downstream.ActorDeletePath(actorSeq, movieSeq), nil, false))
}

// Catalog reads. Listings are shared across users and may be cached.

func (s *Service) MovieList(ctx context.Context, page, size int) envelope.Envelope {
	return s.run(ctx, passthrough("MovieList", http.MethodGet, downstream.MovieListPath(page, size), nil, true))
}

func (s *Service) MovieListByGenre(ctx context.Context, genre string, page, size int) envelope.Envelope {
	return s.run(ctx, passthrough("MovieListByGenre", http.MethodGet, downstream.MovieListByGenrePath(genre, page, size), nil, true))
}

func (s *Service) MovieListByActor(ctx context.Context, actorName string, page, size int) envelope.Envelope {
	return s.run(ctx, passthrough("MovieListByActor", http.MethodGet, downstream.MovieListByActorPath(actorName, page, size), nil, true))
}

func (s *Service) MovieListByCountry(ctx context.Context, country string, page, size int) envelope.Envelope {
	return s.run(ctx, passthrough("MovieListByCountry", http.MethodGet, downstream.MovieListByCountryPath(country, page, size), nil, true))
}

func (s *Service) MovieListByYear(ctx context.Context, year, page, size int) envelope.Envelope {
	return s.run(ctx, passthrough("MovieListByYear", http.MethodGet, downstream.MovieListByYearPath(year, page, size), nil, true))
}

// SearchMovies is per user, so it bypasses the cache.
func (s *Service) SearchMovies(ctx context.Context, keyword string, userSeq int64, page, size int) envelope.Envelope {
	return s.run(ctx, passthrough("SearchMovies", http.MethodGet, downstream.MovieSearchPath(keyword, userSeq, page, size), nil, false))
}

func (s *Service) TopMovies(ctx context.Context) envelope.Envelope {
	return s.run(ctx, passthrough("TopMovies", http.MethodGet, downstream.TopMoviesPath(), nil, true))
}

func (s *Service) TopRatingMovies(ctx context.Context) envelope.Envelope {
	return s.run(ctx, passthrough("TopRatingMovies", http.MethodGet, downstream.TopRatingMoviesPath(), nil, true))
}

func (s *Service) WordCloud(ctx context.Context, movieSeq int64) envelope.Envelope {
	return s.run(ctx, passthrough("WordCloud", http.MethodGet, downstream.WordCloudPath(movieSeq), nil, true))
}
