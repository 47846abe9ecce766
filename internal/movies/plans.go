package movies

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/yungbote/flicker-bff/internal/downstream"
	"github.com/yungbote/flicker-bff/internal/envelope"
	"github.com/yungbote/flicker-bff/internal/pipeline"
)

// Stage names. Merge funcs read results by these keys.
const (
	stageMovieDetail       = "movie-detail"
	stageUserMovieDetail   = "user-movie-detail"
	stageContentRecommend  = "content-recommend"
	stageCollaboRecommend  = "collabo-recommend"
	stageSimilarMovies     = "similar-movies"
	stageUserActions       = "user-actions"
	stageUnlikedMovies     = "unliked-movies"
	stageRecommendedActor  = "recommended-actor"
	stageRecommendedMovies = "recommended-movies"
)

const (
	msgNoRecentActions = "no recent user actions"
	msgNoRecentReviews = "no recent reviews"
)

func get(service downstream.Service, path string, cacheable bool) func(pipeline.Results) (downstream.Request, error) {
	return func(pipeline.Results) (downstream.Request, error) {
		return downstream.Request{Service: service, Method: http.MethodGet, Path: path, Cacheable: cacheable}, nil
	}
}

func post(service downstream.Service, path string, body func(pipeline.Results) any) func(pipeline.Results) (downstream.Request, error) {
	return func(prior pipeline.Results) (downstream.Request, error) {
		return downstream.Request{Service: service, Method: http.MethodPost, Path: path, Body: body(prior)}, nil
	}
}

func unlikedMoviesStage(userSeq int64) pipeline.Stage {
	return pipeline.NewStage[[]int64](stageUnlikedMovies, get(downstream.User, downstream.UnlikedMoviesPath(userSeq), false))
}

// recommendationListStage resolves recommended titles against the catalog,
// dropping movies the user marked as unliked.
func recommendationListStage(name, recommendStage string, unliked func(pipeline.Results) []int64) pipeline.Stage {
	return pipeline.NewStage[[]MovieSummary](name, post(downstream.Catalog, downstream.RecommendationListPath(), func(r pipeline.Results) any {
		return MovieListRequest{
			MovieSeqListRequests: nonNil(pipeline.Value[[]MovieSeqListRequest](r, recommendStage)),
			UnlikeMovieSeqs:      nonNil(unliked(r)),
		}
	}))
}

// MovieDetailPlan: catalog detail, then the user's bookmark/unlike state and
// top reviews, then content recommendations seeded with the movie's title
// and year, then the catalog's view of those recommendations.
func MovieDetailPlan(movieSeq, userSeq int64) pipeline.Plan {
	return pipeline.Plan{
		Name: "MovieDetail",
		Steps: []pipeline.Step{
			pipeline.NewStage[MovieDetail](stageMovieDetail, get(downstream.Catalog, downstream.MovieDetailPath(movieSeq, userSeq), false)),
			pipeline.NewStage[UserMovieDetail](stageUserMovieDetail, get(downstream.User, downstream.UserMovieDetailPath(userSeq, movieSeq), false)),
			pipeline.NewStage[[]MovieSeqListRequest](stageContentRecommend, post(downstream.Recommend, downstream.ContentRecommendPath(), func(r pipeline.Results) any {
				detail := pipeline.Value[MovieDetail](r, stageMovieDetail)
				title, year := detail.MovieTitle, detail.MovieYear
				return []RecommendByContentRequest{{Keyword: &title, Year: &year}}
			})),
			recommendationListStage(stageSimilarMovies, stageContentRecommend, func(r pipeline.Results) []int64 {
				return pipeline.Value[UserMovieDetail](r, stageUserMovieDetail).UnlikedMovies
			}),
		},
		Merge: mergeMovieDetail,
	}
}

func mergeMovieDetail(r pipeline.Results) (any, error) {
	user := pipeline.Value[UserMovieDetail](r, stageUserMovieDetail)
	reviews := make([]Review, len(user.Reviews))
	for i, rv := range user.Reviews {
		rv.Top = true
		reviews[i] = rv
	}
	return MovieDetailView{
		MovieDetail:     pipeline.Value[MovieDetail](r, stageMovieDetail),
		BookMarkedMovie: user.BookMarkedMovie,
		UnlikedMovie:    user.UnlikedMovie,
		Reviews:         reviews,
		SimilarMovies:   nonNil(pipeline.Value[[]MovieSummary](r, stageSimilarMovies)),
	}, nil
}

// ActionRecommendationsPlan recommends from the user's recent actions. No
// actions ends the operation with NO_CONTENT.
func ActionRecommendationsPlan(userSeq int64) pipeline.Plan {
	actions := pipeline.HaltWhen(
		pipeline.NewStage[[]UserAction](stageUserActions, get(downstream.Catalog, downstream.UserActionsPath(userSeq), false)),
		envelope.NoContent, msgNoRecentActions,
		func(v []UserAction) bool { return len(v) == 0 },
	)
	return pipeline.Plan{
		Name: "ActionRecommendations",
		Steps: []pipeline.Step{
			actions,
			pipeline.NewStage[[]MovieSeqListRequest](stageContentRecommend, post(downstream.Recommend, downstream.ContentRecommendPath(), func(r pipeline.Results) any {
				acts := pipeline.Value[[]UserAction](r, stageUserActions)
				seeds := make([]RecommendByContentRequest, 0, len(acts))
				for _, a := range acts {
					keyword, year := a.Keyword, a.MovieYear
					seeds = append(seeds, RecommendByContentRequest{Keyword: &keyword, Year: &year})
				}
				return seeds
			})),
			unlikedMoviesStage(userSeq),
			recommendationListStage(stageRecommendedMovies, stageContentRecommend, unlikedFrom),
		},
		Merge: mergeMovieList,
	}
}

// ReviewRecommendationsPlan recommends from users with similar reviews.
func ReviewRecommendationsPlan(userSeq int64) pipeline.Plan {
	return pipeline.Plan{
		Name: "ReviewRecommendations",
		Steps: []pipeline.Step{
			pipeline.NewStage[[]MovieSeqListRequest](stageCollaboRecommend, post(downstream.Recommend, downstream.CollaborativeRecommendPath(), func(pipeline.Results) any {
				return userSeq
			})),
			unlikedMoviesStage(userSeq),
			recommendationListStage(stageRecommendedMovies, stageCollaboRecommend, unlikedFrom),
		},
		Merge: mergeMovieList,
	}
}

// ActorRecommendationsPlan recommends movies featuring the actor the user
// reviewed most recently. No such actor ends with NO_CONTENT.
func ActorRecommendationsPlan(userSeq int64) pipeline.Plan {
	actor := pipeline.HaltWhen(
		pipeline.NewStage[string](stageRecommendedActor, get(downstream.Catalog, downstream.RecommendedActorPath(userSeq), false)),
		envelope.NoContent, msgNoRecentReviews,
		func(name string) bool { return strings.TrimSpace(name) == "" },
	)
	return pipeline.Plan{
		Name: "ActorRecommendations",
		Steps: []pipeline.Step{
			actor,
			pipeline.NewStage[[]MovieSeqListRequest](stageContentRecommend, post(downstream.Recommend, downstream.ContentRecommendPath(), func(r pipeline.Results) any {
				name := pipeline.Value[string](r, stageRecommendedActor)
				return []RecommendByContentRequest{{ActorName: &name}}
			})),
			unlikedMoviesStage(userSeq),
			recommendationListStage(stageRecommendedMovies, stageContentRecommend, unlikedFrom),
		},
		Merge: func(r pipeline.Results) (any, error) {
			return ActorRecommendationView{
				ActorName: pipeline.Value[string](r, stageRecommendedActor),
				Movies:    nonNil(pipeline.Value[[]MovieSummary](r, stageRecommendedMovies)),
			}, nil
		},
	}
}

func unlikedFrom(r pipeline.Results) []int64 {
	return pipeline.Value[[]int64](r, stageUnlikedMovies)
}

func mergeMovieList(r pipeline.Results) (any, error) {
	return nonNil(pipeline.Value[[]MovieSummary](r, stageRecommendedMovies)), nil
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

// passthrough relays one catalog answer untouched.
func passthrough(name, method, path string, body json.RawMessage, cacheable bool) pipeline.Plan {
	return pipeline.Passthrough(name, pipeline.Relay("catalog", func(pipeline.Results) (downstream.Request, error) {
		req := downstream.Request{Service: downstream.Catalog, Method: method, Path: path, Cacheable: cacheable}
		if body != nil {
			req.Body = body
		}
		return req, nil
	}))
}
