package downstream

import (
	"fmt"
	"net/url"
)

// Catalog service routes.

func MovieCreatePath() string { return "/admin/create" }
func MovieUpdatePath() string { return "/admin/update/detail" }

func MovieDeletePath(movieSeq int64) string {
	return fmt.Sprintf("/admin/delete?movieSeq=%d", movieSeq)
}

func ActorAddPath() string    { return "/admin/add/actor" }
func ActorUpdatePath() string { return "/admin/update/actor" }

func ActorDeletePath(actorSeq, movieSeq int64) string {
	return fmt.Sprintf("/admin/delete/actor/%d/%d", actorSeq, movieSeq)
}

func MovieListPath(page, size int) string {
	return fmt.Sprintf("/list/%d/%d", page, size)
}

func MovieListByGenrePath(genre string, page, size int) string {
	return fmt.Sprintf("/list/genre/%s/%d/%d", url.PathEscape(genre), page, size)
}

func MovieListByActorPath(actorName string, page, size int) string {
	return fmt.Sprintf("/list/actor/%s/%d/%d", url.PathEscape(actorName), page, size)
}

func MovieListByCountryPath(country string, page, size int) string {
	return fmt.Sprintf("/list/country/%s/%d/%d", url.PathEscape(country), page, size)
}

func MovieListByYearPath(year, page, size int) string {
	return fmt.Sprintf("/list/year/%d/%d/%d", year, page, size)
}

func MovieSearchPath(keyword string, userSeq int64, page, size int) string {
	return fmt.Sprintf("/list/search/%s/%d/%d/%d", url.PathEscape(keyword), userSeq, page, size)
}

func TopMoviesPath() string       { return "/list/top10" }
func TopRatingMoviesPath() string { return "/list/topRating" }

func WordCloudPath(movieSeq int64) string {
	return fmt.Sprintf("/wordCloud/%d", movieSeq)
}

func MovieDetailPath(movieSeq, userSeq int64) string {
	return fmt.Sprintf("/detail/%d/%d", movieSeq, userSeq)
}

func UserActionsPath(userSeq int64) string {
	return fmt.Sprintf("/actions/%d", userSeq)
}

func RecommendedActorPath(userSeq int64) string {
	return fmt.Sprintf("/list/recommendActor/%d", userSeq)
}

func RecommendationListPath() string { return "/list/recommendation" }

// User service routes.

func UserMovieDetailPath(userSeq, movieSeq int64) string {
	return fmt.Sprintf("/movie-detail?userSeq=%d&movieSeq=%d", userSeq, movieSeq)
}

func UnlikedMoviesPath(userSeq int64) string {
	return fmt.Sprintf("/%d/unlike-movie", userSeq)
}

// Recommendation service routes.

func ContentRecommendPath() string       { return "/content" }
func CollaborativeRecommendPath() string { return "/collabo" }
