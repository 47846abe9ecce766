package movies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/flicker-bff/internal/pipeline"
)

func TestPlansAreValid(t *testing.T) {
	plans := []pipeline.Plan{
		MovieDetailPlan(1, 2),
		ActionRecommendationsPlan(2),
		ReviewRecommendationsPlan(2),
		ActorRecommendationsPlan(2),
		passthrough("TopMovies", "GET", "/list/top10", nil, true),
	}
	for _, p := range plans {
		require.NoError(t, p.Validate(), p.Name)
	}
}

func TestMergeMovieDetailMarksTopReviewsWithoutMutatingInput(t *testing.T) {
	user := UserMovieDetail{BookMarkedMovie: true, Reviews: []Review{{ReviewSeq: 1}, {ReviewSeq: 2}}}
	r := pipeline.ResultsOf(map[string]any{
		stageMovieDetail:     MovieDetail{MovieSeq: 7, MovieTitle: "Heat"},
		stageUserMovieDetail: user,
		stageSimilarMovies:   []MovieSummary(nil),
	})

	out, err := mergeMovieDetail(r)
	require.NoError(t, err)
	view := out.(MovieDetailView)
	assert.True(t, view.BookMarkedMovie)
	assert.True(t, view.Reviews[0].Top && view.Reviews[1].Top)
	assert.False(t, user.Reviews[0].Top)
	assert.NotNil(t, view.SimilarMovies)
	assert.Empty(t, view.SimilarMovies)
}

func TestMergeMovieDetailPanicsWithoutUserStage(t *testing.T) {
	r := pipeline.ResultsOf(map[string]any{stageMovieDetail: MovieDetail{}})
	assert.Panics(t, func() { _, _ = mergeMovieDetail(r) })
}
