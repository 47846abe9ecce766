package movies

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/flicker-bff/internal/downstream"
	"github.com/yungbote/flicker-bff/internal/envelope"
	"github.com/yungbote/flicker-bff/internal/pipeline"
)

// backends fakes the catalog, user and recommendation services behind one
// server, routed by prefix.
type backends struct {
	t        *testing.T
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	hits     map[string]int
	bodies   map[string]string
	srv      *httptest.Server
}

func newBackends(t *testing.T) *backends {
	b := &backends{t: t, handlers: map[string]http.HandlerFunc{}, hits: map[string]int{}, bodies: map[string]string{}}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.RequestURI()
		raw, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.hits[key]++
		b.bodies[key] = string(raw)
		h, ok := b.handlers[key]
		b.mu.Unlock()
		if !ok {
			t.Errorf("unexpected backend call %s", key)
			w.WriteHeader(http.StatusTeapot)
			return
		}
		h(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backends) on(method, uri string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[method+" "+uri] = h
}

func (b *backends) hit(method, uri string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[method+" "+uri]
}

func (b *backends) body(method, uri string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[method+" "+uri]
}

func (b *backends) service(timeout time.Duration) *Service {
	client := downstream.New(map[downstream.Service]downstream.Backend{
		downstream.Catalog:   {BaseURL: b.srv.URL + "/catalog", Timeout: timeout},
		downstream.User:      {BaseURL: b.srv.URL + "/user", Timeout: timeout},
		downstream.Recommend: {BaseURL: b.srv.URL + "/rec", Timeout: timeout, RawPayload: true},
	})
	return NewService(pipeline.NewEngine(client, nil))
}

func envelopeJSON(status, code int, message, data string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `{"httpStatus":`+itoa(status)+`,"serviceStatus":`+itoa(code)+`,"message":"`+message+`","data":`+data+`}`)
	}
}

func success(data string) http.HandlerFunc { return envelopeJSON(200, 200, "success", data) }

func raw(data string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, data)
	}
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

const (
	detailURI      = "/catalog/detail/7/42"
	userDetailURI  = "/user/movie-detail?userSeq=42&movieSeq=7"
	contentURI     = "/rec/content"
	collaboURI     = "/rec/collabo"
	recListURI     = "/catalog/list/recommendation"
	actionsURI     = "/catalog/actions/42"
	unlikedURI     = "/user/42/unlike-movie"
	recommendActor = "/catalog/list/recommendActor/42"
)

func stubMovieDetail(b *backends) {
	b.on("GET", detailURI, success(`{"movieSeq":7,"movieTitle":"Dune: Part Two","movieYear":2024,"genre":"SF"}`))
	b.on("GET", userDetailURI, success(`{"bookMarkedMovie":true,"unlikedMovie":false,"unlikedMovies":[3,5],"reviews":[{"reviewSeq":1,"userSeq":9,"movieSeq":7,"reviewRating":4.5,"reviewContent":"great"},{"reviewSeq":2,"userSeq":8,"movieSeq":7,"reviewRating":3,"reviewContent":"ok"}]}`))
	b.on("POST", contentURI, raw(`[{"movieTitle":"Arrival","movieYear":2016},{"movieTitle":"Blade Runner 2049","movieYear":2017}]`))
	b.on("POST", recListURI, success(`[{"movieSeq":11,"movieTitle":"Arrival"},{"movieSeq":12,"movieTitle":"Blade Runner 2049"}]`))
}

func decodeData[T any](t *testing.T, env envelope.Envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestMovieDetailComposesAllBackends(t *testing.T) {
	b := newBackends(t)
	stubMovieDetail(b)

	env := b.service(time.Second).MovieDetail(context.Background(), 7, 42)
	require.Equal(t, envelope.Success, env.ServiceStatus, env.Message)
	assert.Equal(t, http.StatusOK, env.HTTPStatus)

	view := decodeData[MovieDetailView](t, env)
	assert.Equal(t, "Dune: Part Two", view.MovieDetail.MovieTitle)
	assert.True(t, view.BookMarkedMovie)
	assert.False(t, view.UnlikedMovie)
	require.Len(t, view.Reviews, 2)
	for _, r := range view.Reviews {
		assert.True(t, r.Top)
	}
	require.Len(t, view.SimilarMovies, 2)
	assert.Equal(t, int64(11), view.SimilarMovies[0].MovieSeq)

	assert.JSONEq(t, `[{"keyword":"Dune: Part Two","year":2024,"actorName":null}]`, b.body("POST", contentURI))
	assert.JSONEq(t, `{"movieSeqListRequests":[{"movieTitle":"Arrival","movieYear":2016},{"movieTitle":"Blade Runner 2049","movieYear":2017}],"unlikeMovieSeqs":[3,5]}`, b.body("POST", recListURI))
}

func TestMovieDetailUserFailureStopsChain(t *testing.T) {
	b := newBackends(t)
	stubMovieDetail(b)
	b.on("GET", userDetailURI, envelopeJSON(500, 500, "db unreachable", "null"))

	env := b.service(time.Second).MovieDetail(context.Background(), 7, 42)
	assert.Equal(t, 500, env.HTTPStatus)
	assert.Equal(t, envelope.InternalError, env.ServiceStatus)
	assert.Equal(t, "db unreachable", env.Message)
	assert.False(t, env.HasData())
	assert.Equal(t, 0, b.hit("POST", contentURI))
	assert.Equal(t, 0, b.hit("POST", recListURI))
}

func TestMovieDetailCatalogNotFound(t *testing.T) {
	b := newBackends(t)
	stubMovieDetail(b)
	b.on("GET", detailURI, envelopeJSON(404, 404, "movie not found", "null"))

	env := b.service(time.Second).MovieDetail(context.Background(), 7, 42)
	assert.Equal(t, envelope.NotFound, env.ServiceStatus)
	assert.Equal(t, 404, env.HTTPStatus)
	assert.Equal(t, 0, b.hit("GET", userDetailURI))
}

func TestMovieDetailIsIdempotent(t *testing.T) {
	b := newBackends(t)
	stubMovieDetail(b)
	svc := b.service(time.Second)

	first := svc.MovieDetail(context.Background(), 7, 42)
	second := svc.MovieDetail(context.Background(), 7, 42)
	assert.Equal(t, decodeData[MovieDetailView](t, first), decodeData[MovieDetailView](t, second))
}

func TestActionRecommendationsNoActionsIsNoContent(t *testing.T) {
	b := newBackends(t)
	b.on("GET", actionsURI, success(`[]`))

	env := b.service(time.Second).ActionRecommendations(context.Background(), 42)
	assert.Equal(t, http.StatusOK, env.HTTPStatus)
	assert.Equal(t, envelope.NoContent, env.ServiceStatus)
	assert.Equal(t, msgNoRecentActions, env.Message)
	assert.Equal(t, 0, b.hit("POST", contentURI))
	assert.Equal(t, 0, b.hit("GET", unlikedURI))
	assert.Equal(t, 0, b.hit("POST", recListURI))
}

func TestActionRecommendationsSuccess(t *testing.T) {
	b := newBackends(t)
	b.on("GET", actionsURI, success(`[{"keyword":"Dune","movieYear":2021},{"keyword":"Heat","movieYear":1995}]`))
	b.on("POST", contentURI, raw(`[{"movieTitle":"Arrival","movieYear":2016}]`))
	b.on("GET", unlikedURI, success(`[5]`))
	b.on("POST", recListURI, success(`[{"movieSeq":11,"movieTitle":"Arrival"}]`))

	env := b.service(time.Second).ActionRecommendations(context.Background(), 42)
	require.Equal(t, envelope.Success, env.ServiceStatus, env.Message)
	assert.JSONEq(t, `[{"movieSeq":11,"movieTitle":"Arrival"}]`, string(env.Data))
	assert.JSONEq(t, `[{"keyword":"Dune","year":2021,"actorName":null},{"keyword":"Heat","year":1995,"actorName":null}]`, b.body("POST", contentURI))
	assert.JSONEq(t, `{"movieSeqListRequests":[{"movieTitle":"Arrival","movieYear":2016}],"unlikeMovieSeqs":[5]}`, b.body("POST", recListURI))
}

func TestActionRecommendationsTimeout(t *testing.T) {
	b := newBackends(t)
	b.on("GET", actionsURI, success(`[{"keyword":"Dune","movieYear":2021}]`))
	b.on("POST", contentURI, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	env := b.service(100*time.Millisecond).ActionRecommendations(context.Background(), 42)
	assert.Equal(t, envelope.InternalError, env.ServiceStatus)
	assert.Equal(t, http.StatusInternalServerError, env.HTTPStatus)
	assert.Equal(t, stageContentRecommend+": downstream timeout", env.Message)
	assert.False(t, strings.Contains(env.Message, "context deadline"))
	assert.Equal(t, 0, b.hit("GET", unlikedURI))
	assert.Equal(t, 0, b.hit("POST", recListURI))
}

func TestReviewRecommendations(t *testing.T) {
	b := newBackends(t)
	b.on("POST", collaboURI, raw(`[{"movieTitle":"Heat","movieYear":1995}]`))
	b.on("GET", unlikedURI, success(`null`))
	b.on("POST", recListURI, success(`[{"movieSeq":21,"movieTitle":"Heat"}]`))

	env := b.service(time.Second).ReviewRecommendations(context.Background(), 42)
	require.Equal(t, envelope.Success, env.ServiceStatus, env.Message)
	assert.Equal(t, "42", b.body("POST", collaboURI))
	assert.JSONEq(t, `{"movieSeqListRequests":[{"movieTitle":"Heat","movieYear":1995}],"unlikeMovieSeqs":[]}`, b.body("POST", recListURI))
}

func TestReviewRecommendationsRecommenderDown(t *testing.T) {
	b := newBackends(t)
	b.on("POST", collaboURI, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, "upstream connect error")
	})

	env := b.service(time.Second).ReviewRecommendations(context.Background(), 42)
	assert.Equal(t, envelope.InternalError, env.ServiceStatus)
	assert.Equal(t, stageCollaboRecommend+": downstream unavailable", env.Message)
	assert.Equal(t, 0, b.hit("GET", unlikedURI))
	assert.Equal(t, 0, b.hit("POST", recListURI))
}

func TestActorRecommendations(t *testing.T) {
	b := newBackends(t)
	b.on("GET", recommendActor, success(`"Song Kang-ho"`))
	b.on("POST", contentURI, raw(`[{"movieTitle":"Parasite","movieYear":2019}]`))
	b.on("GET", unlikedURI, success(`[]`))
	b.on("POST", recListURI, success(`[{"movieSeq":31,"movieTitle":"Parasite"}]`))

	env := b.service(time.Second).ActorRecommendations(context.Background(), 42)
	require.Equal(t, envelope.Success, env.ServiceStatus, env.Message)
	view := decodeData[ActorRecommendationView](t, env)
	assert.Equal(t, "Song Kang-ho", view.ActorName)
	require.Len(t, view.Movies, 1)
	assert.JSONEq(t, `[{"keyword":null,"year":null,"actorName":"Song Kang-ho"}]`, b.body("POST", contentURI))
}

// The recommender is always consulted before the user service, so its
// failure is the one reported even when the user service would also fail.
func TestActorRecommendationsReportsFirstFailingStage(t *testing.T) {
	b := newBackends(t)
	b.on("GET", recommendActor, success(`"Song Kang-ho"`))
	b.on("POST", contentURI, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	b.on("GET", unlikedURI, envelopeJSON(500, 500, "db unreachable", "null"))

	env := b.service(100*time.Millisecond).ActorRecommendations(context.Background(), 42)
	assert.Equal(t, envelope.InternalError, env.ServiceStatus)
	assert.Equal(t, stageContentRecommend+": downstream timeout", env.Message)
	assert.Equal(t, 1, b.hit("POST", contentURI))
	assert.Equal(t, 0, b.hit("GET", unlikedURI))
	assert.Equal(t, 0, b.hit("POST", recListURI))
}

func TestActorRecommendationsNoActor(t *testing.T) {
	for _, data := range []string{`null`, `""`} {
		b := newBackends(t)
		b.on("GET", recommendActor, success(data))

		env := b.service(time.Second).ActorRecommendations(context.Background(), 42)
		assert.Equal(t, envelope.NoContent, env.ServiceStatus, data)
		assert.Equal(t, msgNoRecentReviews, env.Message, data)
		assert.Equal(t, 0, b.hit("POST", contentURI), data)
	}
}

func TestPassthroughsRelayCatalog(t *testing.T) {
	b := newBackends(t)
	b.on("GET", "/catalog/list/top10", envelopeJSON(200, 200, "top ten", `[{"movieSeq":1}]`))
	b.on("PUT", "/catalog/admin/delete?movieSeq=9", envelopeJSON(404, 404, "no such movie", "null"))
	b.on("POST", "/catalog/admin/create", envelopeJSON(409, 409, "duplicate movie", "null"))
	b.on("GET", "/catalog/list/genre/Sci%20Fi/0/20", success(`[]`))

	svc := b.service(time.Second)
	env := svc.TopMovies(context.Background())
	assert.Equal(t, "top ten", env.Message)
	assert.JSONEq(t, `[{"movieSeq":1}]`, string(env.Data))

	env = svc.DeleteMovie(context.Background(), 9)
	assert.Equal(t, envelope.NotFound, env.ServiceStatus)
	assert.Equal(t, 404, env.HTTPStatus)

	env = svc.CreateMovie(context.Background(), json.RawMessage(`{"movieTitle":"Heat"}`))
	assert.Equal(t, envelope.Duplicate, env.ServiceStatus)
	assert.JSONEq(t, `{"movieTitle":"Heat"}`, b.body("POST", "/catalog/admin/create"))

	env = svc.MovieListByGenre(context.Background(), "Sci Fi", 0, 20)
	assert.Equal(t, envelope.Success, env.ServiceStatus)
}
