package handlers

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"github.com/yungbote/flicker-bff/internal/envelope"
	"github.com/yungbote/flicker-bff/internal/http/response"
	"github.com/yungbote/flicker-bff/internal/platform/ctxutil"
	"github.com/yungbote/flicker-bff/internal/platform/logger"
)

const maxPageSize = 100

// MovieService is the set of operations the movie routes dispatch to.
type MovieService interface {
	MovieDetail(ctx context.Context, movieSeq, userSeq int64) envelope.Envelope
	ActionRecommendations(ctx context.Context, userSeq int64) envelope.Envelope
	ReviewRecommendations(ctx context.Context, userSeq int64) envelope.Envelope
	ActorRecommendations(ctx context.Context, userSeq int64) envelope.Envelope

	CreateMovie(ctx context.Context, body json.RawMessage) envelope.Envelope
	UpdateMovie(ctx context.Context, body json.RawMessage) envelope.Envelope
	DeleteMovie(ctx context.Context, movieSeq int64) envelope.Envelope
	AddActor(ctx context.Context, body json.RawMessage) envelope.Envelope
	UpdateActor(ctx context.Context, body json.RawMessage) envelope.Envelope
	DeleteActor(ctx context.Context, actorSeq, movieSeq int64) envelope.Envelope

	MovieList(ctx context.Context, page, size int) envelope.Envelope
	MovieListByGenre(ctx context.Context, genre string, page, size int) envelope.Envelope
	MovieListByActor(ctx context.Context, actorName string, page, size int) envelope.Envelope
	MovieListByCountry(ctx context.Context, country string, page, size int) envelope.Envelope
	MovieListByYear(ctx context.Context, year, page, size int) envelope.Envelope
	SearchMovies(ctx context.Context, keyword string, userSeq int64, page, size int) envelope.Envelope
	TopMovies(ctx context.Context) envelope.Envelope
	TopRatingMovies(ctx context.Context) envelope.Envelope
	WordCloud(ctx context.Context, movieSeq int64) envelope.Envelope
}

// MovieHandler validates path and body shape, calls exactly one operation
// and writes the resulting envelope unchanged.
type MovieHandler struct {
	log    *logger.Logger
	movies MovieService
}

func NewMovieHandler(log *logger.Logger, movies MovieService) *MovieHandler {
	return &MovieHandler{log: log.With("handler", "MovieHandler"), movies: movies}
}

// GET /api/bff/movie/detail/:movieSeq/:userSeq
func (h *MovieHandler) MovieDetail(c *gin.Context) {
	movieSeq, ok := seqParam(c, "movieSeq")
	if !ok {
		return
	}
	userSeq, ok := userSeqParam(c)
	if !ok {
		return
	}
	response.RespondEnvelope(c, h.movies.MovieDetail(c.Request.Context(), movieSeq, userSeq))
}

// GET /api/bff/movie/recommendation/action/:userSeq
func (h *MovieHandler) ActionRecommendations(c *gin.Context) {
	userSeq, ok := userSeqParam(c)
	if !ok {
		return
	}
	response.RespondEnvelope(c, h.movies.ActionRecommendations(c.Request.Context(), userSeq))
}

// GET /api/bff/movie/recommendation/review/:userSeq
func (h *MovieHandler) ReviewRecommendations(c *gin.Context) {
	userSeq, ok := userSeqParam(c)
	if !ok {
		return
	}
	response.RespondEnvelope(c, h.movies.ReviewRecommendations(c.Request.Context(), userSeq))
}

// GET /api/bff/movie/recommendation/actor/:userSeq
func (h *MovieHandler) ActorRecommendations(c *gin.Context) {
	userSeq, ok := userSeqParam(c)
	if !ok {
		return
	}
	response.RespondEnvelope(c, h.movies.ActorRecommendations(c.Request.Context(), userSeq))
}

// POST /api/bff/movie/admin/create
func (h *MovieHandler) CreateMovie(c *gin.Context) {
	body, ok := h.objectBody(c)
	if !ok {
		return
	}
	response.RespondEnvelope(c, h.movies.CreateMovie(c.Request.Context(), body))
}

// PUT /api/bff/movie/admin/update/detail
func (h *MovieHandler) UpdateMovie(c *gin.Context) {
	body, ok := h.objectBody(c)
	if !ok {
		return
	}
	response.RespondEnvelope(c, h.movies.UpdateMovie(c.Request.Context(), body))
}

// PUT /api/bff/movie/admin/delete/:movieSeq
func (h *MovieHandler) DeleteMovie(c *gin.Context) {
	movieSeq, ok := seqParam(c, "movieSeq")
	if !ok {
		return
	}
	response.RespondEnvelope(c, h.movies.DeleteMovie(c.Request.Context(), movieSeq))
}

// POST /api/bff/movie/admin/add/actor
func (h *MovieHandler) AddActor(c *gin.Context) {
	body, ok := h.objectBody(c)
	if !ok {
		return
	}
	response.RespondEnvelope(c, h.movies.AddActor(c.Request.Context(), body))
}

// PUT /api/bff/movie/admin/update/actor
func (h *MovieHandler) UpdateActor(c *gin.Context) {
	body, ok := h.objectBody(c)
	if !ok {
		return
	}
	response.RespondEnvelope(c, h.movies.UpdateActor(c.Request.Context(), body))
}

// DELETE /api/bff/movie/admin/delete/actor/:actorSeq/:movieSeq
func (h *MovieHandler) DeleteActor(c *gin.Context) {
	actorSeq, ok := seqParam(c, "actorSeq")
	if !ok {
		return
	}
	movieSeq, ok := seqParam(c, "movieSeq")
	if !ok {
		return
	}
	response.RespondEnvelope(c, h.movies.DeleteActor(c.Request.Context(), actorSeq, movieSeq))
}

// GET /api/bff/movie/list/all/:page/:size
func (h *MovieHandler) MovieList(c *gin.Context) {
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	response.RespondEnvelope(c, h.movies.MovieList(c.Request.Context(), page, size))
}

// GET /api/bff/movie/list/genre/:genre/:page/:size
func (h *MovieHandler) MovieListByGenre(c *gin.Context) {
	genre, ok := textParam(c, "genre")
	if !ok {
		return
	}
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	response.RespondEnvelope(c, h.movies.MovieListByGenre(c.Request.Context(), genre, page, size))
}

// GET /api/bff/movie/list/actor/:actorName/:page/:size
func (h *MovieHandler) MovieListByActor(c *gin.Context) {
	actorName, ok := textParam(c, "actorName")
	if !ok {
		return
	}
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	response.RespondEnvelope(c, h.movies.MovieListByActor(c.Request.Context(), actorName, page, size))
}

// GET /api/bff/movie/list/country/:country/:page/:size
func (h *MovieHandler) MovieListByCountry(c *gin.Context) {
	country, ok := textParam(c, "country")
	if !ok {
		return
	}
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	response.RespondEnvelope(c, h.movies.MovieListByCountry(c.Request.Context(), country, page, size))
}

// GET /api/bff/movie/list/year/:year/:page/:size
func (h *MovieHandler) MovieListByYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year <= 0 {
		response.RespondStatus(c, envelope.InvalidInput, "invalid year")
		return
	}
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	response.RespondEnvelope(c, h.movies.MovieListByYear(c.Request.Context(), year, page, size))
}

// GET /api/bff/movie/list/search/:keyword/:userSeq/:page/:size
func (h *MovieHandler) SearchMovies(c *gin.Context) {
	keyword, ok := textParam(c, "keyword")
	if !ok {
		return
	}
	userSeq, ok := userSeqParam(c)
	if !ok {
		return
	}
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	response.RespondEnvelope(c, h.movies.SearchMovies(c.Request.Context(), keyword, userSeq, page, size))
}

// GET /api/bff/movie/list/top10
func (h *MovieHandler) TopMovies(c *gin.Context) {
	response.RespondEnvelope(c, h.movies.TopMovies(c.Request.Context()))
}

// GET /api/bff/movie/list/topRating
func (h *MovieHandler) TopRatingMovies(c *gin.Context) {
	response.RespondEnvelope(c, h.movies.TopRatingMovies(c.Request.Context()))
}

// GET /api/bff/movie/wordCloud/:movieSeq
func (h *MovieHandler) WordCloud(c *gin.Context) {
	movieSeq, ok := seqParam(c, "movieSeq")
	if !ok {
		return
	}
	response.RespondEnvelope(c, h.movies.WordCloud(c.Request.Context(), movieSeq))
}

// objectBody reads the request body and requires a JSON object; the
// content is otherwise left for the catalog service to validate.
func (h *MovieHandler) objectBody(c *gin.Context) (json.RawMessage, bool) {
	raw, err := c.GetRawData()
	if err != nil {
		h.log.Warn("read request body failed", "path", c.FullPath(), "error", err)
		response.RespondStatus(c, envelope.InvalidInput, "unreadable request body")
		return nil, false
	}
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		response.RespondStatus(c, envelope.InvalidInput, "request body must be a JSON object")
		return nil, false
	}
	return json.RawMessage(raw), true
}

func seqParam(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		response.RespondStatus(c, envelope.InvalidInput, "invalid "+name)
		return 0, false
	}
	return v, true
}

// userSeqParam prefers the authenticated caller over the path value.
func userSeqParam(c *gin.Context) (int64, bool) {
	if caller := ctxutil.GetCaller(c.Request.Context()); caller != nil && caller.UserSeq > 0 {
		return caller.UserSeq, true
	}
	return seqParam(c, "userSeq")
}

func textParam(c *gin.Context, name string) (string, bool) {
	v := strings.TrimSpace(c.Param(name))
	if v == "" {
		response.RespondStatus(c, envelope.InvalidInput, "missing "+name)
		return "", false
	}
	return v, true
}

func pageParams(c *gin.Context) (int, int, bool) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 0 {
		response.RespondStatus(c, envelope.InvalidInput, "invalid page")
		return 0, 0, false
	}
	size, err := strconv.Atoi(c.Param("size"))
	if err != nil || size < 1 || size > maxPageSize {
		response.RespondStatus(c, envelope.InvalidInput, "invalid size")
		return 0, 0, false
	}
	return page, size, true
}
