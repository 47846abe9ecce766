package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/flicker-bff/internal/config"
)

func TestNewWithConfigServesTopMovies(t *testing.T) {
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"httpStatus":200,"serviceStatus":200,"message":"success","data":[{"movieSeq":1,"movieTitle":"Heat"}]}`))
	}))
	defer catalog.Close()

	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Backends.Catalog.BaseURL = catalog.URL
	cfg.Cache.Enabled = true
	cfg.Cache.RedisAddr = mr.Addr()
	require.NoError(t, cfg.Validate())

	a, err := NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close(context.Background())

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bff/movie/list/top10", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"httpStatus":200,"serviceStatus":200,"message":"success","data":[{"movieSeq":1,"movieTitle":"Heat"}]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.NotEmpty(t, mr.Keys())
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.HTTP.Addr = "127.0.0.1:0"
	cfg.Metrics.Enabled = false

	a, err := NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, a.Run(ctx))
}
