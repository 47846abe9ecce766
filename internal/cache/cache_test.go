package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/flicker-bff/internal/downstream"
	"github.com/yungbote/flicker-bff/internal/envelope"
)

type countingCaller struct {
	calls atomic.Int32
	env   envelope.Envelope
	err   error
}

func (c *countingCaller) Call(ctx context.Context, req downstream.Request) (*envelope.Envelope, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	env := c.env
	return &env, nil
}

func setup(t *testing.T, next downstream.Caller) (*Caller, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(next, client, WithTTL(time.Minute), WithPrefix("test:")), mr
}

func TestCacheServesRepeatedReads(t *testing.T) {
	next := &countingCaller{env: envelope.New(envelope.Success, "", json.RawMessage(`[1,2]`))}
	c, mr := setup(t, next)
	req := downstream.Request{Service: downstream.Catalog, Path: downstream.TopMoviesPath(), Cacheable: true}

	for i := 0; i < 3; i++ {
		env, err := c.Call(context.Background(), req)
		require.NoError(t, err)
		assert.JSONEq(t, `[1,2]`, string(env.Data))
	}
	assert.EqualValues(t, 1, next.calls.Load())
	assert.True(t, mr.Exists("test:resp:catalog:/list/top10"))
	assert.Equal(t, time.Minute, mr.TTL("test:resp:catalog:/list/top10"))

	mr.FastForward(2 * time.Minute)
	_, err := c.Call(context.Background(), req)
	require.NoError(t, err)
	assert.EqualValues(t, 2, next.calls.Load())
}

func TestCacheSkipsFailuresAndUncacheable(t *testing.T) {
	next := &countingCaller{env: envelope.New(envelope.NotFound, "gone", nil)}
	c, mr := setup(t, next)
	req := downstream.Request{Service: downstream.Catalog, Path: downstream.WordCloudPath(1), Cacheable: true}

	for i := 0; i < 2; i++ {
		env, err := c.Call(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, envelope.NotFound, env.ServiceStatus)
	}
	assert.EqualValues(t, 2, next.calls.Load())
	assert.Empty(t, mr.Keys())

	next.env = envelope.New(envelope.Success, "", json.RawMessage(`{}`))
	post := downstream.Request{Service: downstream.Catalog, Method: "POST", Path: downstream.RecommendationListPath(), Body: map[string]int{}, Cacheable: true}
	_, _ = c.Call(context.Background(), post)
	_, _ = c.Call(context.Background(), post)
	assert.EqualValues(t, 4, next.calls.Load())
	assert.Empty(t, mr.Keys())
}

func TestCacheFallsThroughWhenRedisDown(t *testing.T) {
	next := &countingCaller{env: envelope.New(envelope.Success, "", json.RawMessage(`"ok"`))}
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr:        mr.Addr(),
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	t.Cleanup(func() { _ = client.Close() })
	c := New(next, client, WithTTL(time.Minute))
	mr.Close()

	start := time.Now()
	env, err := c.Call(context.Background(), downstream.Request{Service: downstream.Catalog, Path: "/list/top10", Cacheable: true})
	require.NoError(t, err)
	assert.True(t, env.Succeeded())
	assert.EqualValues(t, 1, next.calls.Load())
	assert.Error(t, c.Ping(context.Background()))
	assert.Less(t, time.Since(start), time.Second)
}
