// Package downstream is the single adapter every orchestration stage uses to
// reach the catalog, user and recommendation backends.
package downstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/flicker-bff/internal/config"
	"github.com/yungbote/flicker-bff/internal/envelope"
	"github.com/yungbote/flicker-bff/internal/observability"
	"github.com/yungbote/flicker-bff/internal/platform/ctxutil"
	"github.com/yungbote/flicker-bff/internal/platform/logger"
)

type Service string

const (
	Catalog   Service = "catalog"
	User      Service = "user"
	Recommend Service = "recommend"
)

// Request is one backend call. Path is relative to the backend base URL and
// may carry a query string.
type Request struct {
	Service Service
	Method  string
	Path    string
	Body    any

	// Cacheable marks idempotent reads whose SUCCESS envelopes may be served
	// from the response cache.
	Cacheable bool
}

// Caller returns the backend's envelope for any HTTP status, or a
// *TransportError when no envelope could be obtained. Any other error means
// the request itself could not be built.
type Caller interface {
	Call(ctx context.Context, req Request) (*envelope.Envelope, error)
}

type Backend struct {
	BaseURL    string
	Timeout    time.Duration
	RawPayload bool
}

func BackendsFromConfig(cfg config.BackendsConfig) map[Service]Backend {
	conv := func(b config.BackendConfig) Backend {
		return Backend{
			BaseURL:    strings.TrimRight(strings.TrimSpace(b.BaseURL), "/"),
			Timeout:    b.Timeout.Duration,
			RawPayload: b.RawPayload,
		}
	}
	return map[Service]Backend{
		Catalog:   conv(cfg.Catalog),
		User:      conv(cfg.User),
		Recommend: conv(cfg.Recommend),
	}
}

const maxResponseBytes = 8 << 20

type Client struct {
	backends   map[Service]Backend
	httpClient *http.Client
	log        *logger.Logger
	metrics    *observability.Metrics
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func New(backends map[Service]Backend, opts ...Option) *Client {
	c := &Client{
		backends:   make(map[Service]Backend, len(backends)),
		httpClient: http.DefaultClient,
		log:        logger.NewNop(),
	}
	for k, v := range backends {
		v.BaseURL = strings.TrimRight(strings.TrimSpace(v.BaseURL), "/")
		c.backends[k] = v
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Call(ctx context.Context, req Request) (*envelope.Envelope, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	backend, ok := c.backends[req.Service]
	if !ok || backend.BaseURL == "" {
		return nil, &TransportError{Service: req.Service, Method: method, Path: req.Path, Err: ErrUnknownService}
	}

	var payload []byte
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("downstream: encode %s %s body: %w", method, req.Path, err)
		}
		payload = raw
	}

	if backend.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, backend.Timeout)
		defer cancel()
	}

	ctx, span := observability.Tracer().Start(ctx, "downstream "+string(req.Service),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("bff.downstream.service", string(req.Service)),
			attribute.String("bff.downstream.path", req.Path),
		),
	)
	defer span.End()

	start := time.Now()
	env, err := c.do(ctx, backend, method, req, payload)
	elapsed := time.Since(start)

	outcome := "ok"
	switch {
	case err != nil:
		outcome = "transport_error"
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		c.log.Warn("downstream call failed",
			"service", req.Service,
			"method", method,
			"path", req.Path,
			"duration_ms", elapsed.Milliseconds(),
			"request_id", ctxutil.RequestID(ctx),
			"error", err,
		)
	case !env.Succeeded():
		outcome = "domain_error"
		span.SetAttributes(attribute.Int("bff.service_status", int(env.ServiceStatus)))
		c.log.Debug("downstream domain failure",
			"service", req.Service,
			"path", req.Path,
			"service_status", int(env.ServiceStatus),
			"message", env.Message,
		)
	}
	c.metrics.ObserveDownstream(string(req.Service), method, outcome, elapsed)
	return env, err
}

func (c *Client) do(ctx context.Context, b Backend, method string, req Request, payload []byte) (*envelope.Envelope, error) {
	fail := func(status int, err error) (*envelope.Envelope, error) {
		return nil, &TransportError{Service: req.Service, Method: method, Path: req.Path, StatusCode: status, Err: err}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, b.BaseURL+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("downstream: build %s %s: %w", method, req.Path, err)
	}
	setHeaders(ctx, httpReq, payload != nil)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fail(0, err)
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
	if readErr != nil {
		return fail(resp.StatusCode, readErr)
	}

	if b.RawPayload {
		env, err := wrapRaw(resp.StatusCode, raw)
		if err != nil {
			return fail(resp.StatusCode, err)
		}
		return env, nil
	}
	env, err := decodeEnvelope(resp.StatusCode, raw)
	if err != nil {
		return fail(resp.StatusCode, err)
	}
	return env, nil
}

func setHeaders(ctx context.Context, r *http.Request, hasBody bool) {
	r.Header.Set("Accept", "application/json")
	if hasBody {
		r.Header.Set("Content-Type", "application/json")
	}
	if id := ctxutil.RequestID(ctx); id != "" {
		r.Header.Set("X-Request-Id", id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(r.Header))
}

// decodeEnvelope accepts any HTTP status as long as the body is a JSON
// object with a numeric serviceStatus.
func decodeEnvelope(status int, raw []byte) (*envelope.Envelope, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrMalformedBody
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() || doc.Get("serviceStatus").Type != gjson.Number {
		return nil, ErrMalformedBody
	}
	var env envelope.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if env.HTTPStatus == 0 {
		env.HTTPStatus = status
	}
	return &env, nil
}

func wrapRaw(status int, raw []byte) (*envelope.Envelope, error) {
	if status < 200 || status >= 300 {
		return nil, ErrUnexpectedStatus
	}
	if !gjson.ValidBytes(raw) {
		return nil, ErrMalformedBody
	}
	env := envelope.New(envelope.Success, "", json.RawMessage(raw))
	return &env, nil
}
