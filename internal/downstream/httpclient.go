package downstream

import (
	"net"
	"net/http"
	"time"

	"github.com/yungbote/flicker-bff/internal/config"
)

// NewHTTPClient builds the pooled client shared by every backend. Per-call
// deadlines come from the request context, so the client itself carries no
// overall timeout.
func NewHTTPClient(cfg config.TransportConfig) *http.Client {
	dial := cfg.DialTimeout.Duration
	if dial <= 0 {
		dial = 5 * time.Second
	}
	idle := cfg.IdleConnTimeout.Duration
	if idle <= 0 {
		idle = 90 * time.Second
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 100
	}
	perHost := cfg.MaxIdleConnsPerHost
	if perHost <= 0 {
		perHost = 20
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dial,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          maxIdle,
		MaxIdleConnsPerHost:   perHost,
		IdleConnTimeout:       idle,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Transport: tr}
}
