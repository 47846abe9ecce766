package config

import "time"

type Duration struct {
	Duration time.Duration
}

type HTTPConfig struct {
	Addr              string   `json:"addr" yaml:"addr"`
	ReadHeaderTimeout Duration `json:"read_header_timeout" yaml:"read_header_timeout"`
	IdleTimeout       Duration `json:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout   Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxRequestBytes   int64    `json:"max_request_bytes" yaml:"max_request_bytes"`
}

type BackendConfig struct {
	BaseURL string   `json:"base_url" yaml:"base_url"`
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// RawPayload marks a backend that answers with bare JSON instead of an
	// envelope. A 2xx body is wrapped as SUCCESS; anything else is a
	// transport failure.
	RawPayload bool `json:"raw_payload,omitempty" yaml:"raw_payload,omitempty"`
}

type BackendsConfig struct {
	Catalog   BackendConfig `json:"catalog" yaml:"catalog"`
	User      BackendConfig `json:"user" yaml:"user"`
	Recommend BackendConfig `json:"recommend" yaml:"recommend"`
}

type TransportConfig struct {
	DialTimeout         Duration `json:"dial_timeout" yaml:"dial_timeout"`
	MaxIdleConns        int      `json:"max_idle_conns" yaml:"max_idle_conns"`
	MaxIdleConnsPerHost int      `json:"max_idle_conns_per_host" yaml:"max_idle_conns_per_host"`
	IdleConnTimeout     Duration `json:"idle_conn_timeout" yaml:"idle_conn_timeout"`
}

type CacheConfig struct {
	Enabled       bool     `json:"enabled" yaml:"enabled"`
	RedisAddr     string   `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword string   `json:"redis_password,omitempty" yaml:"redis_password,omitempty"`
	RedisDB       int      `json:"redis_db" yaml:"redis_db"`
	TTL           Duration `json:"ttl" yaml:"ttl"`
	Prefix        string   `json:"prefix" yaml:"prefix"`
}

type AuthConfig struct {
	// JWTSecret enables HS256 bearer authentication when set.
	JWTSecret string `json:"jwt_secret,omitempty" yaml:"jwt_secret,omitempty"`
	UserClaim string `json:"user_claim" yaml:"user_claim"`
}

type RateLimitConfig struct {
	RPS   float64 `json:"rps" yaml:"rps"`
	Burst int     `json:"burst" yaml:"burst"`
}

type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

type TracingConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	ServiceName string `json:"service_name" yaml:"service_name"`
}

type Config struct {
	Env       string          `json:"env" yaml:"env"`
	HTTP      HTTPConfig      `json:"http" yaml:"http"`
	Backends  BackendsConfig  `json:"backends" yaml:"backends"`
	Transport TransportConfig `json:"transport" yaml:"transport"`
	Cache     CacheConfig     `json:"cache" yaml:"cache"`
	Auth      AuthConfig      `json:"auth" yaml:"auth"`
	RateLimit RateLimitConfig `json:"rate_limit" yaml:"rate_limit"`
	CORS      CORSConfig      `json:"cors" yaml:"cors"`
	Metrics   MetricsConfig   `json:"metrics" yaml:"metrics"`
	Tracing   TracingConfig   `json:"tracing" yaml:"tracing"`
}
