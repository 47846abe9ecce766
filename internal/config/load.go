package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/flicker-bff/internal/platform/envutil"
)

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		d.Duration = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		u, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		return d.parse(u)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("duration must be a JSON string like \"5s\" or an int nanoseconds: %w", err)
	}
	d.Duration = time.Duration(n)
	return nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be a scalar, got yaml kind %d", node.Kind)
	}
	if node.Tag == "!!int" {
		n, err := strconv.ParseInt(node.Value, 10, 64)
		if err != nil {
			return err
		}
		d.Duration = time.Duration(n)
		return nil
	}
	return d.parse(node.Value)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

func (d *Duration) parse(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		d.Duration = 0
		return nil
	}
	dd, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	d.Duration = dd
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
			MaxRequestBytes:   1 << 20,
		},
		Backends: BackendsConfig{
			Catalog:   BackendConfig{BaseURL: "http://localhost:8081/api/movie", Timeout: Duration{Duration: 5 * time.Second}},
			User:      BackendConfig{BaseURL: "http://localhost:8082/api/user", Timeout: Duration{Duration: 5 * time.Second}},
			Recommend: BackendConfig{BaseURL: "http://localhost:8083/api/recommend", Timeout: Duration{Duration: 10 * time.Second}},
		},
		Transport: TransportConfig{
			DialTimeout:         Duration{Duration: 5 * time.Second},
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 20,
			IdleConnTimeout:     Duration{Duration: 90 * time.Second},
		},
		Cache: CacheConfig{
			RedisAddr: "localhost:6379",
			TTL:       Duration{Duration: 30 * time.Second},
			Prefix:    "bff:",
		},
		Auth:      AuthConfig{UserClaim: "userSeq"},
		RateLimit: RateLimitConfig{RPS: 0, Burst: 0},
		CORS:      CORSConfig{AllowOrigins: []string{"*"}},
		Metrics:   MetricsConfig{Enabled: true, Path: "/metrics"},
		Tracing:   TracingConfig{ServiceName: "flicker-bff"},
	}
}

// Default returns the built-in configuration without reading files or env.
func Default() *Config {
	return defaultConfig()
}

// Load reads BFF_CONFIG_PATH (or ./config/config.{json,yaml,yml}) over the
// defaults, applies environment overrides and validates the result.
func Load() (*Config, error) {
	cfg := defaultConfig()

	cfgPath := strings.TrimSpace(os.Getenv("BFF_CONFIG_PATH"))
	if cfgPath == "" {
		cfgPath = findDefaultFile()
	}
	if cfgPath != "" {
		if err := readFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", cfgPath, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findDefaultFile() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.json", "config.yaml", "config.yml"} {
		p := filepath.Join(wd, "config", name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func readFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, cfg)
	default:
		return json.Unmarshal(b, cfg)
	}
}

func applyEnv(cfg *Config) {
	cfg.Env = envutil.String("LOG_MODE", cfg.Env)
	cfg.HTTP.Addr = envutil.String("BFF_HTTP_ADDR", cfg.HTTP.Addr)
	cfg.Backends.Catalog.BaseURL = envutil.String("BFF_CATALOG_BASE_URL", cfg.Backends.Catalog.BaseURL)
	cfg.Backends.User.BaseURL = envutil.String("BFF_USER_BASE_URL", cfg.Backends.User.BaseURL)
	cfg.Backends.Recommend.BaseURL = envutil.String("BFF_RECOMMEND_BASE_URL", cfg.Backends.Recommend.BaseURL)
	if v := envutil.String("BFF_REDIS_ADDR", ""); v != "" {
		cfg.Cache.RedisAddr = v
		cfg.Cache.Enabled = true
	}
	cfg.Cache.RedisPassword = envutil.String("BFF_REDIS_PASSWORD", cfg.Cache.RedisPassword)
	cfg.Auth.JWTSecret = envutil.String("BFF_JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.RateLimit.RPS = envutil.Float("BFF_RATE_LIMIT_RPS", cfg.RateLimit.RPS)
	cfg.RateLimit.Burst = envutil.Int("BFF_RATE_LIMIT_BURST", cfg.RateLimit.Burst)
	cfg.CORS.AllowOrigins = envutil.List("BFF_CORS_ALLOW_ORIGINS", cfg.CORS.AllowOrigins)
	cfg.Metrics.Enabled = envutil.Bool("BFF_METRICS_ENABLED", cfg.Metrics.Enabled)
	cfg.Tracing.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Tracing.Enabled)
}

// Validate normalizes cfg in place and rejects unusable values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Env) == "" {
		c.Env = "development"
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.MaxRequestBytes <= 0 {
		c.HTTP.MaxRequestBytes = 1 << 20
	}
	backends := map[string]*BackendConfig{
		"catalog":   &c.Backends.Catalog,
		"user":      &c.Backends.User,
		"recommend": &c.Backends.Recommend,
	}
	for name, b := range backends {
		b.BaseURL = strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
		if b.BaseURL == "" {
			return fmt.Errorf("config: backends.%s.base_url is required", name)
		}
		u, err := url.Parse(b.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: backends.%s.base_url %q is not an absolute URL", name, b.BaseURL)
		}
		if b.Timeout.Duration < 0 {
			return fmt.Errorf("config: backends.%s.timeout must not be negative", name)
		}
		if b.Timeout.Duration == 0 {
			b.Timeout = Duration{Duration: 5 * time.Second}
		}
	}
	if c.Cache.Enabled {
		if strings.TrimSpace(c.Cache.RedisAddr) == "" {
			return errors.New("config: cache.redis_addr is required when cache is enabled")
		}
		if c.Cache.TTL.Duration <= 0 {
			return errors.New("config: cache.ttl must be positive when cache is enabled")
		}
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return errors.New("config: rate_limit values must not be negative")
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = int(c.RateLimit.RPS) + 1
	}
	if strings.TrimSpace(c.Auth.UserClaim) == "" {
		c.Auth.UserClaim = "userSeq"
	}
	if strings.TrimSpace(c.Metrics.Path) == "" {
		c.Metrics.Path = "/metrics"
	}
	if strings.TrimSpace(c.Tracing.ServiceName) == "" {
		c.Tracing.ServiceName = "flicker-bff"
	}
	return nil
}

func (c *Config) Production() bool {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "prod", "production":
		return true
	default:
		return false
	}
}
