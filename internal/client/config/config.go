package config

import "time"

// Config holds runtime settings for the storefront client.
//
// Fields:
//   - ServerBaseURL: scheme://host:port of the backend; request paths start with "/api".
//   - StorageDSN: SQLite file holding the persisted session.
//   - RequestTimeout: per-request HTTP timeout.
//   - LogLevel: debug, info, warn or error (logs go to stderr).
//   - HealthAddr: host:port of the backend's gRPC health service; empty disables
//     the connectivity indicator.
//   - HealthCheckInterval: how often the health service is polled.
type Config struct {
	ServerBaseURL  string        `env:"STOREFRONT_CLIENT_SERVER_URL"`
	StorageDSN     string        `env:"STOREFRONT_CLIENT_STORAGE_DSN"`
	RequestTimeout time.Duration `env:"STOREFRONT_CLIENT_REQUEST_TIMEOUT"`
	LogLevel       string        `env:"STOREFRONT_CLIENT_LOG_LEVEL"`

	HealthAddr          string        `env:"STOREFRONT_CLIENT_HEALTH_ADDR"`
	HealthCheckInterval time.Duration `env:"STOREFRONT_CLIENT_HEALTH_INTERVAL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.StorageDSN = "storefront.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
	c.HealthAddr = ""
	c.HealthCheckInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
