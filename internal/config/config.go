package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Cache backends
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds all configuration for the chapter relay
type Config struct {
	// Server configuration
	HTTPPort        int    `env:"PORT" envDefault:"5000"`
	GRPCPort        int    `env:"GRPC_PORT" envDefault:"0"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	CORSAllowOrigin string `env:"CORS_ALLOW_ORIGIN" envDefault:"*"`

	// Upstream scripture API
	Upstream UpstreamConfig

	// Chapter cache
	Cache CacheConfig

	// Redis configuration, used when Cache.Backend is "redis"
	Redis RedisConfig

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// UpstreamConfig holds the RapidAPI connection settings
type UpstreamConfig struct {
	APIKey  string        `env:"RAPIDAPI_KEY"`
	Host    string        `env:"RAPIDAPI_HOST" envDefault:"bhagavad-gita3.p.rapidapi.com"`
	BaseURL string        `env:"RAPIDAPI_BASE_URL"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
}

// CacheConfig selects the chapter cache backend
type CacheConfig struct {
	Backend string        `env:"CACHE_BACKEND" envDefault:"none"`
	TTL     time.Duration `env:"CACHE_TTL" envDefault:"1h"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASS"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`

	// Connection pool settings
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// Load reads configuration from a .env file (if any) and environment variables.
// Variables already present in the environment win over the .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return Parse()
}

// Parse reads configuration from environment variables only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = "https://" + cfg.Upstream.Host
	}
	cfg.Upstream.BaseURL = strings.TrimRight(cfg.Upstream.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	// 0 disables the gRPC health server
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid gRPC port: %d", c.GRPCPort)
	}
	if c.GRPCPort != 0 && c.GRPCPort == c.HTTPPort {
		return fmt.Errorf("gRPC port %d collides with HTTP port", c.GRPCPort)
	}

	if c.Upstream.APIKey == "" {
		return fmt.Errorf("RAPIDAPI_KEY is required")
	}
	if c.Upstream.Host == "" {
		return fmt.Errorf("RAPIDAPI_HOST must not be empty")
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive")
	}

	switch c.Cache.Backend {
	case CacheNone:
	case CacheMemory, CacheRedis:
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache TTL must be positive")
		}
		if c.Cache.Backend == CacheRedis && c.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for the redis cache")
		}
	default:
		return fmt.Errorf("unsupported cache backend: %s (must be none, memory, or redis)", c.Cache.Backend)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GRPCEnabled reports whether the gRPC health server should run
func (c *Config) GRPCEnabled() bool {
	return c.GRPCPort != 0
}
