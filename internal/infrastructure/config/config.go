package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"ENV,         default=development"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=24h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`

	RateLimit RateLimitConfig
	Cache     CacheConfig
	CORS      CORSConfig
	Mongo     MongoConfig
}

type RateLimitConfig struct {
	// Requests is both the bucket capacity and the amount restored each
	// refill interval.
	Requests int64         `env:"RATE_LIMIT_REQUESTS, default=10"`
	Duration time.Duration `env:"RATE_LIMIT_DURATION, default=60s"`
	MaxKeys  int           `env:"RATE_LIMIT_MAX_KEYS, default=10000"`
}

type CacheConfig struct {
	MaximumSize       int           `env:"CACHE_MAXIMUM_SIZE,        default=500"`
	ExpireAfterAccess time.Duration `env:"CACHE_EXPIRE_AFTER_ACCESS, default=10m"`
}

type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"`
	ExposedHeaders   []string `env:"CORS_EXPOSED_HEADERS"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS, default=false"`
	MaxAge           int      `env:"CORS_MAX_AGE,           default=3600"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=projects_api"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	// List defaults live here: go-envconfig tag options are comma
	// separated, so comma-joined default lists cannot be expressed in tags.
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Authorization", "Content-Type"}
	}
	if len(cfg.CORS.ExposedHeaders) == 0 {
		cfg.CORS.ExposedHeaders = []string{"X-Rate-Limit-Remaining", "X-Rate-Limit-Retry-After-Seconds"}
	}

	return &cfg, nil
}
