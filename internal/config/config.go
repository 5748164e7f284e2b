// Package config loads the process-wide configuration once at startup.
// The resulting Config is passed explicitly to every component; nothing else reads the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported JWT signing algorithms.
var supportedAlgorithms = map[string]struct{}{
	"HS256": {},
	"HS384": {},
	"HS512": {},
}

// Config holds every setting consumed by the server.
type Config struct {
	Env      string // APP_ENV
	HTTPAddr string // HTTP_ADDR
	LogLevel string // LOG_LEVEL

	DatabaseURL      string        // DATABASE_URL
	RunMigrations    bool          // RUN_MIGRATIONS
	DBConnectTimeout time.Duration // DB_CONNECT_TIMEOUT

	RedisURL string // REDIS_URL

	JWTSecret      string        // JWT_SECRET
	JWTAlgorithm   string        // JWT_ALGORITHM
	AccessTokenTTL time.Duration // ACCESS_TOKEN_EXPIRE_MINUTES
	TokenClockSkew time.Duration // TOKEN_CLOCK_SKEW

	BcryptCost int // BCRYPT_COST

	PostsRateLimitTimes  int           // POSTS_RATE_LIMIT_TIMES
	PostsRateLimitWindow time.Duration // POSTS_RATE_LIMIT_SECONDS
	RateLimitPrefix      string        // RATE_LIMIT_PREFIX

	PostCacheTTL   time.Duration // POST_CACHE_TTL
	RequestTimeout time.Duration // REQUEST_TIMEOUT

	CORSAllowedOrigins []string // CORS_ALLOWED_ORIGINS
	SentryDSN          string   // SENTRY_DSN
}

// Load reads .env (if present) and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables, applying defaults.
func FromEnv() Config {
	return Config{
		Env:      envDefault("APP_ENV", "development"),
		HTTPAddr: envDefault("HTTP_ADDR", ":8080"),
		LogLevel: envDefault("LOG_LEVEL", "info"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RunMigrations:    envBool("RUN_MIGRATIONS", true),
		DBConnectTimeout: envDuration("DB_CONNECT_TIMEOUT", 60*time.Second),

		RedisURL: envDefault("REDIS_URL", "redis://localhost:6379/0"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTAlgorithm:   strings.ToUpper(envDefault("JWT_ALGORITHM", "HS256")),
		AccessTokenTTL: time.Duration(envInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		TokenClockSkew: envDuration("TOKEN_CLOCK_SKEW", 30*time.Second),

		BcryptCost: envInt("BCRYPT_COST", 0),

		PostsRateLimitTimes:  envInt("POSTS_RATE_LIMIT_TIMES", 5),
		PostsRateLimitWindow: time.Duration(envInt("POSTS_RATE_LIMIT_SECONDS", 60)) * time.Second,
		RateLimitPrefix:      envDefault("RATE_LIMIT_PREFIX", "blog-limiter"),

		PostCacheTTL:   envDuration("POST_CACHE_TTL", time.Minute),
		RequestTimeout: envDuration("REQUEST_TIMEOUT", 10*time.Second),

		CORSAllowedOrigins: csv(os.Getenv("CORS_ALLOWED_ORIGINS")),
		SentryDSN:          os.Getenv("SENTRY_DSN"),
	}
}

// Validate reports configuration that would leave the token service or limiter unusable.
func (c Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	}
	if _, ok := supportedAlgorithms[c.JWTAlgorithm]; !ok {
		errs = append(errs, fmt.Errorf("unsupported JWT_ALGORITHM %q", c.JWTAlgorithm))
	}
	if c.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive"))
	}
	if c.TokenClockSkew < 0 {
		errs = append(errs, errors.New("TOKEN_CLOCK_SKEW must not be negative"))
	}
	if c.PostsRateLimitTimes <= 0 {
		errs = append(errs, errors.New("POSTS_RATE_LIMIT_TIMES must be positive"))
	}
	if c.PostsRateLimitWindow <= 0 {
		errs = append(errs, errors.New("POSTS_RATE_LIMIT_SECONDS must be positive"))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL must be set"))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether APP_ENV is "production".
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment; using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// envDuration accepts Go duration strings ("90s") or a bare number of seconds.
func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	slog.Warn("invalid duration in environment; using default", "key", key, "value", v, "default", def)
	return def
}

func csv(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
