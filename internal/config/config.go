package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	pkgRetry "github.com/personalab/chat-backend/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// Redis (session state) configuration
	RedisAddr       string        `env:"REDIS_ADDR,notEmpty"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	SessionStateTTL time.Duration `env:"SESSION_STATE_TTL" envDefault:"72h"`

	// External service configurations
	IdentityConnectorCfg  IdentityConnectorConfig  `envPrefix:"IDENTITY_"`
	InferenceConnectorCfg InferenceConnectorConfig `envPrefix:"INFERENCE_"`

	// Auth middleware user cache
	UserCacheTTL     time.Duration `env:"USER_CACHE_TTL" envDefault:"1m"`
	UserCacheCleanup time.Duration `env:"USER_CACHE_CLEANUP" envDefault:"5m"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS,notEmpty"`

	// Environment (set from flag, not from env var)
	Environment string
}

// IdentityConnectorConfig points at a GoTrue-style identity service.
type IdentityConnectorConfig struct {
	HTTPClientConfig
	SignUpEndpoint  string `env:"SIGNUP_ENDPOINT" envDefault:"/auth/v1/signup"`
	TokenEndpoint   string `env:"TOKEN_ENDPOINT" envDefault:"/auth/v1/token?grant_type=password"`
	SignOutEndpoint string `env:"SIGNOUT_ENDPOINT" envDefault:"/auth/v1/logout"`
	UserEndpoint    string `env:"USER_ENDPOINT" envDefault:"/auth/v1/user"`
}

// InferenceConnectorConfig points at an OpenAI-compatible
// chat-completion service and fixes its sampling parameters.
type InferenceConnectorConfig struct {
	HTTPClientConfig
	CompletionsEndpoint string               `env:"COMPLETIONS_ENDPOINT" envDefault:"/v1/chat/completions"`
	Model               string               `env:"MODEL,notEmpty"`
	MaxTokens           int                  `env:"MAX_TOKENS" envDefault:"1024"`
	Temperature         float64              `env:"TEMPERATURE" envDefault:"0.7"`
	Retry               pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL,notEmpty"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		return fmt.Errorf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns)
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns)
	}

	if cfg.InferenceConnectorCfg.MaxTokens < 1 {
		return fmt.Errorf("INFERENCE_MAX_TOKENS must be positive, got %d", cfg.InferenceConnectorCfg.MaxTokens)
	}

	if t := cfg.InferenceConnectorCfg.Temperature; t < 0 || t > 2 {
		return fmt.Errorf("INFERENCE_TEMPERATURE must be between 0 and 2, got %g", t)
	}

	if cfg.SessionStateTTL <= 0 {
		return fmt.Errorf("SESSION_STATE_TTL must be positive, got %s", cfg.SessionStateTTL)
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
