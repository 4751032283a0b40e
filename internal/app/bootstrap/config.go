package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration for the service.
// It merges file defaults and environment overrides to support both local and deployed runs.
type Config struct {
	ServiceID   string
	Environment string

	HTTPPort int
	GRPCPort int

	DatabaseURL string
	RedisURL    string

	BcryptCost int

	SessionTTL      time.Duration
	LockoutDuration time.Duration
	FailedThreshold int

	LoginRateLimitIPThreshold            int
	RegisterRateLimitIPThreshold         int
	RegisterRateLimitIdentifierThreshold int
	RateLimitWindow                      time.Duration

	MaxDBConns int32
}

// configFile mirrors the YAML schema used by configs/default.yaml.
// It is intentionally separate from Config so runtime-only fields stay internal.
type configFile struct {
	Service struct {
		ID          string `yaml:"id"`
		Environment string `yaml:"environment"`
		HTTPPort    int    `yaml:"http_port"`
		GRPCPort    int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL string `yaml:"postgres_url"`
		RedisURL    string `yaml:"redis_url"`
	} `yaml:"dependencies"`
	Auth struct {
		SessionTTLHours        int `yaml:"session_ttl_hours"`
		FailedLoginThreshold   int `yaml:"failed_login_threshold"`
		LockoutMinutes         int `yaml:"lockout_minutes"`
		BcryptCost             int `yaml:"bcrypt_cost"`
		LoginIPThreshold       int `yaml:"login_ip_threshold"`
		RegisterIPThreshold    int `yaml:"register_ip_threshold"`
		RegisterEmailThreshold int `yaml:"register_email_threshold"`
		RateWindowSeconds      int `yaml:"rate_window_seconds"`
	} `yaml:"auth"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
// This order keeps local bootstrap simple while allowing environment-specific overrides.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:                            "gatehouse",
		Environment:                          "development",
		HTTPPort:                             8080,
		GRPCPort:                             9090,
		BcryptCost:                           12,
		SessionTTL:                           24 * time.Hour,
		LockoutDuration:                      15 * time.Minute,
		FailedThreshold:                      5,
		LoginRateLimitIPThreshold:            30,
		RegisterRateLimitIPThreshold:         20,
		RegisterRateLimitIdentifierThreshold: 6,
		RateLimitWindow:                      time.Minute,
		MaxDBConns:                           20,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.Environment != "" {
			cfg.Environment = f.Service.Environment
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if f.Auth.SessionTTLHours > 0 {
			cfg.SessionTTL = time.Duration(f.Auth.SessionTTLHours) * time.Hour
		}
		if f.Auth.FailedLoginThreshold > 0 {
			cfg.FailedThreshold = f.Auth.FailedLoginThreshold
		}
		if f.Auth.LockoutMinutes > 0 {
			cfg.LockoutDuration = time.Duration(f.Auth.LockoutMinutes) * time.Minute
		}
		if f.Auth.BcryptCost > 0 {
			cfg.BcryptCost = f.Auth.BcryptCost
		}
		if f.Auth.LoginIPThreshold > 0 {
			cfg.LoginRateLimitIPThreshold = f.Auth.LoginIPThreshold
		}
		if f.Auth.RegisterIPThreshold > 0 {
			cfg.RegisterRateLimitIPThreshold = f.Auth.RegisterIPThreshold
		}
		if f.Auth.RegisterEmailThreshold > 0 {
			cfg.RegisterRateLimitIdentifierThreshold = f.Auth.RegisterEmailThreshold
		}
		if f.Auth.RateWindowSeconds > 0 {
			cfg.RateLimitWindow = time.Duration(f.Auth.RateWindowSeconds) * time.Second
		}
	}

	cfg.Environment = envOrDefault("APP_ENV", cfg.Environment)
	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.BcryptCost = envInt("BCRYPT_ROUNDS", cfg.BcryptCost)
	cfg.FailedThreshold = envInt("FAILED_LOGIN_THRESHOLD", cfg.FailedThreshold)
	cfg.LoginRateLimitIPThreshold = envInt("LOGIN_RATE_LIMIT_IP_THRESHOLD", cfg.LoginRateLimitIPThreshold)
	cfg.RegisterRateLimitIPThreshold = envInt("REGISTER_RATE_LIMIT_IP_THRESHOLD", cfg.RegisterRateLimitIPThreshold)
	cfg.RegisterRateLimitIdentifierThreshold = envInt("REGISTER_RATE_LIMIT_IDENTIFIER_THRESHOLD", cfg.RegisterRateLimitIdentifierThreshold)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))

	cfg.SessionTTL = time.Duration(envInt("SESSION_TTL_HOURS", int(cfg.SessionTTL.Hours()))) * time.Hour
	cfg.LockoutDuration = time.Duration(envInt("ACCOUNT_LOCKOUT_MINUTES", int(cfg.LockoutDuration.Minutes()))) * time.Minute
	cfg.RateLimitWindow = time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", int(cfg.RateLimitWindow.Seconds()))) * time.Second

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}
	if cfg.BcryptCost < 10 || cfg.BcryptCost > 16 {
		return Config{}, fmt.Errorf("BCRYPT_ROUNDS out of range: %d", cfg.BcryptCost)
	}

	return cfg, nil
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
