package config

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Config holds the dashboard server configuration plus the Proxmox
// connection settings.
//
// The Proxmox variables are deliberately not validated here: a missing
// credential is a client-construction error (see proxmox.New) and the
// server boots in a degraded state rather than refusing to start.
type Config struct {
	Environment  string        `env:"ENVIRONMENT,default=dev"`
	Host         string        `env:"HOST,default=0.0.0.0"`
	Port         int           `env:"PORT,default=8080"`
	LogLevel     string        `env:"LOG_LEVEL,default=debug"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=60s"`

	AllowedOrigins string `env:"ALLOWED_ORIGINS,default=*"`
	RateLimitRPS   int    `env:"RATE_LIMIT_RPS,default=25"`
	RateLimitBurst int    `env:"RATE_LIMIT_BURST,default=50"`

	ProxmoxHost        string `env:"PROXMOX_HOST"`
	ProxmoxNode        string `env:"PROXMOX_NODE"`
	ProxmoxTokenID     string `env:"PROXMOX_TOKEN_ID"`
	ProxmoxTokenSecret string `env:"PROXMOX_TOKEN_SECRET"`
}

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"staging": true,
	"prod":    true,
}

// NewConfig loads the configuration from the environment. A .env file
// in the working directory is read first if present (values already
// set in the environment win).
func NewConfig() (*Config, error) {
	// missing .env is fine - credentials can come from the real environment
	_ = godotenv.Load()

	var cfg Config

	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid environment '%s'. Valid environments: dev, test, staging, prod", cfg.Environment)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}

	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %v", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive, got %v", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive, got %v", cfg.IdleTimeout)
	}

	if cfg.RateLimitRPS < 1 {
		return fmt.Errorf("rate limit rps must be positive, got %d", cfg.RateLimitRPS)
	}
	if cfg.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit burst must be positive, got %d", cfg.RateLimitBurst)
	}

	return nil
}
