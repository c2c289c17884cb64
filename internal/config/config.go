// Package config provides configuration for the webhook listener and
// any other binaries built on the SDK. Values load from environment
// variables, with an optional .env file via godotenv.
//
// Environment Variables:
//
//   - COINPAY_BASE_URL: Gateway base URL (default: https://api.coinpay.example)
//   - COINPAY_SECRET: Shared signing secret (plaintext)
//   - COINPAY_SECRET_ENC: Encrypted signing secret; requires COINPAY_ENCRYPTION_KEY
//   - COINPAY_ENCRYPTION_KEY: Passphrase for decrypting COINPAY_SECRET_ENC
//   - COINPAY_REPLAY_WINDOW: Webhook replay window (default: 30s)
//   - PORT: Webhook listener port (default: 8080)
//   - LOG_LEVEL: Logging level (default: info)
//
// Exactly one of COINPAY_SECRET and COINPAY_SECRET_ENC must be set.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/coinpay/coinpay-go/internal/secrets"
)

// Config holds all configuration values
type Config struct {
	BaseURL      string        // Gateway base URL
	Secret       string        // Shared signing secret (decrypted if needed)
	ReplayWindow time.Duration // Webhook replay window
	Port         string        // Webhook listener port
	LogLevel     string        // Logging level (debug, info, warn, error)
}

// Load reads configuration from the environment, loading a .env file
// first if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:      getEnvOrDefault("COINPAY_BASE_URL", "https://api.coinpay.example"),
		Secret:       os.Getenv("COINPAY_SECRET"),
		ReplayWindow: 30 * time.Second,
		Port:         getEnvOrDefault("PORT", "8080"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
	}

	if raw := os.Getenv("COINPAY_REPLAY_WINDOW"); raw != "" {
		window, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config: invalid COINPAY_REPLAY_WINDOW %q: %w", raw, err)
		}
		cfg.ReplayWindow = window
	}

	if enc := os.Getenv("COINPAY_SECRET_ENC"); enc != "" {
		if cfg.Secret != "" {
			return nil, fmt.Errorf("config: set only one of COINPAY_SECRET and COINPAY_SECRET_ENC")
		}
		passphrase := os.Getenv("COINPAY_ENCRYPTION_KEY")
		if passphrase == "" {
			return nil, fmt.Errorf("config: COINPAY_SECRET_ENC requires COINPAY_ENCRYPTION_KEY")
		}
		encryptor, err := secrets.NewEncryptor(passphrase)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		secret, err := encryptor.Decrypt(enc)
		if err != nil {
			return nil, fmt.Errorf("config: failed to decrypt COINPAY_SECRET_ENC: %w", err)
		}
		cfg.Secret = secret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("config: COINPAY_SECRET or COINPAY_SECRET_ENC is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("config: COINPAY_BASE_URL cannot be empty")
	}
	if c.ReplayWindow <= 0 {
		return fmt.Errorf("config: replay window must be positive")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
