// Package config provides JWT configuration functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// JWTConfig holds configuration for token issuance and validation. A
// single HS256 secret signs the token used as both the bearer and reauth
// credential; RenewalWindow controls how close to expiry a presented
// token must be before reauthentication mints a replacement.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	RenewalWindow   time.Duration
}

// NewJWTConfig creates a new JWT configuration from environment variables.
// It reads JWT_SECRET (required), JWT_EXPIRATION_HOURS (default: 24) and
// JWT_RENEWAL_WINDOW_MINUTES (default: 15).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	expirationStr := os.Getenv("JWT_EXPIRATION_HOURS")
	if expirationStr == "" {
		expirationStr = "24"
	}
	expirationHours, err := strconv.Atoi(expirationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
	}

	windowStr := os.Getenv("JWT_RENEWAL_WINDOW_MINUTES")
	if windowStr == "" {
		windowStr = "15"
	}
	windowMinutes, err := strconv.Atoi(windowStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_RENEWAL_WINDOW_MINUTES: %v", err)
	}

	config := &JWTConfig{
		Secret:          secret,
		ExpirationHours: expirationHours,
		RenewalWindow:   time.Duration(windowMinutes) * time.Minute,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// Expiration returns the configured token lifetime.
func (c *JWTConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	if c.RenewalWindow < time.Minute {
		return fmt.Errorf("JWT_RENEWAL_WINDOW_MINUTES must be at least 1 minute")
	}
	if c.RenewalWindow >= c.Expiration() {
		return fmt.Errorf("renewal window must be shorter than the token lifetime")
	}
	return nil
}
