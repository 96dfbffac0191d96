package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the limiter's tier budgets and client lists.
type Config struct {
	Enabled         bool
	CleanupInterval time.Duration
	// IdleTTL is how long an untouched client bucket survives cleanup.
	IdleTTL   time.Duration
	Whitelist map[string]bool
	Blacklist map[string]bool
	Tiers     map[Tier]TierLimit
}

// DefaultConfig returns the built-in tier budgets.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		Tiers: map[Tier]TierLimit{
			// PDF generation runs a headless browser; keep it scarce.
			TierGenerate: {Limit: 10, Window: time.Hour, Burst: 2},
			TierAuth:     {Limit: 20, Window: time.Minute, Burst: 5},
			TierSync:     {Limit: 200, Window: time.Minute, Burst: 20},
			TierDefault:  {Limit: 1000, Window: time.Minute},
		},
	}
}

// LoadConfig reads the limiter configuration from environment variables,
// starting from the defaults.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = getEnvBool("RATE_LIMIT_ENABLED", true)
	if !cfg.Enabled {
		return cfg
	}

	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST"))

	if n := getEnvInt("RATE_LIMIT_GENERATE_PER_HOUR", 0); n > 0 {
		cfg.Tiers[TierGenerate] = TierLimit{Limit: n, Window: time.Hour, Burst: cfg.Tiers[TierGenerate].Burst}
	}
	if n := getEnvInt("RATE_LIMIT_AUTH_PER_MINUTE", 0); n > 0 {
		cfg.Tiers[TierAuth] = TierLimit{Limit: n, Window: time.Minute, Burst: cfg.Tiers[TierAuth].Burst}
	}
	if n := getEnvInt("RATE_LIMIT_SYNC_PER_MINUTE", 0); n > 0 {
		cfg.Tiers[TierSync] = TierLimit{Limit: n, Window: time.Minute, Burst: cfg.Tiers[TierSync].Burst}
	}
	return cfg
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
