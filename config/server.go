package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by LoadServerConfig.
const (
	EnvPort            = "SEGMENTER_PORT"
	EnvDataDir         = "SEGMENTER_DATA_DIR"
	EnvMaxRequestBytes = "SEGMENTER_MAX_REQUEST_BYTES"
	EnvRateLimit       = "SEGMENTER_RATE_LIMIT"
	EnvRateBurst       = "SEGMENTER_RATE_BURST"
	EnvMaxWorkers      = "SEGMENTER_MAX_WORKERS"
)

// ServerConfig holds process-level settings for the HTTP server.
type ServerConfig struct {
	Port               string
	DataDir            string
	MaxRequestBytes    int64
	RateLimitPerSecond float64 // 0 disables rate limiting
	RateLimitBurst     int
	MaxWorkers         int
}

// DefaultServerConfig returns the configuration used when nothing is set.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:               "8080",
		DataDir:            "./segmenter_data",
		MaxRequestBytes:    10 << 20,
		RateLimitPerSecond: 50,
		RateLimitBurst:     100,
		MaxWorkers:         4,
	}
}

// LoadServerConfig builds a ServerConfig from the environment on top of the defaults.
// Callers wanting .env support load it into the environment first.
func LoadServerConfig() (ServerConfig, error) {
	cfg := DefaultServerConfig()

	if v := os.Getenv(EnvPort); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvMaxRequestBytes); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid %s '%s': must be a positive integer", EnvMaxRequestBytes, v)
		}
		cfg.MaxRequestBytes = n
	}
	if v := os.Getenv(EnvRateLimit); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			return cfg, fmt.Errorf("invalid %s '%s': must be a non-negative number", EnvRateLimit, v)
		}
		cfg.RateLimitPerSecond = rps
	}
	if v := os.Getenv(EnvRateBurst); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil || burst <= 0 {
			return cfg, fmt.Errorf("invalid %s '%s': must be a positive integer", EnvRateBurst, v)
		}
		cfg.RateLimitBurst = burst
	}
	if v := os.Getenv(EnvMaxWorkers); v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil || workers <= 0 {
			return cfg, fmt.Errorf("invalid %s '%s': must be a positive integer", EnvMaxWorkers, v)
		}
		cfg.MaxWorkers = workers
	}

	return cfg, nil
}
