package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	defaultServerAddr     = "localhost:50051"
	defaultRequestTimeout = 30 * time.Second
	defaultLogLevel       = "info"
)

var ErrMissingAPIKey = errors.New("API_KEY environment variable is required")

type Config struct {
	ServerAddr     string
	APIKey         string
	RequestTimeout time.Duration
	LogLevel       string
	// LogFile is where logs go while the TUI owns the terminal
	LogFile string
}

// Load reads .env files (if any) and then the environment. A missing .env is
// only logged.
func Load(logger *log.Logger, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		logger.Warn("could not load .env file", "err", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		ServerAddr:     normalizeServerAddr(os.Getenv("GRPC_SERVER")),
		APIKey:         os.Getenv("API_KEY"),
		RequestTimeout: defaultRequestTimeout,
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogFile:        os.Getenv("LOG_FILE"),
	}

	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	if raw := os.Getenv("REQUEST_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q: %w", raw, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q: must be positive", raw)
		}
		cfg.RequestTimeout = d
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	return cfg, nil
}

// normalizeServerAddr turns a URL-ish server setting into a gRPC target.
func normalizeServerAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return defaultServerAddr
	}
	// gRPC doesn't use HTTP URLs
	addr = strings.TrimPrefix(addr, "https://")
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimSuffix(addr, "/")
	if !strings.Contains(addr, ":") {
		addr += ":443"
	}
	return addr
}
