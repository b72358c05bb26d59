package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	TLSCert         string // plain HTTP when either TLS file is empty
	TLSKey          string
	DatabaseURL     string // project storage and accounts are off when empty
	TokenKey        string
	LogLevel        string
	RateLimitRPS    float64
	RateLimitBurst  int
	ShutdownTimeout time.Duration
	StaticDir       string // front-end bundle served at /, none when empty
}

func (c *Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// Load reads .env files (if present) and then the environment.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	logLevel := getEnvOrDefault("LOG_LEVEL", "info")
	if os.Getenv("DEBUG") == "1" {
		logLevel = "debug"
	}

	cfg := &Config{
		Addr:        getEnvOrDefault("ADDR", ":8443"),
		TLSCert:     os.Getenv("TLS_CERT"),
		TLSKey:      os.Getenv("TLS_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		TokenKey:    os.Getenv("TOKEN_KEY"),
		LogLevel:    logLevel,
		StaticDir:   os.Getenv("STATIC_DIR"),
	}

	var err error
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnvOrDefault("RATE_LIMIT_RPS", "1"), 64); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnvOrDefault("RATE_LIMIT_BURST", "3")); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(getEnvOrDefault("SHUTDOWN_TIMEOUT", "5s")); err != nil {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}

	if cfg.DatabaseURL != "" && cfg.TokenKey == "" {
		return nil, errors.New("TOKEN_KEY environment variable is not set")
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
