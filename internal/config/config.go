package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Defaults mirror what the service shipped with; only secrets and the
// database DSN have no usable default.
const (
	DefaultPort           = "8080"
	DefaultMaxQueryLength = 500
	DefaultRequestTimeout = 30 * time.Second
)

// Config is read once at startup and passed by construction. Nothing
// mutates it after Load.
type Config struct {
	Port           string
	DatabaseURL    string
	OpenAIKey      string
	JWTSecret      string
	MaxQueryLength int
	RequestTimeout time.Duration
	Dev            bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", DefaultPort),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		JWTSecret:      os.Getenv("JWT_SECRET_KEY"),
		MaxQueryLength: DefaultMaxQueryLength,
		RequestTimeout: DefaultRequestTimeout,
		Dev:            os.Getenv("APP_ENV") != "production",
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	if cfg.OpenAIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET_KEY is not set")
	}

	if v := os.Getenv("MAX_QUERY_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, errors.Errorf("invalid MAX_QUERY_LENGTH %q", v)
		}
		cfg.MaxQueryLength = n
	}
	if v := os.Getenv("RESPONSE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, errors.Errorf("invalid RESPONSE_TIMEOUT %q", v)
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
