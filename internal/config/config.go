package config

import (
	"os"
	"strconv"
)

// Config holds the configuration values for the application.
type Config struct {
	ListenPort  string
	MongoURI    string
	SQLitePath  string
	PostgresURI string
	StaticDir   string

	// Rate limiting for the auth endpoints.
	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadConfig loads configuration from environment variables or uses default
// values. MONGODB_URI selects the document backend when set and reachable;
// otherwise the relational backend is used (SQLite file, or PostgreSQL when
// POSTGRES_URI is set).
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ListenPort:     envOr("LISTEN_PORT", "8080"),
		MongoURI:       os.Getenv("MONGODB_URI"),
		SQLitePath:     envOr("SQLITE_PATH", "hospital.db"),
		PostgresURI:    os.Getenv("POSTGRES_URI"),
		StaticDir:      envOr("STATIC_DIR", "./static"),
		RateLimitRPS:   5,
		RateLimitBurst: 10,
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = f
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitBurst = n
		}
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
