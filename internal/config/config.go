package config

import (
	"fmt"
	"os"
	"strconv"
)

// Server holds the HTTP server configuration, read from the environment.
type Server struct {
	Port            int
	DBPath          string
	StaticDir       string
	SessionTTLHours int
	LogLevel        string
}

// LoadServer reads the server configuration from environment variables.
func LoadServer() (*Server, error) {
	cfg := &Server{
		Port:            envInt("PORT", 8080),
		DBPath:          envStr("DB_PATH", "conference.db"),
		StaticDir:       envStr("STATIC_DIR", "static"),
		SessionTTLHours: envInt("SESSION_TTL_HOURS", 24*14),
		LogLevel:        envStr("LOG_LEVEL", "info"),
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Server) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH must not be empty")
	}
	if c.StaticDir == "" {
		return fmt.Errorf("STATIC_DIR must not be empty")
	}
	if c.SessionTTLHours < 1 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive, got %d", c.SessionTTLHours)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
