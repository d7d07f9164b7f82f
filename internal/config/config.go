// Package config loads server configuration from the environment.
//
// The MCP server usually runs as a subprocess of the main backend, so
// environment variables are either inherited from the parent process or
// loaded from an optional .env file in the working directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// ServerName identifies this MCP server to clients.
const ServerName = "sahay-mcp-server"

// UserKeyEnvPrefix is the prefix for per-user API key seeding:
// MCP_USER_API_KEY_<user_id>=<api_key>.
const UserKeyEnvPrefix = "MCP_USER_API_KEY_"

// Config holds all runtime configuration for the server.
type Config struct {
	// DataDir is where the SQLite database lives.
	DataDir string

	// AdminAPIKey, when set, grants access to any user identifier and
	// enables external-client API key mode.
	AdminAPIKey string

	// InsightAPIKey enables the generative-model insight client when set.
	InsightAPIKey string
	// InsightBaseURL overrides the API endpoint (e.g. Gemini's
	// OpenAI-compatible endpoint). Empty means the client default.
	InsightBaseURL string
	// InsightModel is the model identifier used for insight generation.
	InsightModel string
	// InsightTimeout bounds each model request.
	InsightTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present; missing files are not
// an error since variables are normally inherited from the parent.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DataDir:        os.Getenv("SAHAY_DATA_DIR"),
		AdminAPIKey:    os.Getenv("MCP_ADMIN_API_KEY"),
		InsightAPIKey:  os.Getenv("INSIGHT_API_KEY"),
		InsightBaseURL: os.Getenv("INSIGHT_BASE_URL"),
		InsightModel:   getEnv("INSIGHT_MODEL", "gemini-2.0-flash"),
		InsightTimeout: 30 * time.Second,
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolving home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".sahay")
	}

	if raw := os.Getenv("INSIGHT_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parsing INSIGHT_TIMEOUT: %w", err)
		}
		cfg.InsightTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks invariants that would otherwise surface as confusing
// runtime failures.
func (c Config) Validate() error {
	if c.InsightTimeout <= 0 {
		return fmt.Errorf("insight timeout must be positive, got %s", c.InsightTimeout)
	}
	if c.InsightBaseURL != "" && c.InsightAPIKey == "" {
		return fmt.Errorf("INSIGHT_BASE_URL is set but INSIGHT_API_KEY is empty")
	}
	return nil
}

// InsightEnabled reports whether the generative-model client should be wired.
func (c Config) InsightEnabled() bool {
	return c.InsightAPIKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
