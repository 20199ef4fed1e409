package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lightprotocol/light-mcp/internal/logger"
)

const (
	ServerName    = "light-mcp"
	ServerVersion = "1.1.1"
)

type Config struct {
	// Corpus source; empty means the embedded documentation
	DocsDir string

	// Logging
	LogLevel  string
	LogPretty bool

	// HTTP surface
	HTTPAddr          string
	HeartbeatInterval time.Duration
	ShutdownTimeout   time.Duration

	// Cursor integration
	CursorConfigPath string
}

func Load() Config {
	return load(os.Getenv)
}

func load(getenv func(string) string) Config {
	cfg := Config{
		DocsDir: getenv("LIGHT_MCP_DOCS_DIR"),

		LogLevel:  envOr(getenv, "LIGHT_MCP_LOG_LEVEL", "info"),
		LogPretty: envBool(getenv, "LIGHT_MCP_LOG_PRETTY", false),

		HTTPAddr:          envOr(getenv, "LIGHT_MCP_HTTP_ADDR", ":8080"),
		HeartbeatInterval: envDuration(getenv, "LIGHT_MCP_HEARTBEAT_INTERVAL", 15*time.Second),
		ShutdownTimeout:   envDuration(getenv, "LIGHT_MCP_SHUTDOWN_TIMEOUT", 10*time.Second),

		CursorConfigPath: envOr(getenv, "LIGHT_MCP_CURSOR_CONFIG", defaultCursorConfigPath()),
	}

	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = 15 * time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DocsDir != "" {
		info, err := os.Stat(c.DocsDir)
		if err != nil {
			return fmt.Errorf("docs dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("docs dir %s is not a directory", c.DocsDir)
		}
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("http address is required")
	}
	return nil
}

func defaultCursorConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cursor", "mcp.json")
	}
	return filepath.Join(home, ".cursor", "mcp.json")
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(getenv func(string) string, key string, fallback bool) bool {
	if v := getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return b
	}
	return fallback
}

func envDuration(getenv func(string) string, key string, fallback time.Duration) time.Duration {
	if v := getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fallback
		}
		return d
	}
	return fallback
}
