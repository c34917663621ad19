package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// ResultLimit is the default pagination limit for error and entry lists.
	ResultLimit int

	// MaxInlineSize caps inline document content, in bytes.
	MaxInlineSize int

	// IncludeWarnings controls whether validate returns warnings by default.
	IncludeWarnings bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from VALKIT_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		ResultLimit:     envInt("VALKIT_MCP_RESULT_LIMIT", 100),
		MaxInlineSize:   envInt("VALKIT_MCP_MAX_INLINE_SIZE", 1<<20),
		IncludeWarnings: envBool("VALKIT_MCP_INCLUDE_WARNINGS", true),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
