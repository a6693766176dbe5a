package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads configuration from the given path, or searches standard
// locations when path is empty. Environment overrides apply last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// findConfigFile searches standard locations for a config file.
func findConfigFile() string {
	candidates := []string{
		".proofy.yaml",
		".proofy.yml",
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", "proofy", "config.yaml"),
			filepath.Join(home, ".proofy.yaml"),
		)
	}

	candidates = append(candidates, "/etc/proofy/config.yaml")

	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// applyEnvOverrides applies PROOFY_* environment variables on top of
// whatever the file provided.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PROOFY_GATEWAY_PROVIDER"); v != "" {
		cfg.Gateway.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("PROOFY_GATEWAY_MODEL"); v != "" {
		cfg.Gateway.Model = v
	}
	if v := os.Getenv("PROOFY_GATEWAY_API_KEY"); v != "" {
		cfg.Gateway.APIKey = v
	}
	if v := os.Getenv("PROOFY_GATEWAY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Gateway.Timeout = d
		}
	}
	if v := os.Getenv("PROOFY_HISTORY_PATH"); v != "" {
		cfg.Storage.HistoryPath = v
	}
	if v := os.Getenv("PROOFY_OUTPUT_FORMAT"); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}
	if v := os.Getenv("PROOFY_COLOR_MODE"); v != "" {
		cfg.Output.ColorMode = strings.ToLower(v)
	}
	if v := os.Getenv("PROOFY_VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Output.Verbose = b
		}
	}
	if v := os.Getenv("PROOFY_LIVE_WATCH_DIR"); v != "" {
		cfg.Live.WatchDir = v
	}
}

// ResolveAPIKey returns the configured key, falling back to the
// provider's conventional environment variable.
func (g *GatewayConfig) ResolveAPIKey() string {
	if g.APIKey != "" {
		return g.APIKey
	}
	switch g.Provider {
	case "gemini":
		if v := os.Getenv("GEMINI_API_KEY"); v != "" {
			return v
		}
		return os.Getenv("GOOGLE_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	}
	return ""
}
