package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Gateway GatewayConfig `yaml:"gateway" json:"gateway"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Live    LiveConfig    `yaml:"live" json:"live"`
}

// GatewayConfig configures the analysis gateway provider.
type GatewayConfig struct {
	Provider string        `yaml:"provider" json:"provider"` // gemini|openai
	Model    string        `yaml:"model" json:"model"`       // model identifier
	APIKey   string        `yaml:"api_key" json:"api_key"`   // credential (env var usually)
	Timeout  time.Duration `yaml:"timeout" json:"timeout"`   // per-request timeout
}

// StorageConfig configures local persistence.
type StorageConfig struct {
	HistoryPath string   `yaml:"history_path" json:"history_path"` // persisted history location
	SignalDirs  []string `yaml:"signal_dirs" json:"signal_dirs"`   // extra signal catalog directories
}

// OutputConfig configures report formatting and display.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // terminal|json|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
}

// LiveConfig configures the live directory scanner.
type LiveConfig struct {
	WatchDir string        `yaml:"watch_dir" json:"watch_dir"`
	Settle   time.Duration `yaml:"settle" json:"settle"` // wait after a write before interrogating
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Gateway: GatewayConfig{
			Provider: "gemini",
			Timeout:  90 * time.Second,
		},
		Storage: StorageConfig{
			HistoryPath: defaultHistoryPath(),
		},
		Output: OutputConfig{
			DefaultFormat: "terminal",
			ColorMode:     "auto",
		},
		Live: LiveConfig{
			Settle: 2 * time.Second,
		},
	}
}

// Validate checks closed-set fields and value ranges.
func (c *Config) Validate() error {
	switch c.Gateway.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("invalid gateway provider: %s (must be one of: gemini, openai)", c.Gateway.Provider)
	}

	switch c.Output.DefaultFormat {
	case "terminal", "json", "markdown", "csv", "":
	default:
		return fmt.Errorf("invalid output format: %s (must be one of: terminal, json, markdown, csv)", c.Output.DefaultFormat)
	}

	switch c.Output.ColorMode {
	case "auto", "always", "never", "":
	default:
		return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
	}

	if c.Gateway.Timeout < 0 {
		return fmt.Errorf("gateway timeout must be non-negative")
	}
	if c.Live.Settle < 0 {
		return fmt.Errorf("live settle must be non-negative")
	}
	if c.Storage.HistoryPath == "" {
		return fmt.Errorf("history_path must not be empty")
	}
	return nil
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".proofy", "history.json")
	}
	return filepath.Join(home, ".config", "proofy", "history.json")
}
