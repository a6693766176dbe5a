package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Gateway.Provider != "gemini" {
		t.Errorf("default provider = %q, want gemini", cfg.Gateway.Provider)
	}
	if cfg.Output.DefaultFormat != "terminal" {
		t.Errorf("default format = %q, want terminal", cfg.Output.DefaultFormat)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"openai provider", func(c *Config) { c.Gateway.Provider = "openai" }, false},
		{"unknown provider", func(c *Config) { c.Gateway.Provider = "anthropic" }, true},
		{"empty provider", func(c *Config) { c.Gateway.Provider = "" }, true},
		{"unknown format", func(c *Config) { c.Output.DefaultFormat = "xml" }, true},
		{"unknown color mode", func(c *Config) { c.Output.ColorMode = "sometimes" }, true},
		{"negative timeout", func(c *Config) { c.Gateway.Timeout = -time.Second }, true},
		{"empty history path", func(c *Config) { c.Storage.HistoryPath = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `version: "1.0"
gateway:
  provider: openai
  model: gpt-4o
  timeout: 30s
storage:
  history_path: /tmp/proofy-history.json
output:
  default_format: json
  verbose: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Gateway.Provider != "openai" {
		t.Errorf("provider = %q, want openai", cfg.Gateway.Provider)
	}
	if cfg.Gateway.Model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", cfg.Gateway.Model)
	}
	if cfg.Gateway.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cfg.Gateway.Timeout)
	}
	if cfg.Storage.HistoryPath != "/tmp/proofy-history.json" {
		t.Errorf("history path = %q", cfg.Storage.HistoryPath)
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("format = %q, want json", cfg.Output.DefaultFormat)
	}
	if !cfg.Output.Verbose {
		t.Error("verbose should be true")
	}
	// unset fields keep defaults
	if cfg.Live.Settle != 2*time.Second {
		t.Errorf("settle = %v, want default 2s", cfg.Live.Settle)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("gateway: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for explicitly named missing file")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("gateway:\n  provider: friendface\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for unknown provider")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PROOFY_GATEWAY_PROVIDER", "OPENAI")
	t.Setenv("PROOFY_GATEWAY_MODEL", "gpt-4o-mini")
	t.Setenv("PROOFY_HISTORY_PATH", "/var/lib/proofy/history.json")
	t.Setenv("PROOFY_OUTPUT_FORMAT", "markdown")
	t.Setenv("PROOFY_VERBOSE", "true")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Gateway.Provider != "openai" {
		t.Errorf("provider = %q, want openai (lowered)", cfg.Gateway.Provider)
	}
	if cfg.Gateway.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", cfg.Gateway.Model)
	}
	if cfg.Storage.HistoryPath != "/var/lib/proofy/history.json" {
		t.Errorf("history path = %q", cfg.Storage.HistoryPath)
	}
	if cfg.Output.DefaultFormat != "markdown" {
		t.Errorf("format = %q", cfg.Output.DefaultFormat)
	}
	if !cfg.Output.Verbose {
		t.Error("verbose should be true")
	}
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-gemini")
	t.Setenv("OPENAI_API_KEY", "env-openai")

	g := GatewayConfig{Provider: "gemini", APIKey: "explicit"}
	if got := g.ResolveAPIKey(); got != "explicit" {
		t.Errorf("explicit key not preferred, got %q", got)
	}

	g = GatewayConfig{Provider: "gemini"}
	if got := g.ResolveAPIKey(); got != "env-gemini" {
		t.Errorf("gemini env fallback = %q", got)
	}

	g = GatewayConfig{Provider: "openai"}
	if got := g.ResolveAPIKey(); got != "env-openai" {
		t.Errorf("openai env fallback = %q", got)
	}
}
