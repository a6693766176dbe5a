package cli

import (
	"fmt"
	"os"

	"github.com/proofylabs/proofy/internal/config"
	"github.com/proofylabs/proofy/internal/gateway"
	"github.com/proofylabs/proofy/internal/gateway/providers/gemini"
	"github.com/proofylabs/proofy/internal/gateway/providers/openai"
	"github.com/proofylabs/proofy/internal/history"
	"github.com/proofylabs/proofy/internal/logger"
	"github.com/proofylabs/proofy/internal/session"
)

func newProviderRegistry() *gateway.Registry {
	registry := gateway.NewRegistry()
	_ = registry.Register("gemini", gemini.New)
	_ = registry.Register("openai", openai.New)
	return registry
}

// newProvider builds the configured gateway provider. A missing credential is
// not an error here; it surfaces as a classified gateway error at call time.
func newProvider(cfg *config.Config) (gateway.Provider, error) {
	registry := newProviderRegistry()
	provider, err := registry.Create(cfg.Gateway.Provider, cfg.Gateway.ResolveAPIKey(), cfg.Gateway.Model)
	if err != nil {
		return nil, fmt.Errorf("creating %s provider: %w", cfg.Gateway.Provider, err)
	}
	return provider, nil
}

func newLogger(component string) *logger.Logger {
	return logger.New(component, isVerbose)
}

// newHistoryStore opens and loads the persisted case history. Load is
// fail-soft; a missing or corrupt file degrades to an empty store.
func newHistoryStore(cfg *config.Config) *history.Store {
	store := history.NewStore(cfg.Storage.HistoryPath, newLogger("history"))
	store.Load()
	return store
}

// terminalKeySelector is the credential-recovery affordance for a CLI
// session: it can only point the operator at the environment variable.
type terminalKeySelector struct {
	provider string
}

func (s *terminalKeySelector) OpenSelectKey() {
	envVar := "GEMINI_API_KEY"
	if s.provider == "openai" {
		envVar = "OPENAI_API_KEY"
	}
	fmt.Fprintf(os.Stderr, "\nNo API credential configured. Set %s or add api_key to your config file.\n", envVar)
}

func newCoordinator(cfg *config.Config) *session.Coordinator {
	keys := &terminalKeySelector{provider: cfg.Gateway.Provider}
	return session.New(newHistoryStore(cfg), keys, newLogger("session"))
}
