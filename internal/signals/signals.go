package signals

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/proofylabs/proofy/internal/forensic"
)

//go:embed embedded_signals.yaml
var defaultSignalsYAML []byte

// Signal describes a known fabrication signature that analysts can
// consult while reviewing a verdict.
type Signal struct {
	ID          string                       `yaml:"id" json:"id"`
	Name        string                       `yaml:"name" json:"name"`
	Category    forensic.ExplanationCategory `yaml:"category" json:"category"`
	Severity    string                       `yaml:"severity" json:"severity"` // low|medium|high
	Description string                       `yaml:"description" json:"description"`
	Indicators  []string                     `yaml:"indicators,omitempty" json:"indicators,omitempty"`
}

// Validate checks required fields and closed sets.
func (s *Signal) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("signal id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("signal %s: name is required", s.ID)
	}
	switch s.Category {
	case forensic.CategoryVisual, forensic.CategoryAudio, forensic.CategoryTemporal, forensic.CategoryOther:
	default:
		return fmt.Errorf("signal %s: unknown category %q", s.ID, s.Category)
	}
	switch s.Severity {
	case "low", "medium", "high":
	default:
		return fmt.Errorf("signal %s: unknown severity %q", s.ID, s.Severity)
	}
	return nil
}

// LoadDefaults returns the embedded signal catalog.
func LoadDefaults() ([]*Signal, error) {
	return parse(defaultSignalsYAML)
}

// LoadFromFile loads signals from a single YAML file.
func LoadFromFile(filename string) ([]*Signal, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported signal file extension: %s", ext)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return parse(data)
}

// LoadFromDirectory loads all signal files from a directory tree.
func LoadFromDirectory(directory string) ([]*Signal, error) {
	var all []*Signal
	err := filepath.Walk(directory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}
		loaded, err := LoadFromFile(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		all = append(all, loaded...)
		return nil
	})
	return all, err
}

func parse(data []byte) ([]*Signal, error) {
	// Try a single signal first
	var single Signal
	if err := yaml.Unmarshal(data, &single); err == nil && single.ID != "" {
		if err := single.Validate(); err != nil {
			return nil, err
		}
		return []*Signal{&single}, nil
	}

	var list []*Signal
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	for _, s := range list {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Catalog provides lookup over a loaded signal set.
type Catalog struct {
	signals []*Signal
	byID    map[string]*Signal
}

// NewCatalog builds a catalog, later entries overriding earlier ones by ID.
func NewCatalog(sets ...[]*Signal) *Catalog {
	c := &Catalog{byID: make(map[string]*Signal)}
	for _, set := range sets {
		for _, s := range set {
			if _, exists := c.byID[s.ID]; !exists {
				c.signals = append(c.signals, s)
			} else {
				for i, existing := range c.signals {
					if existing.ID == s.ID {
						c.signals[i] = s
						break
					}
				}
			}
			c.byID[s.ID] = s
		}
	}
	return c
}

// All returns the catalog entries in load order.
func (c *Catalog) All() []*Signal {
	out := make([]*Signal, len(c.signals))
	copy(out, c.signals)
	return out
}

// ByID returns the signal with the given ID, or nil.
func (c *Catalog) ByID(id string) *Signal {
	return c.byID[id]
}

// ByCategory returns signals in the given category, in load order.
func (c *Catalog) ByCategory(cat forensic.ExplanationCategory) []*Signal {
	var out []*Signal
	for _, s := range c.signals {
		if s.Category == cat {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of cataloged signals.
func (c *Catalog) Len() int {
	return len(c.signals)
}
