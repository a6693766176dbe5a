package signals

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/proofylabs/proofy/internal/forensic"
)

func TestLoadDefaults(t *testing.T) {
	sigs, err := LoadDefaults()
	if err != nil {
		t.Fatalf("LoadDefaults() error = %v", err)
	}
	if len(sigs) == 0 {
		t.Fatal("embedded catalog is empty")
	}
	for _, s := range sigs {
		if err := s.Validate(); err != nil {
			t.Errorf("embedded signal invalid: %v", err)
		}
	}
}

func TestSignalValidate(t *testing.T) {
	tests := []struct {
		name    string
		signal  Signal
		wantErr bool
	}{
		{
			"valid",
			Signal{ID: "x", Name: "X", Category: forensic.CategoryVisual, Severity: "high"},
			false,
		},
		{
			"missing id",
			Signal{Name: "X", Category: forensic.CategoryVisual, Severity: "high"},
			true,
		},
		{
			"missing name",
			Signal{ID: "x", Category: forensic.CategoryVisual, Severity: "high"},
			true,
		},
		{
			"unknown category",
			Signal{ID: "x", Name: "X", Category: "spectral", Severity: "high"},
			true,
		},
		{
			"unknown severity",
			Signal{ID: "x", Name: "X", Category: forensic.CategoryAudio, Severity: "critical"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.signal.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `- id: custom-1
  name: Custom signature
  category: audio
  severity: low
  description: A local addition.
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sigs, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if len(sigs) != 1 || sigs[0].ID != "custom-1" {
		t.Errorf("got %+v", sigs)
	}
}

func TestLoadFromFileSingleDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "one.yml")
	content := `id: solo
name: Solo signal
category: temporal
severity: medium
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sigs, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if len(sigs) != 1 || sigs[0].ID != "solo" {
		t.Errorf("got %+v", sigs)
	}
}

func TestLoadFromFileRejectsBadExtension(t *testing.T) {
	if _, err := LoadFromFile("signals.json"); err == nil {
		t.Error("expected error for non-yaml extension")
	}
}

func TestLoadFromFileRejectsInvalidSignal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	content := `- id: bad
  name: Bad
  category: psychic
  severity: high
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeSignal := func(name, id string) {
		content := "- id: " + id + "\n  name: N\n  category: visual\n  severity: low\n"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeSignal("a.yaml", "sig-a")
	writeSignal("b.yml", "sig-b")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	sigs, err := LoadFromDirectory(dir)
	if err != nil {
		t.Fatalf("LoadFromDirectory() error = %v", err)
	}
	if len(sigs) != 2 {
		t.Errorf("got %d signals, want 2", len(sigs))
	}
}

func TestCatalog(t *testing.T) {
	defaults, err := LoadDefaults()
	if err != nil {
		t.Fatal(err)
	}
	override := []*Signal{
		{ID: defaults[0].ID, Name: "Replaced", Category: forensic.CategoryOther, Severity: "low"},
		{ID: "extra", Name: "Extra", Category: forensic.CategoryAudio, Severity: "medium"},
	}

	c := NewCatalog(defaults, override)

	if c.Len() != len(defaults)+1 {
		t.Errorf("Len() = %d, want %d", c.Len(), len(defaults)+1)
	}
	if got := c.ByID(defaults[0].ID); got == nil || got.Name != "Replaced" {
		t.Errorf("override did not win: %+v", got)
	}
	if got := c.ByID("extra"); got == nil {
		t.Error("extra signal missing")
	}
	if got := c.ByID("nope"); got != nil {
		t.Errorf("ByID(nope) = %+v, want nil", got)
	}

	audio := c.ByCategory(forensic.CategoryAudio)
	for _, s := range audio {
		if s.Category != forensic.CategoryAudio {
			t.Errorf("ByCategory returned %s signal", s.Category)
		}
	}
}
