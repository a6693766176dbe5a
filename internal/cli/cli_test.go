package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/proofylabs/proofy/internal/forensic"
)

func TestCollectMediaPaths(t *testing.T) {
	dir := t.TempDir()
	write := func(name string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	write("clip.mp4")
	write("portrait.jpg")
	write("notes.txt")
	write("voice.mp3")

	paths, err := collectMediaPaths([]string{dir})
	if err != nil {
		t.Fatalf("collectMediaPaths() error = %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("got %d paths, want 3 (txt excluded): %v", len(paths), paths)
	}
	for _, p := range paths {
		if filepath.Ext(p) == ".txt" {
			t.Errorf("non-media file included: %s", p)
		}
	}
}

func TestCollectMediaPathsExplicitFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "anything.bin")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Explicit file arguments bypass the media filter.
	paths, err := collectMediaPaths([]string{path})
	if err != nil {
		t.Fatalf("collectMediaPaths() error = %v", err)
	}
	if len(paths) != 1 || paths[0] != path {
		t.Errorf("got %v", paths)
	}
}

func TestCollectMediaPathsMissing(t *testing.T) {
	if _, err := collectMediaPaths([]string{"/nonexistent/dir"}); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestFindCase(t *testing.T) {
	entries := []*forensic.AnalysisResult{
		{ID: "4f1c2a9e-0000-0000-0000-000000000001", Timestamp: time.Now()},
		{ID: "4f99aaaa-0000-0000-0000-000000000002", Timestamp: time.Now()},
		{ID: "b0b0b0b0-0000-0000-0000-000000000003", Timestamp: time.Now()},
	}

	tests := []struct {
		name    string
		query   string
		wantID  string
		wantErr bool
	}{
		{"exact match", entries[2].ID, entries[2].ID, false},
		{"unique prefix", "4f1c", entries[0].ID, false},
		{"ambiguous prefix", "4f", "", true},
		{"too short prefix", "4f1", "", true},
		{"no match", "deadbeef", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := findCase(entries, tt.query)
			if (err != nil) != tt.wantErr {
				t.Fatalf("findCase() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got.ID != tt.wantID {
				t.Errorf("findCase() = %s, want %s", got.ID, tt.wantID)
			}
		})
	}
}

func TestRootCommandWiring(t *testing.T) {
	root := NewRootCommand("1.2.3", "abc123", "2026-01-01")

	want := map[string]bool{
		"scan":       false,
		"batch":      false,
		"ground":     false,
		"transcribe": false,
		"text":       false,
		"forge":      false,
		"live":       false,
		"history":    false,
		"signals":    false,
		"version":    false,
	}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %s not registered", name)
		}
	}
}

func TestProviderRegistry(t *testing.T) {
	registry := newProviderRegistry()

	names := registry.List()
	if len(names) != 2 {
		t.Fatalf("got %d providers, want 2: %v", len(names), names)
	}

	for _, name := range []string{"gemini", "openai"} {
		provider, err := registry.Create(name, "test-key", "")
		if err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
		if provider.Name() != name {
			t.Errorf("provider name = %s, want %s", provider.Name(), name)
		}
		if err := provider.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}

	if _, err := registry.Create("anthropic", "k", ""); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestFormatGroundingReport(t *testing.T) {
	report := &forensic.GroundingReport{
		ID:          "gr-1",
		OriginFound: true,
		Assessment:  "Derived from an archived press photo.",
		Sources: []forensic.GroundingSource{
			{Title: "Press archive", URL: "https://example.com/a", Similarity: 0.92},
			{Title: "Stock frame", URL: "https://example.com/b", Similarity: 0.4},
		},
		Alterations:  []string{"face swap around the jawline"},
		FileMetadata: forensic.FileMetadata{Name: "suspect.jpg", Size: "1.20 MB", Type: "image/jpeg"},
	}

	out, err := formatGroundingReport(report)
	if err != nil {
		t.Fatalf("formatGroundingReport() error = %v", err)
	}
	text := string(out)

	// Similarity arrives as a [0,1] fraction and must render as a percentage.
	if !strings.Contains(text, "92% similar") {
		t.Errorf("0.92 should render as 92%% similar, got:\n%s", text)
	}
	if !strings.Contains(text, "40% similar") {
		t.Errorf("0.4 should render as 40%% similar, got:\n%s", text)
	}
	for _, want := range []string{"suspect.jpg", "probable origin located", "face swap around the jawline"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPruneSeen(t *testing.T) {
	window := 2 * time.Second
	seen := map[string]time.Time{
		"stale.mp4": time.Now().Add(-3 * time.Second),
		"fresh.mp4": time.Now(),
	}

	pruneSeen(seen, window)

	if _, ok := seen["stale.mp4"]; ok {
		t.Error("entries past the cooldown window must be evicted")
	}
	if _, ok := seen["fresh.mp4"]; !ok {
		t.Error("entries inside the cooldown window must survive")
	}
}
