package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Segment.MaxChars != 1000 {
		t.Errorf("expected MaxChars=1000, got %d", cfg.Segment.MaxChars)
	}
	if cfg.Rank.TopK != 20 {
		t.Errorf("expected TopK=20, got %d", cfg.Rank.TopK)
	}
	if cfg.Rank.MaxPerDocument != 5 {
		t.Errorf("expected MaxPerDocument=5, got %d", cfg.Rank.MaxPerDocument)
	}
	if cfg.Encoder.QueryPrefix != "query: " {
		t.Errorf("expected e5-style query prefix, got %q", cfg.Encoder.QueryPrefix)
	}
	if cfg.Assemble.RefinedChars != 500 {
		t.Errorf("expected RefinedChars=500, got %d", cfg.Assemble.RefinedChars)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/personarank.yaml")
	if err != nil {
		t.Fatalf("missing config file should fall back to defaults: %v", err)
	}
	if cfg.Rank.TopK != 20 {
		t.Errorf("expected default TopK, got %d", cfg.Rank.TopK)
	}
}

func TestLoad_Override(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "personarank.yaml")
	data := `
rank:
  top_k: 7
  max_per_document: 2
segment:
  max_chars: 400
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rank.TopK != 7 {
		t.Errorf("expected TopK=7, got %d", cfg.Rank.TopK)
	}
	if cfg.Rank.MaxPerDocument != 2 {
		t.Errorf("expected MaxPerDocument=2, got %d", cfg.Rank.MaxPerDocument)
	}
	if cfg.Segment.MaxChars != 400 {
		t.Errorf("expected MaxChars=400, got %d", cfg.Segment.MaxChars)
	}
	// Untouched settings keep their defaults.
	if cfg.Encoder.Provider != "openai" {
		t.Errorf("expected default provider, got %q", cfg.Encoder.Provider)
	}
}

func TestCacheDBPath(t *testing.T) {
	got := CacheDBPath("/data/docs")
	want := filepath.Join("/data/docs", ".personarank", "cache.db")
	if got != want {
		t.Errorf("CacheDBPath = %q, want %q", got, want)
	}
}
