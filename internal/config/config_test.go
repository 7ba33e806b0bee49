package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Home != "/home" {
		t.Errorf("expected default home %q, got %q", "/home", cfg.Home)
	}
	if cfg.Content.Dir != "site" {
		t.Errorf("expected default content.dir %q, got %q", "site", cfg.Content.Dir)
	}
	if cfg.Documents.Dailies != "./data/dailies.json" {
		t.Errorf("unexpected default dailies document %q", cfg.Documents.Dailies)
	}
	if len(cfg.Training.Tags) != len(DefaultTags) {
		t.Errorf("expected %d default tags, got %d", len(DefaultTags), len(cfg.Training.Tags))
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.hashportal.yml")

	original := DefaultConfig()
	original.Port = 9000
	original.Content.BaseURL = "https://example.com/portal/"
	original.Content.Markdown = true
	original.Documents.Money = "./data/earn.json"
	original.Training.Tags = []string{"a", "b"}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.Content.BaseURL != original.Content.BaseURL {
		t.Errorf("content.base_url: got %q, want %q", loaded.Content.BaseURL, original.Content.BaseURL)
	}
	if !loaded.Content.Markdown {
		t.Error("content.markdown: got false, want true")
	}
	if loaded.Documents.Money != original.Documents.Money {
		t.Errorf("documents.money: got %q, want %q", loaded.Documents.Money, original.Documents.Money)
	}
	if len(loaded.Training.Tags) != 2 || loaded.Training.Tags[0] != "a" || loaded.Training.Tags[1] != "b" {
		t.Errorf("training.tags: got %v", loaded.Training.Tags)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	os.Setenv("HASHPORTAL_PORT", "9090")
	defer os.Unsetenv("HASHPORTAL_PORT")
	os.Setenv("HASHPORTAL_CONTENT__DIR", "public")
	defer os.Unsetenv("HASHPORTAL_CONTENT__DIR")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Port != 9090 {
		t.Errorf("env override failed: got port %d, want 9090", loaded.Port)
	}
	if loaded.Content.Dir != "public" {
		t.Errorf("nested env override failed: got %q, want %q", loaded.Content.Dir, "public")
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"HASHPORTAL_PORT":                     "port",
		"HASHPORTAL_ALLOW_ALL_ORIGINS":        "allow_all_origins",
		"HASHPORTAL_CONTENT__BASE_URL":        "content.base_url",
		"HASHPORTAL_DOCUMENTS__DAILIES":       "documents.dailies",
		"HASHPORTAL_CONTENT__TIMEOUT_SECONDS": "content.timeout_seconds",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative port", func(c *Config) { c.Port = -1 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"relative home", func(c *Config) { c.Home = "home" }},
		{"no source", func(c *Config) { c.Content.Dir = ""; c.Content.BaseURL = "" }},
		{"negative timeout", func(c *Config) { c.Content.TimeoutSeconds = -1 }},
		{"missing document", func(c *Config) { c.Documents.Training = "" }},
		{"empty tag", func(c *Config) { c.Training.Tags = []string{"a", ""} }},
		{"duplicate tag", func(c *Config) { c.Training.Tags = []string{"a", "a"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateBaseURLWithoutDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Content.Dir = ""
	cfg.Content.BaseURL = "https://example.com/"
	if err := cfg.Validate(); err != nil {
		t.Errorf("base_url alone should be valid, got: %v", err)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"combat", []string{"combat"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
