package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides. A double underscore
// separates nested keys: HASHPORTAL_CONTENT__DIR sets content.dir.
const EnvPrefix = "HASHPORTAL_"

// DefaultPath is the config file written by `hashportal init`.
const DefaultPath = ".hashportal.yml"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (HASHPORTAL_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if !strings.HasPrefix(c.Home, "/") {
		return fmt.Errorf("home %q must start with /", c.Home)
	}
	if c.Content.Dir == "" && c.Content.BaseURL == "" {
		return fmt.Errorf("content.dir or content.base_url is required")
	}
	if c.Content.TimeoutSeconds < 0 {
		return fmt.Errorf("content.timeout_seconds must be non-negative")
	}

	docs := map[string]string{
		"documents.links":    c.Documents.Links,
		"documents.training": c.Documents.Training,
		"documents.money":    c.Documents.Money,
		"documents.dailies":  c.Documents.Dailies,
	}
	for key, v := range docs {
		if v == "" {
			return fmt.Errorf("%s is required", key)
		}
	}

	seen := make(map[string]bool, len(c.Training.Tags))
	for _, tag := range c.Training.Tags {
		if tag == "" {
			return fmt.Errorf("training.tags must not contain empty tags")
		}
		if seen[tag] {
			return fmt.Errorf("duplicate training tag %q", tag)
		}
		seen[tag] = true
	}

	return nil
}
