package cmd

import (
	"fmt"
	"time"

	"github.com/hashportal/hashportal/internal/config"
	"github.com/hashportal/hashportal/internal/datacache"
	"github.com/hashportal/hashportal/internal/portal"
	"github.com/hashportal/hashportal/internal/views"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `hashportal init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// documentsFromConfig maps the configured document paths onto the views.
func documentsFromConfig(cfg *config.Config) views.Documents {
	return views.Documents{
		Links:    cfg.Documents.Links,
		Training: cfg.Documents.Training,
		Money:    cfg.Documents.Money,
		Dailies:  cfg.Documents.Dailies,
	}
}

// portalOptions builds the per-session runtime options from config.
func portalOptions(cfg *config.Config) portal.Options {
	return portal.Options{
		Home:      cfg.Home,
		Documents: documentsFromConfig(cfg),
		Tags:      cfg.Training.Tags,
		Markdown:  cfg.Content.Markdown,
		Verbose:   verbose,
		Cache: datacache.Options{
			BaseURL: cfg.Content.BaseURL,
			Dir:     cfg.Content.Dir,
			Timeout: time.Duration(cfg.Content.TimeoutSeconds) * time.Second,
		},
	}
}
