package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .hashportal.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to hashportal! Let's configure your portal.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Where documents come from.
	sourcePrompt := promptui.Select{
		Label: "Where are the JSON documents served from",
		Items: []string{
			"local directory",
			"remote base URL",
		},
	}
	sourceIdx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("source selection: %w", err)
	}

	if sourceIdx == 0 {
		dirPrompt := promptui.Prompt{
			Label:   "Content directory",
			Default: cfg.Content.Dir,
		}
		cfg.Content.Dir, err = dirPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("content dir: %w", err)
		}
	} else {
		urlPrompt := promptui.Prompt{
			Label: "Base URL (e.g. https://example.com/portal/)",
			Validate: func(s string) error {
				if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
					return fmt.Errorf("must be an http(s) URL")
				}
				return nil
			},
		}
		cfg.Content.BaseURL, err = urlPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("base url: %w", err)
		}
	}

	// 2. Port.
	portPrompt := promptui.Prompt{
		Label:   "Port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 || n > 65535 {
				return fmt.Errorf("invalid port")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 3. Training tags.
	tagsPrompt := promptui.Prompt{
		Label:   "Training tags (comma-separated)",
		Default: strings.Join(DefaultTags, ","),
	}
	tagsStr, err := tagsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("training tags: %w", err)
	}
	cfg.Training.Tags = splitAndTrim(tagsStr)

	// 4. Markdown.
	mdPrompt := promptui.Select{
		Label: "Render entry content as markdown",
		Items: []string{"no", "yes"},
	}
	mdIdx, _, err := mdPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("markdown selection: %w", err)
	}
	cfg.Content.Markdown = mdIdx == 1

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(DefaultPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultPath)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace from
// each element, dropping empty strings.
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
