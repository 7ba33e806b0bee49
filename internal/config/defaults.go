package config

// DefaultTags is the training tag vocabulary used when none is configured.
var DefaultTags = []string{"combat", "life", "magic", "alchemy", "music"}

// DefaultInclude matches every JSON document under the content dir.
var DefaultInclude = []string{"**/*.json"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port: 8080,
		Home: "/home",
		Content: ContentConfig{
			Dir:            "site",
			TimeoutSeconds: 10,
			Include:        DefaultInclude,
		},
		Documents: DocumentsConfig{
			Links:    "./data/links.json",
			Training: "./data/training.json",
			Money:    "./data/money.json",
			Dailies:  "./data/dailies.json",
		},
		Training: TrainingConfig{
			Tags: DefaultTags,
		},
	}
}
