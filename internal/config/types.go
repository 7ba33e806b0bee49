package config

// Config is the top-level hashportal configuration, corresponding to .hashportal.yml.
type Config struct {
	Port            int             `yaml:"port" koanf:"port"`
	Home            string          `yaml:"home" koanf:"home"`
	AllowAllOrigins bool            `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Content         ContentConfig   `yaml:"content" koanf:"content"`
	Documents       DocumentsConfig `yaml:"documents" koanf:"documents"`
	Training        TrainingConfig  `yaml:"training" koanf:"training"`
}

// ContentConfig says where documents come from and how they render.
type ContentConfig struct {
	// Dir is the site root served at / and read by the file transport.
	Dir string `yaml:"dir" koanf:"dir"`
	// BaseURL, when set, makes the runtime fetch documents over HTTP(S)
	// instead of from Dir.
	BaseURL        string `yaml:"base_url" koanf:"base_url"`
	Markdown       bool   `yaml:"markdown" koanf:"markdown"`
	TimeoutSeconds int    `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	// Include lists the globs checked by `hashportal check`.
	Include []string `yaml:"include" koanf:"include"`
}

// DocumentsConfig maps each view to its JSON document path.
type DocumentsConfig struct {
	Links    string `yaml:"links" koanf:"links"`
	Training string `yaml:"training" koanf:"training"`
	Money    string `yaml:"money" koanf:"money"`
	Dailies  string `yaml:"dailies" koanf:"dailies"`
}

// TrainingConfig holds the training tag vocabulary.
type TrainingConfig struct {
	Tags []string `yaml:"tags" koanf:"tags"`
}
