// Package config defines the application configuration structures.
//
// Settings merge three sources, lowest to highest precedence:
// built-in defaults, a YAML config file, environment variables.
// The merged Config is built once at startup and treated as
// immutable; a reload rebuilds it wholesale.
package config

// Config holds all application settings.
type Config struct {
	Host string   `yaml:"host"`
	Port int      `yaml:"port"`
	AI   AIConfig `yaml:"ai"`
}

// AIConfig holds the AI assistant settings.
type AIConfig struct {
	Enabled         bool           `yaml:"enabled"`
	DefaultProvider string         `yaml:"default_provider"` // "openai" or "anthropic"
	OpenAI          ProviderConfig `yaml:"openai"`
	Anthropic       ProviderConfig `yaml:"anthropic"`
	MaxTokens       int            `yaml:"max_tokens"`
	Temperature     float64        `yaml:"temperature"`
}

// ProviderConfig holds per-vendor credentials and model selection.
type ProviderConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Host: "127.0.0.1",
		Port: 8000,
		AI: AIConfig{
			Enabled:         true,
			DefaultProvider: "anthropic",
			OpenAI: ProviderConfig{
				Model: "gpt-4",
			},
			Anthropic: ProviderConfig{
				Model: "claude-3-5-sonnet-20241022",
			},
			MaxTokens:   2000,
			Temperature: 0.1,
		},
	}
}
