package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load builds the configuration from defaults, an optional YAML file,
// and environment variables. An explicit path must exist; otherwise the
// default locations are tried in order and silently skipped when absent.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	cfg := Default()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	} else {
		for _, candidate := range defaultConfigPaths() {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}

			if err := loadFile(candidate, cfg); err != nil {
				return nil, err
			}

			break
		}
	}

	applyEnvironment(cfg)

	return cfg, nil
}

// returns config file locations tried when no --config flag is given
func defaultConfigPaths() []string {
	paths := []string{"sparqld.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "sparqld", "config.yaml"),
			filepath.Join(home, ".sparqld.yaml"),
		)
	}

	return paths
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	return nil
}

// applies environment variable overrides on top of file values
func applyEnvironment(cfg *Config) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.AI.OpenAI.APIKey = key
	}

	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		cfg.AI.Anthropic.APIKey = key
	}

	if host := os.Getenv("SPARQL_HOST"); host != "" {
		cfg.Host = host
	}

	if portStr := os.Getenv("SPARQL_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.Port = port
		}
	}
}
