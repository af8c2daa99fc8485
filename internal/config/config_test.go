package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 8000, cfg.Port)

	assert.True(t, cfg.AI.Enabled)
	assert.Equal(t, "anthropic", cfg.AI.DefaultProvider)
	assert.Equal(t, "gpt-4", cfg.AI.OpenAI.Model)
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.AI.Anthropic.Model)
	assert.Equal(t, 2000, cfg.AI.MaxTokens)
	assert.Equal(t, 0.1, cfg.AI.Temperature)

	assert.Empty(t, cfg.AI.OpenAI.APIKey)
	assert.Empty(t, cfg.AI.Anthropic.APIKey)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparqld.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
host: 0.0.0.0
port: 9090
ai:
  default_provider: openai
  openai:
    api_key: from-file
    model: gpt-4o
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "openai", cfg.AI.DefaultProvider)
	assert.Equal(t, "from-file", cfg.AI.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.AI.OpenAI.Model)

	// values absent from the file keep their defaults
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.AI.Anthropic.Model)
	assert.Equal(t, 2000, cfg.AI.MaxTokens)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: [not: valid"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-env")
	t.Setenv("SPARQL_HOST", "0.0.0.0")
	t.Setenv("SPARQL_PORT", "8080")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sk-env", cfg.AI.OpenAI.APIKey)
	assert.Equal(t, "sk-ant-env", cfg.AI.Anthropic.APIKey)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparqld.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ai:
  openai:
    api_key: from-file
`), 0o600))

	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-env", cfg.AI.OpenAI.APIKey, "environment wins over the file")
}

func TestEnvironmentIgnoresInvalidPort(t *testing.T) {
	t.Setenv("SPARQL_PORT", "not-a-port")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
}
