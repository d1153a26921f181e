package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesYAMLOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agent.yaml")
	contents := "api_key: sk-from-file\nmodel: gpt-4.1\nmax_iterations: 5\nremind_near_limit: true\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-from-file", config.APIKey)
	assert.Equal(t, "gpt-4.1", config.Model)
	assert.Equal(t, 5, config.MaxIterations)
	assert.True(t, config.RemindNearLimit)
}

func TestLoadFallsBackToEnvAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	dir := t.TempDir()
	path := filepath.Join(dir, "agent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: gpt-4.1-mini\n"), 0644))

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", config.APIKey)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/agent.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_iterations: -1\n"), 0644))
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	_, err := Load(path)
	assert.Error(t, err)
}
