// Package config loads agent.AgentConfig from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/taipm/reactagent/agent"
	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML-facing shape of an AgentConfig. AgentConfig
// itself carries a compiled *SchemaHandle and a Logger, neither of which
// round-trips through YAML, so this type is the serializable subset a
// host edits on disk.
type FileConfig struct {
	APIKey                string `yaml:"api_key"`
	BaseURL               string `yaml:"base_url"`
	Model                 string `yaml:"model"`
	MaxIterations         int    `yaml:"max_iterations"`
	MaxTokens             int    `yaml:"max_tokens"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	SystemPrompt          string `yaml:"system_prompt"`
	RemindNearLimit       bool   `yaml:"remind_near_limit"`
}

// Load reads path as YAML and returns the corresponding AgentConfig. An
// empty APIKey field is filled from OPENAI_API_KEY.
func Load(path string) (agent.AgentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return agent.AgentConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var file FileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return agent.AgentConfig{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if file.APIKey == "" {
		file.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	config := agent.NewAgentConfig(file.APIKey)
	if file.BaseURL != "" {
		config.BaseURL = file.BaseURL
	}
	if file.Model != "" {
		config.Model = file.Model
	}
	if file.MaxIterations != 0 {
		config.MaxIterations = file.MaxIterations
	}
	if file.MaxTokens != 0 {
		config.MaxTokens = file.MaxTokens
	}
	if file.RequestTimeoutSeconds != 0 {
		config.RequestTimeout = time.Duration(file.RequestTimeoutSeconds) * time.Second
	}
	if file.SystemPrompt != "" {
		config.SystemPrompt = file.SystemPrompt
	}
	config.RemindNearLimit = file.RemindNearLimit

	if err := config.Validate(); err != nil {
		return agent.AgentConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}
