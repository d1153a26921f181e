package agent

import (
	"time"

	"github.com/google/uuid"
)

// DefaultModel is used when AgentConfig.Model is left empty.
const DefaultModel = "openai/gpt-4.1-mini"

// DefaultMaxIterations is used when AgentConfig.MaxIterations is left at
// its zero value during NewAgentConfig construction.
const DefaultMaxIterations = 10

// DefaultRequestTimeout is used when AgentConfig.RequestTimeout is left at
// its zero value during NewAgentConfig construction.
const DefaultRequestTimeout = 60 * time.Second

// AgentConfig is the immutable per-run configuration: provider endpoint,
// API key, model identifier, iteration and token ceilings, request
// timeout, and an optional completion schema.
type AgentConfig struct {
	// Provider endpoint. BaseURL empty selects the provider's default
	// (api.openai.com); non-empty targets any OpenAI-compatible endpoint.
	APIKey  string
	BaseURL string
	Model   string

	MaxIterations  int
	MaxTokens      int // 0 means unset; no ceiling is sent to the provider
	RequestTimeout time.Duration

	// CompletionSchema, when set, switches the engine into schema-driven
	// termination: structured_response is exposed instead of final_answer,
	// and the schema-aware system prompt is injected.
	CompletionSchema *SchemaHandle

	// SystemPrompt, if set, opens the system prompt of every RunWithSteps
	// run; the engine appends its completion instruction (naming
	// structured_response or final_answer) to it. RunWithMessages does not
	// use it.
	SystemPrompt string

	// RemindNearLimit, when true, has the engine inject a one-line nudge
	// into the next request's system prompt once the run is within two
	// iterations of MaxIterations, naming the active terminal tool. Only
	// RunWithSteps injects it.
	RemindNearLimit bool

	// Logger receives structured engine events, tagged with the run's
	// RunID. A nil Logger is replaced by NoopLogger at engine construction.
	Logger Logger
}

// NewAgentConfig returns an AgentConfig with defaults applied:
// model "openai/gpt-4.1-mini", 10 max iterations, 60s request timeout, no
// token ceiling, no schema.
func NewAgentConfig(apiKey string) AgentConfig {
	return AgentConfig{
		APIKey:         apiKey,
		Model:          DefaultModel,
		MaxIterations:  DefaultMaxIterations,
		RequestTimeout: DefaultRequestTimeout,
		Logger:         NoopLogger{},
	}
}

// WithModel sets the model identifier.
func (c AgentConfig) WithModel(model string) AgentConfig {
	c.Model = model
	return c
}

// WithBaseURL targets an OpenAI-compatible endpoint other than the
// default.
func (c AgentConfig) WithBaseURL(baseURL string) AgentConfig {
	c.BaseURL = baseURL
	return c
}

// WithMaxIterations sets the iteration ceiling for each run.
func (c AgentConfig) WithMaxIterations(n int) AgentConfig {
	c.MaxIterations = n
	return c
}

// WithMaxTokens sets the per-request token ceiling sent to the provider.
func (c AgentConfig) WithMaxTokens(n int) AgentConfig {
	c.MaxTokens = n
	return c
}

// WithRequestTimeout bounds each individual provider HTTP call.
func (c AgentConfig) WithRequestTimeout(d time.Duration) AgentConfig {
	c.RequestTimeout = d
	return c
}

// WithCompletionSchema switches runs into schema-driven termination.
func (c AgentConfig) WithCompletionSchema(schema *SchemaHandle) AgentConfig {
	c.CompletionSchema = schema
	return c
}

// WithSystemPrompt sets the host's own system prompt; the engine appends
// its completion instruction to it.
func (c AgentConfig) WithSystemPrompt(prompt string) AgentConfig {
	c.SystemPrompt = prompt
	return c
}

// WithLogger sets the structured logger engine events go to.
func (c AgentConfig) WithLogger(logger Logger) AgentConfig {
	c.Logger = logger
	return c
}

// Validate checks construction-time invariants. Failures here are
// Configuration errors and are never raised mid-run.
func (c AgentConfig) Validate() error {
	if c.APIKey == "" {
		return newError(KindConfiguration, "API key is required", ErrMissingAPIKey)
	}
	if c.MaxIterations < 0 {
		return newError(KindConfiguration, "max iterations must be non-negative", nil)
	}
	if c.RequestTimeout < 0 {
		return newError(KindConfiguration, "request timeout must be non-negative", nil)
	}
	return nil
}

// normalized returns a copy of c with zero-value knobs replaced by
// defaults. MaxIterations is left alone: an explicit 0 is a valid
// boundary case that fails the run immediately with MaxIterationsError.
func (c AgentConfig) normalized() AgentConfig {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.Logger == nil {
		c.Logger = NoopLogger{}
	}
	return c
}

// newRunID mints the correlation id threaded through every log line of
// one run.
func newRunID() string {
	return uuid.NewString()
}
