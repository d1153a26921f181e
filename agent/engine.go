package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
)

// TokenUsage aggregates provider-reported token counts across every model
// turn of a run.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// RunResult is the terminal value of a successful run.
type RunResult struct {
	Output     string
	Structured map[string]interface{}
	Schema     *SchemaHandle
	Steps      []AgentStep
	Tokens     TokenUsage
	Duration   time.Duration
	Iterations int
}

// Engine is the execution engine: the iterative loop that mediates
// between the chat-completion Provider and the Registry. Each turn sends
// the registry tools plus exactly one conditionally-exposed terminal
// tool, dispatches whatever the model calls, and terminates when a
// terminal tool produces a valid answer.
type Engine struct {
	config   AgentConfig
	registry *Registry
	provider Provider
}

// NewEngine constructs an Engine. The Registry is read-only for the
// lifetime of every run it services; construction fails with a
// Configuration error if config is invalid.
func NewEngine(config AgentConfig, registry *Registry, provider Provider) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		registry = NewRegistry()
	}
	return &Engine{config: config.normalized(), registry: registry, provider: provider}, nil
}

// NewDefaultEngine constructs an Engine backed by the default OpenAI
// provider, built from the config's APIKey and BaseURL. Hosts supplying
// their own transport use NewEngine directly.
func NewDefaultEngine(config AgentConfig, registry *Registry) (*Engine, error) {
	provider, err := NewOpenAIProvider(config.APIKey, config.BaseURL)
	if err != nil {
		return nil, err
	}
	return NewEngine(config, registry, provider)
}

// Run is a convenience wrapper over RunWithSteps returning just the
// answer.
func (e *Engine) Run(ctx context.Context, prompt string) (string, error) {
	result, err := e.RunWithSteps(ctx, prompt)
	if err != nil {
		return "", err
	}
	return result.Output, nil
}

// RunWithSteps drives the full ReAct loop, seeding memory with a Task
// step and returning the full RunResult on success.
func (e *Engine) RunWithSteps(ctx context.Context, prompt string) (*RunResult, error) {
	runID := newRunID()
	logger := e.config.Logger
	start := time.Now()

	memory := NewMemory(e.systemPrompt())
	memory.AddStep(Task(prompt))

	logger.Info(ctx, "run started", F("run_id", runID), F("max_iterations", e.config.MaxIterations))

	var tokens TokenUsage
	var pendingAnswer string
	reminded := false
	iterationsPerformed := 0

	for i := 0; i < e.config.MaxIterations; i++ {
		if ctx.Err() != nil {
			return nil, &CancelledError{At: "model", Steps: memory.Steps()}
		}

		if e.config.RemindNearLimit && !reminded && e.config.MaxIterations-i <= 2 {
			e.remind(memory)
			reminded = true
		}

		used, done, result, err := e.step(ctx, memory, &pendingAnswer, memory.AsMessages(), StepSink{Memory: memory})
		iterationsPerformed++
		if err != nil {
			logger.Error(ctx, "run failed", F("run_id", runID), F("error", err.Error()))
			return nil, err
		}
		tokens.PromptTokens += used.PromptTokens
		tokens.CompletionTokens += used.CompletionTokens
		tokens.TotalTokens += used.TotalTokens

		if done {
			memory.AddStep(FinalAnswerStep(result.Answer, result.Structured))
			logger.Info(ctx, "run completed", F("run_id", runID), F("iterations", iterationsPerformed))
			return &RunResult{
				Output:     result.Answer,
				Structured: result.Structured,
				Schema:     e.config.CompletionSchema,
				Steps:      memory.Steps(),
				Tokens:     tokens,
				Duration:   time.Since(start),
				Iterations: iterationsPerformed,
			}, nil
		}
	}

	return nil, &MaxIterationsError{Iterations: iterationsPerformed, Steps: memory.Steps()}
}

// RunWithMessages drives the same loop in message-list mode: the host
// supplies the full seed conversation and receives just the final answer
// string, for advanced hosts that manage their own history.
func (e *Engine) RunWithMessages(ctx context.Context, messages []Message) (string, error) {
	runID := newRunID()
	logger := e.config.Logger
	logger.Info(ctx, "run started (message mode)", F("run_id", runID), F("max_iterations", e.config.MaxIterations))

	convo := toOpenAIMessages(messages)
	// Providers concatenate multiple system messages as ordered context, so
	// the schema-aware instruction is simply prepended ahead of any system
	// message the host already supplied.
	convo = append([]openai.ChatCompletionMessageParamUnion{openai.SystemMessage(e.schemaInstruction())}, convo...)

	var pendingAnswer string

	for i := 0; i < e.config.MaxIterations; i++ {
		if ctx.Err() != nil {
			return "", &CancelledError{At: "model"}
		}

		done, result, err := e.stepMessages(ctx, &pendingAnswer, MessageSink{Messages: &convo})
		if err != nil {
			return "", err
		}
		if done {
			logger.Info(ctx, "run completed (message mode)", F("run_id", runID), F("iterations", i+1))
			return result.Answer, nil
		}
	}

	return "", &MaxIterationsError{Iterations: e.config.MaxIterations}
}

// step performs one model turn in step-tracking mode: build the request,
// submit it, dispatch any tool calls, and report whether the run should
// terminate.
func (e *Engine) step(ctx context.Context, memory *Memory, pendingAnswer *string, messages []openai.ChatCompletionMessageParamUnion, sink ErrorSink) (TokenUsage, bool, TerminalOutcome, error) {
	params := e.buildParams(messages)

	reqCtx, cancel := context.WithTimeout(ctx, e.config.RequestTimeout)
	defer cancel()
	completion, err := e.provider.CreateChatCompletion(reqCtx, params)
	if err != nil {
		return TokenUsage{}, false, TerminalOutcome{}, e.classifyProviderError(ctx, reqCtx, err, memory.Steps())
	}

	used := TokenUsage{
		PromptTokens:     int(completion.Usage.PromptTokens),
		CompletionTokens: int(completion.Usage.CompletionTokens),
		TotalTokens:      int(completion.Usage.TotalTokens),
	}

	if len(completion.Choices) == 0 {
		return used, false, TerminalOutcome{}, newError(KindProtocol, "provider response had no choices", nil)
	}
	msg := completion.Choices[0].Message

	if len(msg.ToolCalls) == 0 {
		// Plain assistant content is a protocol violation: keep the content
		// in memory so the model sees its own turn, then nudge it toward
		// the active terminal tool.
		if msg.Content != "" {
			memory.AddStep(Planning(msg.Content))
		}
		memory.AddStep(Observation("", errorPayload(KindProtocol, "expected a tool call; "+e.schemaInstruction()), true))
		return used, false, TerminalOutcome{}, nil
	}

	for _, tc := range msg.ToolCalls {
		id := ExtractToolCallID(tc)
		name := ExtractFunctionName(tc)
		argsStr := ExtractArgumentsStr(tc)
		args, parseErr := ParseArguments(argsStr, name)
		memory.AddStep(Action(name, id, args))

		if name == ToolNameFinalAnswer || name == ToolNameStructuredResponse {
			outcome := HandleTerminalTool(name, id, argsStr, e.config.CompletionSchema, pendingAnswer, sink)
			if outcome.Done {
				return used, true, outcome, nil
			}
			continue
		}

		if parseErr != nil {
			memory.AddStep(Observation(id, errorPayload(KindInvalidArguments, parseErr.Error()), true))
			continue
		}

		value, execErr := e.registry.Execute(ctx, name, args)
		if execErr != nil {
			if ctx.Err() != nil {
				return used, false, TerminalOutcome{}, &CancelledError{At: "tool", Steps: memory.Steps()}
			}
			memory.AddStep(Observation(id, formatRegistryError(execErr), true))
			continue
		}
		memory.AddStep(Observation(id, serializeObservation(value), false))
	}

	return used, false, TerminalOutcome{}, nil
}

// stepMessages is the message-list-mode analogue of step: it appends this
// turn's assistant and tool messages through sink and reports whether the
// run should terminate.
func (e *Engine) stepMessages(ctx context.Context, pendingAnswer *string, sink MessageSink) (bool, TerminalOutcome, error) {
	params := e.buildParams(*sink.Messages)

	reqCtx, cancel := context.WithTimeout(ctx, e.config.RequestTimeout)
	defer cancel()
	completion, err := e.provider.CreateChatCompletion(reqCtx, params)
	if err != nil {
		return false, TerminalOutcome{}, e.classifyProviderError(ctx, reqCtx, err, nil)
	}

	if len(completion.Choices) == 0 {
		return false, TerminalOutcome{}, newError(KindProtocol, "provider response had no choices", nil)
	}
	msg := completion.Choices[0].Message

	if len(msg.ToolCalls) == 0 {
		*sink.Messages = append(*sink.Messages, openai.AssistantMessage(msg.Content))
		*sink.Messages = append(*sink.Messages, openai.UserMessage(errorPayload(KindProtocol, "expected a tool call; "+e.schemaInstruction())))
		return false, TerminalOutcome{}, nil
	}

	toolCallParams := make([]openai.ChatCompletionMessageToolCallUnionParam, len(msg.ToolCalls))
	for i, tc := range msg.ToolCalls {
		toolCallParams[i] = tc.ToParam()
	}
	*sink.Messages = append(*sink.Messages, openai.ChatCompletionMessageParamUnion{
		OfAssistant: &openai.ChatCompletionAssistantMessageParam{ToolCalls: toolCallParams},
	})

	for _, tc := range msg.ToolCalls {
		id := ExtractToolCallID(tc)
		name := ExtractFunctionName(tc)
		argsStr := ExtractArgumentsStr(tc)

		if name == ToolNameFinalAnswer || name == ToolNameStructuredResponse {
			outcome := HandleTerminalTool(name, id, argsStr, e.config.CompletionSchema, pendingAnswer, sink)
			if outcome.Done {
				return true, outcome, nil
			}
			continue
		}

		args, parseErr := ParseArguments(argsStr, name)
		if parseErr != nil {
			sink.ReportError(id, errorPayload(KindInvalidArguments, parseErr.Error()))
			continue
		}

		value, execErr := e.registry.Execute(ctx, name, args)
		if execErr != nil {
			if ctx.Err() != nil {
				return false, TerminalOutcome{}, &CancelledError{At: "tool"}
			}
			sink.ReportError(id, formatRegistryError(execErr))
			continue
		}
		sink.ReportObservation(id, serializeObservation(value), false)
	}

	return false, TerminalOutcome{}, nil
}

func (e *Engine) classifyProviderError(ctx, reqCtx context.Context, err error, steps []AgentStep) error {
	if ctx.Err() != nil {
		return &CancelledError{At: "model", Steps: steps}
	}
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Elapsed: e.config.RequestTimeout.String(), Steps: steps, Underlying: err}
	}
	return err
}

// buildParams composes one provider request: memory-derived messages,
// the registry tools plus exactly one terminal tool, tool_choice "auto",
// and the configured token ceiling.
func (e *Engine) buildParams(messages []openai.ChatCompletionMessageParamUnion) openai.ChatCompletionNewParams {
	tools := append(e.registry.Definitions(), e.terminalToolDefinition())

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(e.config.Model),
		Messages: messages,
		Tools:    tools,
		ToolChoice: openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String("auto"),
		},
	}
	if e.config.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(e.config.MaxTokens))
	}
	return params
}

// terminalToolDefinition renders exactly one of {final_answer,
// structured_response}, chosen by schema presence. The non-active
// terminal tool is never exposed; offering both makes models oscillate
// between them.
func (e *Engine) terminalToolDefinition() openai.ChatCompletionToolUnionParam {
	if e.config.CompletionSchema != nil {
		return buildStructuredResponseTool(e.config.CompletionSchema).toOpenAI()
	}
	return buildFinalAnswerTool().toOpenAI()
}

// systemPrompt composes the run's starting system prompt: the host's own
// prompt (if any) plus the schema-aware completion instruction.
func (e *Engine) systemPrompt() string {
	return withInjectedSystemPrompt(e.config.SystemPrompt, e.schemaInstruction())
}

func (e *Engine) schemaInstruction() string {
	if e.config.CompletionSchema != nil {
		return schemaSystemPromptInstruction(e.config.CompletionSchema)
	}
	return noSchemaSystemPromptInstruction()
}

// remind injects a one-line nudge into memory's system prompt once a run
// is within two iterations of its budget.
func (e *Engine) remind(memory *Memory) {
	nudge := fmt.Sprintf("You have very few iterations left. Call %s now with your best available answer.", e.terminalToolName())
	memory.SetSystemPrompt(withInjectedSystemPrompt(memory.SystemPrompt(), nudge))
}

func (e *Engine) terminalToolName() string {
	if e.config.CompletionSchema != nil {
		return ToolNameStructuredResponse
	}
	return ToolNameFinalAnswer
}

// formatRegistryError renders a Registry.Execute failure as an
// {error_kind, message} observation payload, distinguishing an unknown
// tool name from a tool's own execution failure.
func formatRegistryError(err error) string {
	var unknown *UnknownToolError
	if errors.As(err, &unknown) {
		return errorPayload(KindUnknownTool, err.Error())
	}
	return errorPayload(KindToolExecution, err.Error())
}

// serializeObservation renders a tool's return value as the string the
// provider-bound observation message carries. A string result is passed
// through verbatim; any other JSON-marshalable value is rendered as
// compact, deterministic JSON — never a bare object, since some
// providers reject non-string tool content.
func serializeObservation(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(b)
}
