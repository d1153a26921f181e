package agent

import "github.com/openai/openai-go/v3"

// Memory is the append-only sequence of Agent Steps for one run, plus an
// optional system prompt. It is owned exclusively by the run that created
// it and is mutated only by the execution engine and response handler.
type Memory struct {
	systemPrompt string
	steps        []AgentStep
}

// NewMemory creates an empty memory, optionally carrying a system prompt.
func NewMemory(systemPrompt string) *Memory {
	return &Memory{systemPrompt: systemPrompt}
}

// AddStep appends a step. Callers are responsible for the ordering
// invariants (Task first, at most one FinalAnswer, FinalAnswer last).
func (m *Memory) AddStep(step AgentStep) {
	m.steps = append(m.steps, step)
}

// Steps returns the full step list. The slice is owned by Memory; callers
// must not mutate it.
func (m *Memory) Steps() []AgentStep {
	return m.steps
}

// SystemPrompt returns the configured system prompt, if any.
func (m *Memory) SystemPrompt() string {
	return m.systemPrompt
}

// SetSystemPrompt replaces the system prompt, used by the engine to inject
// the near-limit reminder.
func (m *Memory) SetSystemPrompt(prompt string) {
	m.systemPrompt = prompt
}

// CountActions reports how many Action steps have been recorded.
func (m *Memory) CountActions() int {
	n := 0
	for _, s := range m.steps {
		if s.Kind == StepAction {
			n++
		}
	}
	return n
}

// CountObservations reports how many Observation steps have been recorded.
func (m *Memory) CountObservations() int {
	n := 0
	for _, s := range m.steps {
		if s.Kind == StepObservation {
			n++
		}
	}
	return n
}

// FinalAnswerStep returns the recorded FinalAnswer step, if any.
func (m *Memory) FinalAnswerStep() (AgentStep, bool) {
	for i := len(m.steps) - 1; i >= 0; i-- {
		if m.steps[i].Kind == StepFinalAnswer {
			return m.steps[i], true
		}
	}
	return AgentStep{}, false
}

// UpdateFinalAnswerStruct replaces the structured payload of the most
// recent FinalAnswer step in place, and does nothing if there is none. The
// engine does not call it: it records the FinalAnswer step, structured
// payload included, only once the run terminates.
func (m *Memory) UpdateFinalAnswerStruct(structured map[string]interface{}) {
	for i := len(m.steps) - 1; i >= 0; i-- {
		if m.steps[i].Kind == StepFinalAnswer {
			m.steps[i].Structured = structured
			return
		}
	}
}

// IterErrors yields every Observation step recorded with IsError set, in
// step order; used by hosts that want to inspect the self-correction trail
// of a run without walking the full step list themselves.
func (m *Memory) IterErrors() []AgentStep {
	var errs []AgentStep
	for _, s := range m.steps {
		if s.Kind == StepObservation && s.IsError {
			errs = append(errs, s)
		}
	}
	return errs
}

// AsMessages is a pure projection of the step log to the provider's chat
// message shape. It never mutates Memory. The system prompt, if present,
// is prepended as a system message.
func (m *Memory) AsMessages() []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(m.steps)+1)
	if m.systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(m.systemPrompt))
	}

	var pendingToolCalls []openai.ChatCompletionMessageToolCallUnionParam
	flushToolCalls := func() {
		if len(pendingToolCalls) == 0 {
			return
		}
		messages = append(messages, openai.ChatCompletionMessageParamUnion{
			OfAssistant: &openai.ChatCompletionAssistantMessageParam{
				ToolCalls: pendingToolCalls,
			},
		})
		pendingToolCalls = nil
	}

	for _, step := range m.steps {
		switch step.Kind {
		case StepTask:
			flushToolCalls()
			messages = append(messages, openai.UserMessage(step.Content))
		case StepPlanning:
			flushToolCalls()
			messages = append(messages, openai.AssistantMessage(step.Plan))
		case StepAction:
			pendingToolCalls = append(pendingToolCalls, openai.ChatCompletionMessageToolCallUnionParam{
				OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
					ID: step.ToolCallID,
					Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
						Name:      step.ToolName,
						Arguments: step.argumentsJSON(),
					},
				},
			})
		case StepObservation:
			flushToolCalls()
			if step.ToolCallID == "" {
				// An engine-synthesized observation (protocol nudge) has no
				// tool call to respond to; a dangling tool message would be
				// rejected by the provider, so it rides as a user message.
				messages = append(messages, openai.UserMessage(step.Result))
				continue
			}
			messages = append(messages, openai.ToolMessage(step.Result, step.ToolCallID))
		case StepFinalAnswer:
			flushToolCalls()
			messages = append(messages, openai.AssistantMessage(step.Answer))
		}
	}
	flushToolCalls()

	return messages
}
