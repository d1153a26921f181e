package agent

import "encoding/json"

// StepKind tags the variant an AgentStep holds.
type StepKind string

const (
	StepTask        StepKind = "task"
	StepPlanning    StepKind = "planning"
	StepAction      StepKind = "action"
	StepObservation StepKind = "observation"
	StepFinalAnswer StepKind = "final_answer"
)

// AgentStep is one reasoning event in a run's Agent Memory. Exactly one
// of the variant fields is meaningful, selected by Kind.
type AgentStep struct {
	Kind StepKind

	// Task: the initial user prompt. Always the first step.
	Content string

	// Planning: assistant text the model produced without a tool call. The
	// engine records it so the next request replays the model's own turn.
	Plan string

	// Action: the engine issued a tool call on behalf of the model.
	ToolName   string
	ToolCallID string
	Arguments  map[string]interface{}

	// Observation: outcome of a tool call. ToolCallID above is reused to
	// correlate back to the Action that produced it.
	Result  string
	IsError bool

	// FinalAnswer: terminal step, recorded at most once.
	Answer     string
	Structured map[string]interface{}
}

// Task builds a Task step.
func Task(content string) AgentStep {
	return AgentStep{Kind: StepTask, Content: content}
}

// Planning builds a Planning step.
func Planning(plan string) AgentStep {
	return AgentStep{Kind: StepPlanning, Plan: plan}
}

// Action builds an Action step.
func Action(toolName, toolCallID string, arguments map[string]interface{}) AgentStep {
	return AgentStep{Kind: StepAction, ToolName: toolName, ToolCallID: toolCallID, Arguments: arguments}
}

// Observation builds an Observation step.
func Observation(toolCallID, result string, isError bool) AgentStep {
	return AgentStep{Kind: StepObservation, ToolCallID: toolCallID, Result: result, IsError: isError}
}

// FinalAnswer builds a FinalAnswer step. structured is nil for the
// no-schema case.
func FinalAnswerStep(answer string, structured map[string]interface{}) AgentStep {
	return AgentStep{Kind: StepFinalAnswer, Answer: answer, Structured: structured}
}

// argumentsJSON marshals Arguments deterministically for tool-call message
// projection; an empty or nil map renders as "{}".
func (s AgentStep) argumentsJSON() string {
	if len(s.Arguments) == 0 {
		return "{}"
	}
	b, err := json.Marshal(s.Arguments)
	if err != nil {
		return "{}"
	}
	return string(b)
}
