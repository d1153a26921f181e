package agent

import (
	"encoding/json"

	"github.com/openai/openai-go/v3"
)

// ErrorSink abstracts "where observations go": a step-tracking run appends
// Observation steps to Memory, a message-list run appends tool messages to
// a raw slice. The Response Handler is written once against this
// interface to avoid duplicating terminal-tool logic across the two run
// modes.
type ErrorSink interface {
	ReportObservation(toolCallID, content string, isError bool)
	ReportError(toolCallID, message string)
}

// StepSink adapts Memory to ErrorSink for the step-tracking run mode.
type StepSink struct {
	Memory *Memory
}

func (s StepSink) ReportObservation(toolCallID, content string, isError bool) {
	s.Memory.AddStep(Observation(toolCallID, content, isError))
}

func (s StepSink) ReportError(toolCallID, message string) {
	s.Memory.AddStep(Observation(toolCallID, message, true))
}

// MessageSink adapts a raw provider message slice to ErrorSink for the
// message-list run mode.
type MessageSink struct {
	Messages *[]openai.ChatCompletionMessageParamUnion
}

func (s MessageSink) ReportObservation(toolCallID, content string, isError bool) {
	*s.Messages = append(*s.Messages, openai.ToolMessage(content, toolCallID))
}

func (s MessageSink) ReportError(toolCallID, message string) {
	*s.Messages = append(*s.Messages, openai.ToolMessage(message, toolCallID))
}

// TerminalOutcome is the result of handling one final_answer or
// structured_response call. Done reports whether the run should
// terminate; Answer and Structured are populated only when Done is true.
type TerminalOutcome struct {
	Done       bool
	Answer     string
	Structured map[string]interface{}
}

// errorPayload renders the {error_kind, message} JSON observation payload
// used for every recoverable error.
func errorPayload(kind ErrorKind, message string) string {
	b, err := json.Marshal(map[string]string{
		"error_kind": string(kind),
		"message":    message,
	})
	if err != nil {
		return message
	}
	return string(b)
}

// HandleTerminalTool handles a single final_answer or
// structured_response tool call. pendingAnswer
// carries prelude state across calls within one run: a schema-active
// final_answer call records its answer text there without terminating the
// run (so the invariant that at most one FinalAnswer step exists, and
// that it is always last, holds even though the model may call
// final_answer before structured_response).
func HandleTerminalTool(toolName, toolCallID, argumentsStr string, schema *SchemaHandle, pendingAnswer *string, sink ErrorSink) TerminalOutcome {
	args, err := ParseArguments(argumentsStr, toolName)
	if err != nil {
		sink.ReportError(toolCallID, errorPayload(KindInvalidArguments, err.Error()))
		return TerminalOutcome{}
	}

	if toolName == ToolNameFinalAnswer {
		return handleFinalAnswer(args, toolCallID, schema, pendingAnswer, sink)
	}
	return handleStructuredResponse(args, toolCallID, schema, pendingAnswer, sink)
}

func handleFinalAnswer(args map[string]interface{}, toolCallID string, schema *SchemaHandle, pendingAnswer *string, sink ErrorSink) TerminalOutcome {
	answer, _ := args["answer"].(string)

	if schema == nil {
		return TerminalOutcome{Done: true, Answer: answer}
	}

	// Schema active: final_answer is a prelude. It never terminates the
	// run on its own unless it also carries a valid structured payload.
	if answer == "" {
		answer = "Task completed with structured response"
	}
	*pendingAnswer = answer

	if structured, ok := args["structured"].(map[string]interface{}); ok && structured != nil {
		if verr := schema.Validate(structured); verr == nil {
			return TerminalOutcome{Done: true, Answer: answer, Structured: structured}
		} else {
			sink.ReportObservation(toolCallID, errorPayload(KindValidationFailed, verr.Error()), true)
			return TerminalOutcome{}
		}
	}

	sink.ReportObservation(toolCallID, errorPayload(KindProtocol,
		"a completion schema is active; call "+ToolNameStructuredResponse+" with a structured payload to finish the task"), false)
	return TerminalOutcome{}
}

func handleStructuredResponse(args map[string]interface{}, toolCallID string, schema *SchemaHandle, pendingAnswer *string, sink ErrorSink) TerminalOutcome {
	if schema == nil {
		sink.ReportObservation(toolCallID, errorPayload(KindProtocol,
			"no completion schema is active; call "+ToolNameFinalAnswer+" instead"), true)
		return TerminalOutcome{}
	}

	structured, ok := args["structured"].(map[string]interface{})
	if !ok || structured == nil {
		sink.ReportObservation(toolCallID, errorPayload(KindInvalidArguments,
			"\"structured\" must be a JSON object"), true)
		return TerminalOutcome{}
	}

	if err := schema.Validate(structured); err != nil {
		sink.ReportObservation(toolCallID, errorPayload(KindValidationFailed, err.Error()), true)
		return TerminalOutcome{}
	}

	answer := *pendingAnswer
	if answer == "" {
		answer = "Task completed with structured response"
	}
	return TerminalOutcome{Done: true, Answer: answer, Structured: structured}
}
