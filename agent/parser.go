package agent

import (
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go/v3"
)

// ParseError wraps a JSON decoding failure on a tool call's arguments,
// naming the offending function so the engine can form a tool-observation
// that teaches the model how to correct itself.
type ParseError struct {
	FunctionName string
	Err          error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("function %q: invalid arguments JSON: %v", e.FunctionName, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExtractToolCallID returns the provider's correlation token for a tool
// call, or the empty string if missing. The engine does not reject a tool
// call whose id is empty.
func ExtractToolCallID(toolCall openai.ChatCompletionMessageToolCallUnion) string {
	return toolCall.ID
}

// ExtractFunctionName returns the function name for a tool call, or the
// empty string if missing.
func ExtractFunctionName(toolCall openai.ChatCompletionMessageToolCallUnion) string {
	return toolCall.Function.Name
}

// ExtractArgumentsStr returns the raw arguments JSON string for a tool
// call, defaulting to "{}" when absent.
func ExtractArgumentsStr(toolCall openai.ChatCompletionMessageToolCallUnion) string {
	if toolCall.Function.Arguments == "" {
		return "{}"
	}
	return toolCall.Function.Arguments
}

// ParseArguments decodes an arguments JSON string into a generic object.
// functionName is carried on failure only, for error reporting.
func ParseArguments(argumentsStr, functionName string) (map[string]interface{}, error) {
	if argumentsStr == "" {
		argumentsStr = "{}"
	}
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(argumentsStr), &args); err != nil {
		return nil, &ParseError{FunctionName: functionName, Err: err}
	}
	return args, nil
}
