package agent

import (
	"context"
	"encoding/json"

	"github.com/openai/openai-go/v3"
)

// ToolExecutor is the asynchronous execute(parameters) -> value | error
// contract a Tool fulfils. Returning a non-nil error marks the call as a
// tool-execution failure; the returned value is serialised into the
// provider-bound observation.
type ToolExecutor func(ctx context.Context, parameters map[string]interface{}) (interface{}, error)

// Tool is a function the LLM can call: a name, description, JSON-Schema of
// parameters, and an executor.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
	Execute     ToolExecutor
}

// NewTool creates a new tool with an empty object schema. Add parameters
// with AddParameter, then attach behavior with WithExecutor.
func NewTool(name, description string) *Tool {
	return &Tool{
		Name:        name,
		Description: description,
		Parameters: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
			"required":   []string{},
		},
	}
}

// AddParameter adds a parameter to the tool's schema.
func (t *Tool) AddParameter(name, paramType, description string, required bool) *Tool {
	props := t.Parameters["properties"].(map[string]interface{})
	props[name] = map[string]interface{}{
		"type":        paramType,
		"description": description,
	}

	if required {
		reqs := t.Parameters["required"].([]string)
		t.Parameters["required"] = append(reqs, name)
	}

	return t
}

// WithExecutor sets the tool's executor.
func (t *Tool) WithExecutor(execute ToolExecutor) *Tool {
	t.Execute = execute
	return t
}

// toOpenAI converts Parameters into OpenAI's FunctionDefinitionParam shape.
func (t *Tool) toOpenAI() openai.ChatCompletionToolUnionParam {
	var funcParams openai.FunctionParameters
	paramsJSON, _ := json.Marshal(t.Parameters)
	_ = json.Unmarshal(paramsJSON, &funcParams)

	return openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
		Name:        t.Name,
		Description: openai.String(t.Description),
		Parameters:  funcParams,
	})
}

// Common parameter helpers, used by host tool implementations.

func StringParam(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func NumberParam(description string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": description}
}

func BoolParam(description string) map[string]interface{} {
	return map[string]interface{}{"type": "boolean", "description": description}
}

func ArrayParam(description, itemType string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": description,
		"items":       map[string]interface{}{"type": itemType},
	}
}
