package agent

import "fmt"

// Reserved terminal-tool names. Hosts may not register these; if present in
// a registry they are shadowed by the engine's own built-ins.
const (
	ToolNameFinalAnswer        = "final_answer"
	ToolNameStructuredResponse = "structured_response"
)

// buildFinalAnswerTool renders the no-schema terminal tool: an answer
// string plus an optional passthrough structured object.
func buildFinalAnswerTool() *Tool {
	t := NewTool(ToolNameFinalAnswer, "Provide the final answer to the user's task. Call this once you have completed the task and are ready to respond.").
		AddParameter("answer", "string", "The final answer to give the user.", true)

	props := t.Parameters["properties"].(map[string]interface{})
	props["structured"] = map[string]interface{}{
		"type":        "object",
		"description": "Optional structured payload accompanying the answer.",
	}
	props["_meta"] = map[string]interface{}{
		"type":        "object",
		"description": "Optional metadata. Ignored by the engine.",
	}
	return t
}

// buildStructuredResponseTool renders the schema-driven terminal tool. The
// host schema's properties and required arrays are copied verbatim into
// the "structured" parameter so the model sees the concrete target shape
// instead of an opaque object.
func buildStructuredResponseTool(schema *SchemaHandle) *Tool {
	structuredParam := map[string]interface{}{
		"type":       "object",
		"properties": schema.Properties(),
		"required":   schema.Required(),
	}

	t := &Tool{
		Name: ToolNameStructuredResponse,
		Description: fmt.Sprintf(
			"Call this tool with a JSON payload conforming to the %s schema to complete the task. This is the ONLY way to complete the task.",
			schema.Title(),
		),
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"structured": structuredParam,
				"_meta": map[string]interface{}{
					"type":        "object",
					"description": "Optional metadata. Ignored by the engine.",
				},
			},
			"required": []string{"structured"},
		},
	}
	return t
}

// schemaSystemPromptInstruction is prepended (or merged into) the system
// message whenever a completion schema is active.
func schemaSystemPromptInstruction(schema *SchemaHandle) string {
	return fmt.Sprintf(
		"When you finish the task, you MUST call the %s tool with a JSON payload that strictly conforms to the %s schema. This is the ONLY way to complete the task.",
		ToolNameStructuredResponse, schema.Title(),
	)
}

// noSchemaSystemPromptInstruction is the sister instruction used when no
// completion schema is configured.
func noSchemaSystemPromptInstruction() string {
	return fmt.Sprintf(
		"When you finish the task, you MUST call the %s tool with your answer. This is the ONLY way to complete the task.",
		ToolNameFinalAnswer,
	)
}

// withInjectedSystemPrompt merges instruction into an existing system
// prompt, appending it on its own line rather than overwriting the host's
// own system prompt.
func withInjectedSystemPrompt(existing, instruction string) string {
	if existing == "" {
		return instruction
	}
	return existing + "\n\n" + instruction
}
