package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFinalAnswerTool(t *testing.T) {
	tool := buildFinalAnswerTool()
	assert.Equal(t, ToolNameFinalAnswer, tool.Name)

	props := tool.Parameters["properties"].(map[string]interface{})
	assert.Contains(t, props, "answer")
	assert.Contains(t, props, "structured")
}

func TestBuildStructuredResponseTool(t *testing.T) {
	schema, err := NewSchemaHandle(sampleSchema())
	require.NoError(t, err)

	tool := buildStructuredResponseTool(schema)
	assert.Equal(t, ToolNameStructuredResponse, tool.Name)
	assert.Contains(t, tool.Description, "Answer")

	props := tool.Parameters["properties"].(map[string]interface{})
	structuredParam := props["structured"].(map[string]interface{})
	assert.Contains(t, structuredParam["properties"], "summary")
}

func TestSchemaSystemPromptInstructionMentionsTool(t *testing.T) {
	schema, err := NewSchemaHandle(sampleSchema())
	require.NoError(t, err)

	instruction := schemaSystemPromptInstruction(schema)
	assert.Contains(t, instruction, ToolNameStructuredResponse)
}

func TestNoSchemaSystemPromptInstructionMentionsTool(t *testing.T) {
	instruction := noSchemaSystemPromptInstruction()
	assert.Contains(t, instruction, ToolNameFinalAnswer)
}

func TestWithInjectedSystemPrompt(t *testing.T) {
	assert.Equal(t, "only", withInjectedSystemPrompt("", "only"))
	assert.Equal(t, "base\n\nextra", withInjectedSystemPrompt("base", "extra"))
}
