package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleTerminalToolFinalAnswerNoSchema(t *testing.T) {
	m := NewMemory("")
	sink := StepSink{Memory: m}
	var pending string

	outcome := HandleTerminalTool(ToolNameFinalAnswer, "call_1", `{"answer":"42"}`, nil, &pending, sink)

	require.True(t, outcome.Done)
	assert.Equal(t, "42", outcome.Answer)
	assert.Nil(t, outcome.Structured)
}

func TestHandleTerminalToolFinalAnswerWithSchemaIsPrelude(t *testing.T) {
	schema, err := NewSchemaHandle(sampleSchema())
	require.NoError(t, err)

	m := NewMemory("")
	sink := StepSink{Memory: m}
	var pending string

	outcome := HandleTerminalTool(ToolNameFinalAnswer, "call_1", `{"answer":"42"}`, schema, &pending, sink)

	assert.False(t, outcome.Done)
	assert.Equal(t, "42", pending)
	require.Len(t, m.Steps(), 1)
	assert.Equal(t, StepObservation, m.Steps()[0].Kind)
	assert.False(t, m.Steps()[0].IsError)
}

func TestHandleTerminalToolFinalAnswerWithInlineStructuredPayload(t *testing.T) {
	schema, err := NewSchemaHandle(sampleSchema())
	require.NoError(t, err)

	m := NewMemory("")
	sink := StepSink{Memory: m}
	var pending string

	outcome := HandleTerminalTool(ToolNameFinalAnswer, "call_1", `{"answer":"42","structured":{"summary":"done"}}`, schema, &pending, sink)

	require.True(t, outcome.Done)
	assert.Equal(t, map[string]interface{}{"summary": "done"}, outcome.Structured)
}

func TestHandleTerminalToolStructuredResponseNoSchemaIsError(t *testing.T) {
	m := NewMemory("")
	sink := StepSink{Memory: m}
	var pending string

	outcome := HandleTerminalTool(ToolNameStructuredResponse, "call_1", `{"structured":{"summary":"done"}}`, nil, &pending, sink)

	assert.False(t, outcome.Done)
	require.Len(t, m.Steps(), 1)
	assert.True(t, m.Steps()[0].IsError)
}

func TestHandleTerminalToolStructuredResponseValidationFailure(t *testing.T) {
	schema, err := NewSchemaHandle(sampleSchema())
	require.NoError(t, err)

	m := NewMemory("")
	sink := StepSink{Memory: m}
	var pending string

	outcome := HandleTerminalTool(ToolNameStructuredResponse, "call_1", `{"structured":{"score":1}}`, schema, &pending, sink)

	assert.False(t, outcome.Done)
	require.Len(t, m.Steps(), 1)
	assert.True(t, m.Steps()[0].IsError)
}

func TestHandleTerminalToolStructuredResponseSuccess(t *testing.T) {
	schema, err := NewSchemaHandle(sampleSchema())
	require.NoError(t, err)

	m := NewMemory("")
	sink := StepSink{Memory: m}
	pending := "intro text"

	outcome := HandleTerminalTool(ToolNameStructuredResponse, "call_1", `{"structured":{"summary":"done"}}`, schema, &pending, sink)

	require.True(t, outcome.Done)
	assert.Equal(t, "intro text", outcome.Answer)
	assert.Equal(t, map[string]interface{}{"summary": "done"}, outcome.Structured)
}

func TestHandleTerminalToolInvalidArguments(t *testing.T) {
	m := NewMemory("")
	sink := StepSink{Memory: m}
	var pending string

	outcome := HandleTerminalTool(ToolNameFinalAnswer, "call_1", `{not json`, nil, &pending, sink)

	assert.False(t, outcome.Done)
	require.Len(t, m.Steps(), 1)
	assert.True(t, m.Steps()[0].IsError)
}

func TestErrorPayloadShape(t *testing.T) {
	payload := errorPayload(KindValidationFailed, "bad input")
	assert.Contains(t, payload, `"error_kind":"validation_failed"`)
	assert.Contains(t, payload, `"message":"bad input"`)
}
