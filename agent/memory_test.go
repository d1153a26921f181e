package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAddStepAndCounts(t *testing.T) {
	m := NewMemory("be helpful")
	m.AddStep(Task("hello"))
	m.AddStep(Action("calculator", "call_1", nil))
	m.AddStep(Observation("call_1", "2", false))
	m.AddStep(FinalAnswerStep("2", nil))

	assert.Equal(t, 1, m.CountActions())
	assert.Equal(t, 1, m.CountObservations())

	final, ok := m.FinalAnswerStep()
	require.True(t, ok)
	assert.Equal(t, "2", final.Answer)
}

func TestMemoryFinalAnswerStepAbsent(t *testing.T) {
	m := NewMemory("")
	_, ok := m.FinalAnswerStep()
	assert.False(t, ok)
}

func TestMemoryUpdateFinalAnswerStruct(t *testing.T) {
	m := NewMemory("")
	m.AddStep(FinalAnswerStep("done", nil))
	m.UpdateFinalAnswerStruct(map[string]interface{}{"ok": true})

	final, ok := m.FinalAnswerStep()
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{"ok": true}, final.Structured)
}

func TestMemoryIterErrors(t *testing.T) {
	m := NewMemory("")
	m.AddStep(Observation("call_1", "ok", false))
	m.AddStep(Observation("call_2", "bad", true))

	errs := m.IterErrors()
	require.Len(t, errs, 1)
	assert.Equal(t, "call_2", errs[0].ToolCallID)
}

func TestMemoryAsMessagesPrependsSystemPrompt(t *testing.T) {
	m := NewMemory("be helpful")
	m.AddStep(Task("hello"))

	messages := m.AsMessages()
	require.Len(t, messages, 2)
}

func TestMemoryAsMessagesBatchesConsecutiveActions(t *testing.T) {
	m := NewMemory("")
	m.AddStep(Task("hello"))
	m.AddStep(Action("calculator", "call_1", nil))
	m.AddStep(Action("http_fetch", "call_2", nil))
	m.AddStep(Observation("call_1", "2", false))
	m.AddStep(Observation("call_2", "ok", false))

	messages := m.AsMessages()
	// user(Task), assistant(2 tool calls), tool(call_1), tool(call_2)
	require.Len(t, messages, 4)
}

func TestMemorySetSystemPrompt(t *testing.T) {
	m := NewMemory("initial")
	m.SetSystemPrompt("updated")
	assert.Equal(t, "updated", m.SystemPrompt())
}
