package agent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToolAddParameter(t *testing.T) {
	tool := NewTool("search", "Search the web").
		AddParameter("query", "string", "The search query", true).
		AddParameter("limit", "number", "Max results", false)

	props := tool.Parameters["properties"].(map[string]interface{})
	require.Contains(t, props, "query")
	require.Contains(t, props, "limit")

	required := tool.Parameters["required"].([]string)
	assert.Equal(t, []string{"query"}, required)
}

func TestToolWithExecutor(t *testing.T) {
	called := false
	tool := NewTool("noop", "Does nothing").WithExecutor(func(ctx context.Context, parameters map[string]interface{}) (interface{}, error) {
		called = true
		return "ok", nil
	})

	value, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", value)
	assert.True(t, called)
}

func TestToolToOpenAI(t *testing.T) {
	tool := NewTool("search", "Search the web").AddParameter("query", "string", "The search query", true)
	def := tool.toOpenAI()

	encoded, err := json.Marshal(def)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), "search")
	assert.Contains(t, string(encoded), "query")
}

func TestParamHelpers(t *testing.T) {
	assert.Equal(t, "string", StringParam("d")["type"])
	assert.Equal(t, "number", NumberParam("d")["type"])
	assert.Equal(t, "boolean", BoolParam("d")["type"])

	arr := ArrayParam("d", "string")
	assert.Equal(t, "array", arr["type"])
	items := arr["items"].(map[string]interface{})
	assert.Equal(t, "string", items["type"])
}
