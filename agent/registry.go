package agent

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
)

// Registry is the name-indexed set of registered tools. Insertion order is
// preserved and is reflected stably in Definitions(), since a model may use
// tool order as part of its own heuristics across a run.
type Registry struct {
	order []string
	tools map[string]*Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register adds a tool to the registry. It rejects an empty name and a
// duplicate name; the reserved terminal-tool names are accepted here (the
// engine shadows them with its own built-ins rather than failing
// registration) but will never reach the model as host tools.
func (r *Registry) Register(tool *Tool) error {
	if tool.Name == "" {
		return fmt.Errorf("tool name must not be empty")
	}
	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("tool %q already registered", tool.Name)
	}
	r.tools[tool.Name] = tool
	r.order = append(r.order, tool.Name)
	return nil
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (*Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

// Names returns the registered tool names in insertion order, skipping the
// two reserved terminal-tool names since those are never exposed as host
// tools.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, name := range r.order {
		if name == ToolNameFinalAnswer || name == ToolNameStructuredResponse {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Definitions renders each registered tool (excluding shadowed reserved
// names) as an OpenAI function-tool definition, in stable insertion order.
func (r *Registry) Definitions() []openai.ChatCompletionToolUnionParam {
	defs := make([]openai.ChatCompletionToolUnionParam, 0, len(r.order))
	for _, name := range r.order {
		if name == ToolNameFinalAnswer || name == ToolNameStructuredResponse {
			continue
		}
		defs = append(defs, r.tools[name].toOpenAI())
	}
	return defs
}

// Execute looks up name and awaits its executor. A lookup failure yields an
// UnknownToolError carrying the requested name.
func (r *Registry) Execute(ctx context.Context, name string, arguments map[string]interface{}) (interface{}, error) {
	tool, ok := r.Get(name)
	if !ok || name == ToolNameFinalAnswer || name == ToolNameStructuredResponse {
		return nil, &UnknownToolError{ToolName: name}
	}
	if tool.Execute == nil {
		return nil, &ToolExecutionError{ToolName: name, Err: fmt.Errorf("tool has no executor")}
	}
	value, err := tool.Execute(ctx, arguments)
	if err != nil {
		return nil, &ToolExecutionError{ToolName: name, Err: err}
	}
	return value, nil
}
