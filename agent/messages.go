package agent

import "github.com/openai/openai-go/v3"

// Message is the host-facing chat message type accepted by
// Engine.RunWithMessages, kept independent of the openai-go wire types so
// the public API does not leak provider SDK types.
type Message struct {
	Role       string // "system", "user", "assistant", or "tool"
	Content    string
	ToolCalls  []ToolCallRef // only meaningful for role "assistant"
	ToolCallID string        // only meaningful for role "tool"
}

// ToolCallRef lets an advanced host replay an assistant turn that issued
// tool calls when seeding Engine.RunWithMessages with prior history.
type ToolCallRef struct {
	ID        string
	Name      string
	Arguments string
}

// SystemMessage builds a system-role Message.
func SystemMessage(content string) Message { return Message{Role: "system", Content: content} }

// UserMessage builds a user-role Message.
func UserMessage(content string) Message { return Message{Role: "user", Content: content} }

// AssistantMessage builds an assistant-role Message with plain content.
func AssistantMessage(content string) Message { return Message{Role: "assistant", Content: content} }

// ToolResultMessage builds a tool-role Message responding to toolCallID.
func ToolResultMessage(toolCallID, content string) Message {
	return Message{Role: "tool", Content: content, ToolCallID: toolCallID}
}

// toOpenAIMessages projects host Messages to the provider's wire shape,
// the message-list-mode analogue of Memory.AsMessages.
func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			out = append(out, openai.SystemMessage(m.Content))
		case "tool":
			out = append(out, openai.ToolMessage(m.Content, m.ToolCallID))
		case "assistant":
			if len(m.ToolCalls) == 0 {
				out = append(out, openai.AssistantMessage(m.Content))
				continue
			}
			calls := make([]openai.ChatCompletionMessageToolCallUnionParam, len(m.ToolCalls))
			for i, tc := range m.ToolCalls {
				calls[i] = openai.ChatCompletionMessageToolCallUnionParam{
					OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
						ID: tc.ID,
						Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
							Name:      tc.Name,
							Arguments: tc.Arguments,
						},
					},
				}
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{ToolCalls: calls},
			})
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
