package agent

import (
	"context"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Provider is the chat-completion transport the engine depends on. The
// engine never constructs HTTP requests itself; everything it needs from
// a provider fits this one method.
type Provider interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// openAIProvider is the default Provider, a thin wrapper over the
// openai-go client.
type openAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider builds a Provider against an OpenAI-compatible
// endpoint. An empty baseURL uses the default (api.openai.com); a
// non-empty one targets any OpenAI-compatible endpoint (e.g. Ollama, a
// local proxy).
func NewOpenAIProvider(apiKey, baseURL string) (Provider, error) {
	if apiKey == "" {
		return nil, newError(KindConfiguration, "API key is required", ErrMissingAPIKey)
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)
	return &openAIProvider{client: &client}, nil
}

func (p *openAIProvider) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	completion, err := p.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return nil, newError(KindTransport, "chat completion request failed", err)
	}
	return completion, nil
}
