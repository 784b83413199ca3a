package llm

import (
	"context"
	"fmt"
)

// Generator turns a prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// New builds the generator for provider. An empty apiKey means the
// capability is not configured and yields a nil Generator.
func New(ctx context.Context, provider, apiKey, model string) (Generator, error) {
	if apiKey == "" {
		return nil, nil
	}

	switch provider {
	case "openai":
		return NewOpenAIClient(apiKey, model), nil
	case "anthropic":
		return NewAnthropicClient(apiKey, model), nil
	case "gemini", "":
		client, err := NewGeminiClient(ctx, apiKey, model)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}
