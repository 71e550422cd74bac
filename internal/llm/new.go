package llm

import (
	"context"
	"fmt"
)

// New builds the named provider, wrapped in a budget guard when counter is
// set.
func New(ctx context.Context, name string, s Settings, counter Counter) (TextGenerator, error) {
	var (
		gen TextGenerator
		err error
	)

	switch name {
	case "anthropic":
		gen, err = NewAnthropicProvider(s)
	case "openai":
		gen, err = NewOpenAIProvider(s)
	case "gemini":
		gen, err = NewGeminiProvider(ctx, s)
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s provider: %w", name, err)
	}

	return WithBudget(gen, counter, s.ContextTokens, s.MaxTokens), nil
}
