package llm

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/podcast-flow/internal/tokens"
)

// Counter estimates prompt tokens.
type Counter interface {
	Count(text string) int
}

type budgetGuard struct {
	TextGenerator
	counter       Counter
	contextTokens int
	maxTokens     int
}

// WithBudget refuses requests whose estimated size does not fit the
// provider's context window, without calling the provider. The refusal is a
// context overflow rejection, the same as the provider itself would return.
// maxTokens is the output size assumed when a request does not set one.
func WithBudget(gen TextGenerator, counter Counter, contextTokens, maxTokens int) TextGenerator {
	if counter == nil || contextTokens <= 0 {
		return gen
	}
	return &budgetGuard{TextGenerator: gen, counter: counter, contextTokens: contextTokens, maxTokens: maxTokens}
}

func (b *budgetGuard) Generate(ctx context.Context, req Request) (string, error) {
	n := b.counter.Count(req.Prompt)
	out := req.MaxTokens
	if out == 0 {
		out = b.maxTokens
	}
	if !tokens.Fits(n, out, b.contextTokens) {
		return "", &ProviderError{
			Provider: b.Name(),
			Kind:     KindContextOverflow,
			Err:      fmt.Errorf("estimated %d prompt tokens + %d output tokens exceed the %d token window", n, out, b.contextTokens),
		}
	}
	return b.TextGenerator.Generate(ctx, req)
}
