// Package llm wraps the text generation providers behind one interface.
package llm

import "context"

// Request is a single-turn completion request.
type Request struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// TextGenerator is one generation provider bound to a model.
type TextGenerator interface {
	// Name is the provider key used in configuration ("anthropic", "openai", "gemini").
	Name() string
	// Label is the human-readable name used in results ("Claude", "GPT").
	Label() string
	Generate(ctx context.Context, req Request) (string, error)
}

// Settings configures one provider instance.
type Settings struct {
	APIKey        string
	BaseURL       string
	Model         string
	Label         string
	MaxTokens     int
	ContextTokens int
}
