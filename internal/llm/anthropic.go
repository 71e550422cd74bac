package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider generates text with the Anthropic Messages API.
type AnthropicProvider struct {
	client    anthropic.Client
	model     string
	label     string
	maxTokens int
}

// NewAnthropicProvider creates a provider from settings. BaseURL is optional
// and allows Anthropic-compatible endpoints.
func NewAnthropicProvider(s Settings) (*AnthropicProvider, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key not configured")
	}

	opts := []option.RequestOption{option.WithAPIKey(s.APIKey)}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}

	return &AnthropicProvider{
		client:    anthropic.NewClient(opts...),
		model:     s.Model,
		label:     s.Label,
		maxTokens: s.MaxTokens,
	}, nil
}

func (p *AnthropicProvider) Name() string  { return "anthropic" }
func (p *AnthropicProvider) Label() string { return p.label }

func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.maxTokens
	}

	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		status := 0
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		return "", classify(p.Name(), status, err)
	}

	if msg.StopReason == "refusal" {
		return "", &ProviderError{Provider: p.Name(), Kind: KindRefused, Err: fmt.Errorf("model refused the request")}
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", &ProviderError{Provider: p.Name(), Kind: KindEmpty, Err: fmt.Errorf("no text in response (stop reason %q)", msg.StopReason)}
	}
	return text.String(), nil
}
