package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider generates text with the Chat Completions API. Works with
// OpenAI-compatible endpoints via BaseURL.
type OpenAIProvider struct {
	client    *openai.Client
	model     string
	label     string
	maxTokens int
}

func NewOpenAIProvider(s Settings) (*OpenAIProvider, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("openai API key not configured")
	}

	config := openai.DefaultConfig(s.APIKey)
	if s.BaseURL != "" {
		baseURL := strings.TrimSuffix(s.BaseURL, "/")
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL += "/v1"
		}
		config.BaseURL = baseURL
	}

	return &OpenAIProvider{
		client:    openai.NewClientWithConfig(config),
		model:     s.Model,
		label:     s.Label,
		maxTokens: s.MaxTokens,
	}, nil
}

func (p *OpenAIProvider) Name() string  { return "openai" }
func (p *OpenAIProvider) Label() string { return p.label }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.maxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: float32(req.Temperature),
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	})
	if err != nil {
		status := 0
		var apiErr *openai.APIError
		var reqErr *openai.RequestError
		if errors.As(err, &apiErr) {
			status = apiErr.HTTPStatusCode
		} else if errors.As(err, &reqErr) {
			status = reqErr.HTTPStatusCode
		}
		return "", classify(p.Name(), status, err)
	}

	if len(resp.Choices) > 0 && resp.Choices[0].FinishReason == openai.FinishReasonContentFilter {
		return "", &ProviderError{Provider: p.Name(), Kind: KindRefused, Err: fmt.Errorf("response withheld by content filter")}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &ProviderError{Provider: p.Name(), Kind: KindEmpty, Err: fmt.Errorf("no choices in response")}
	}
	return resp.Choices[0].Message.Content, nil
}
