package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider generates text with the Gemini API.
type GeminiProvider struct {
	client    *genai.Client
	model     string
	label     string
	maxTokens int
}

func NewGeminiProvider(ctx context.Context, s Settings) (*GeminiProvider, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}

	cc := &genai.ClientConfig{
		APIKey:  s.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if s.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: s.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	return &GeminiProvider{
		client:    client,
		model:     s.Model,
		label:     s.Label,
		maxTokens: s.MaxTokens,
	}, nil
}

func (p *GeminiProvider) Name() string  { return "gemini" }
func (p *GeminiProvider) Label() string { return p.label }

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.maxTokens
	}
	temperature := float32(req.Temperature)

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: int32(maxTokens),
	})
	if err != nil {
		status := 0
		var apiErr genai.APIError
		var apiErrPtr *genai.APIError
		if errors.As(err, &apiErr) {
			status = apiErr.Code
		} else if errors.As(err, &apiErrPtr) {
			status = apiErrPtr.Code
		}
		return "", classify(p.Name(), status, err)
	}

	if result == nil {
		return "", &ProviderError{Provider: p.Name(), Kind: KindEmpty, Err: fmt.Errorf("empty response from Gemini")}
	}
	if fb := result.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", &ProviderError{Provider: p.Name(), Kind: KindRefused, Err: fmt.Errorf("prompt blocked: %s", fb.BlockReason)}
	}
	if len(result.Candidates) > 0 {
		cand := result.Candidates[0]
		if cand.FinishReason == genai.FinishReasonSafety {
			return "", &ProviderError{Provider: p.Name(), Kind: KindRefused, Err: fmt.Errorf("response blocked: %s", cand.FinishReason)}
		}
		if cand.Content != nil {
			var text strings.Builder
			for _, part := range cand.Content.Parts {
				if part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			if text.Len() > 0 {
				return text.String(), nil
			}
		}
	}
	return "", &ProviderError{Provider: p.Name(), Kind: KindEmpty, Err: fmt.Errorf("empty response from Gemini")}
}
