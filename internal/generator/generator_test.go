package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nguyentantai21042004/podcast-flow/internal/llm"
	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
)

type fakeProvider struct {
	name    string
	label   string
	text    string
	err     error
	prompts []string
}

func (f *fakeProvider) Name() string  { return f.name }
func (f *fakeProvider) Label() string { return f.label }
func (f *fakeProvider) Generate(ctx context.Context, req llm.Request) (string, error) {
	f.prompts = append(f.prompts, req.Prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func overflow(provider string) error {
	return &llm.ProviderError{Provider: provider, Kind: llm.KindContextOverflow, StatusCode: 400, Err: errors.New("maximum context length exceeded")}
}

func TestSingleGenerator(t *testing.T) {
	claude := &fakeProvider{name: "anthropic", label: "Claude", text: "- [00:00:00] Intro"}
	gen := NewChapters(claude, Options{Temperature: 0.7}, logger.Nop())

	got, err := gen.Generate(context.Background(), Input{Transcript: "**A**: hi [00:00:01]"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "- [00:00:00] Intro" {
		t.Errorf("Generate() = %q", got)
	}
	if gen.Name() != Chapters {
		t.Errorf("Name() = %q, want %q", gen.Name(), Chapters)
	}
	if len(claude.prompts) != 1 || !strings.Contains(claude.prompts[0], "**A**: hi [00:00:01]") {
		t.Errorf("prompt does not carry the transcript: %q", claude.prompts)
	}
}

func TestSingleGeneratorDegrades(t *testing.T) {
	claude := &fakeProvider{name: "anthropic", label: "Claude", err: overflow("anthropic")}
	gen := NewShowNotes(claude, Options{}, logger.Nop())

	got, err := gen.Generate(context.Background(), Input{Transcript: "long"})
	if err != nil {
		t.Fatalf("Generate() error = %v, want degradation to a sentinel", err)
	}
	if want := "Claude show notes unavailable (context_overflow)"; got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
}

func TestChaptersSentinel(t *testing.T) {
	claude := &fakeProvider{name: "anthropic", label: "Claude", err: overflow("anthropic")}
	got, err := NewChapters(claude, Options{}, logger.Nop()).Generate(context.Background(), Input{Transcript: "long"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if want := Sentinel("Claude", "chapters", "context_overflow"); got != want || want != "Claude chapters unavailable (context_overflow)" {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
}

func TestMultiGenerator(t *testing.T) {
	tests := []struct {
		name    string
		gpt     *fakeProvider
		claude  *fakeProvider
		want    string
		wantErr bool
	}{
		{
			name:   "both providers answer",
			gpt:    &fakeProvider{name: "openai", label: "GPT", text: "1. Alpha"},
			claude: &fakeProvider{name: "anthropic", label: "Claude", text: "1. Beta"},
			want:   "GPT title suggestions:\n1. Alpha\n\nClaude title suggestions:\n1. Beta\n",
		},
		{
			name:   "first provider rejects the prompt",
			gpt:    &fakeProvider{name: "openai", label: "GPT", err: overflow("openai")},
			claude: &fakeProvider{name: "anthropic", label: "Claude", text: "1. Beta"},
			want:   "GPT title suggestions:\nGPT suggestions unavailable (context_overflow)\n\nClaude title suggestions:\n1. Beta\n",
		},
		{
			name:   "second provider rejects with max tokens",
			gpt:    &fakeProvider{name: "openai", label: "GPT", text: "1. Alpha"},
			claude: &fakeProvider{name: "anthropic", label: "Claude", err: &llm.ProviderError{Provider: "anthropic", Kind: llm.KindMaxTokens, Err: errors.New("max_tokens")}},
			want:   "GPT title suggestions:\n1. Alpha\n\nClaude title suggestions:\nClaude suggestions unavailable (max_tokens)\n",
		},
		{
			name:   "blocked prompt degrades like an overflow",
			gpt:    &fakeProvider{name: "openai", label: "GPT", text: "1. Alpha"},
			claude: &fakeProvider{name: "gemini", label: "Gemini", err: &llm.ProviderError{Provider: "gemini", Kind: llm.KindRefused, Err: errors.New("prompt blocked: SAFETY")}},
			want:   "GPT title suggestions:\n1. Alpha\n\nGemini title suggestions:\nGemini suggestions unavailable (refused)\n",
		},
		{
			name:    "empty response is fatal",
			gpt:     &fakeProvider{name: "openai", label: "GPT", err: &llm.ProviderError{Provider: "openai", Kind: llm.KindEmpty, Err: errors.New("no choices")}},
			claude:  &fakeProvider{name: "anthropic", label: "Claude", text: "1. Beta"},
			wantErr: true,
		},
		{
			name:    "auth failure is fatal",
			gpt:     &fakeProvider{name: "openai", label: "GPT", err: &llm.ProviderError{Provider: "openai", Kind: llm.KindAuth, StatusCode: 401, Err: errors.New("bad key")}},
			claude:  &fakeProvider{name: "anthropic", label: "Claude", text: "1. Beta"},
			wantErr: true,
		},
		{
			name:    "network failure is fatal",
			gpt:     &fakeProvider{name: "openai", label: "GPT", text: "1. Alpha"},
			claude:  &fakeProvider{name: "anthropic", label: "Claude", err: errors.New("dial tcp: connection refused")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewTitles([]llm.TextGenerator{tt.gpt, tt.claude}, Options{Temperature: 0.7}, logger.Nop())
			got, err := gen.Generate(context.Background(), Input{Transcript: "t", PriorTitles: []string{"Old"}})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Generate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTitlesPromptListsPriorTitles(t *testing.T) {
	gpt := &fakeProvider{name: "openai", label: "GPT", text: "x"}
	gen := NewTitles([]llm.TextGenerator{gpt}, Options{}, logger.Nop())

	_, err := gen.Generate(context.Background(), Input{
		Transcript:  "the transcript",
		PriorTitles: []string{"This Month in React – August 2023", "Office Hours"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "1. \"This Month in React – August 2023\"\n2. \"Office Hours\""
	if !strings.Contains(gpt.prompts[0], want) {
		t.Errorf("prompt %q does not contain numbered titles %q", gpt.prompts[0], want)
	}
}

func TestNewSetOrder(t *testing.T) {
	p := &fakeProvider{name: "openai", label: "GPT", text: "x"}
	set := NewSet(p, p, []llm.TextGenerator{p}, Options{}, logger.Nop())

	var names []string
	for _, g := range set {
		names = append(names, g.Name())
	}
	if diff := cmp.Diff([]string{Chapters, ShowNotes, Titles, Tweets}, names); diff != "" {
		t.Errorf("NewSet() order mismatch (-want +got):\n%s", diff)
	}
}

func TestTweetsBlockLabel(t *testing.T) {
	p := &fakeProvider{name: "anthropic", label: "Claude", text: "ship it"}
	got, err := NewTweets([]llm.TextGenerator{p}, Options{}, logger.Nop()).Generate(context.Background(), Input{Transcript: "t"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Claude tweet suggestions:\nship it\n" {
		t.Errorf("Generate() = %q", got)
	}
}
