package generator

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/podcast-flow/internal/llm"
	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
)

type implSingle struct {
	name     string
	subject  string
	provider llm.TextGenerator
	prompt   func(Input) string
	opts     Options
	logger   logger.Logger
}

func (g *implSingle) Name() string { return g.name }

func (g *implSingle) Generate(ctx context.Context, in Input) (string, error) {
	g.logger.Info(ctx, "Creating %s with %s...", g.name, g.provider.Label())
	return call(ctx, g.logger, g.name, g.subject, g.provider, llm.Request{
		Prompt:      g.prompt(in),
		Temperature: g.opts.Temperature,
	})
}

// implMulti asks every provider in order and concatenates their labeled
// blocks. A rejected provider contributes its sentinel; the others are
// unaffected.
type implMulti struct {
	name      string
	kind      string
	providers []llm.TextGenerator
	prompt    func(Input) string
	opts      Options
	logger    logger.Logger
}

func (g *implMulti) Name() string { return g.name }

func (g *implMulti) Generate(ctx context.Context, in Input) (string, error) {
	req := llm.Request{Prompt: g.prompt(in), Temperature: g.opts.Temperature}

	blocks := make([]string, 0, len(g.providers))
	for _, p := range g.providers {
		g.logger.Info(ctx, "Creating %s suggestions with %s...", g.kind, p.Label())
		text, err := call(ctx, g.logger, g.name, "suggestions", p, req)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, p.Label()+" "+g.kind+" suggestions:\n"+text+"\n")
	}
	return strings.Join(blocks, "\n"), nil
}
