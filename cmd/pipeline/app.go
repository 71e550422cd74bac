package main

import (
	"context"
	"fmt"

	supabase "github.com/supabase-community/supabase-go"

	"github.com/nguyentantai21042004/podcast-flow/internal/cache"
	"github.com/nguyentantai21042004/podcast-flow/internal/config"
	"github.com/nguyentantai21042004/podcast-flow/internal/generator"
	"github.com/nguyentantai21042004/podcast-flow/internal/ledger"
	"github.com/nguyentantai21042004/podcast-flow/internal/llm"
	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
	"github.com/nguyentantai21042004/podcast-flow/internal/processor"
	"github.com/nguyentantai21042004/podcast-flow/internal/tokens"
	"github.com/nguyentantai21042004/podcast-flow/internal/transcriber"
	"github.com/nguyentantai21042004/podcast-flow/internal/uploader"
	"github.com/nguyentantai21042004/podcast-flow/pkg/executor"
)

// app holds everything the commands need, built once from the config.
type app struct {
	ctx       context.Context
	cfg       *config.Config
	log       logger.Logger
	ledger    ledger.Ledger
	processor processor.Processor
}

func newApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*app, error) {
	var storage *supabase.Client
	if cfg.Storage.URL != "" {
		client, err := supabase.NewClient(cfg.Storage.URL, cfg.Storage.Key, nil)
		if err != nil {
			return nil, fmt.Errorf("create supabase client: %w", err)
		}
		storage = client
	}

	stores, err := buildStores(cfg, storage)
	if err != nil {
		return nil, err
	}

	var up uploader.Uploader
	if storage != nil {
		up = uploader.NewSupabase(storage.Storage, cfg.Storage.Bucket, log)
	} else {
		log.Warn(ctx, "storage.url not set: only URL inputs can be processed")
	}

	tr, err := transcriber.NewReplicate(cfg.Transcription.APIToken, cfg.Transcription.Model, log)
	if err != nil {
		return nil, err
	}

	gens, err := buildGenerators(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	led, err := openLedger(ctx, cfg)
	if err != nil {
		return nil, err
	}

	proc := processor.New(cfg, processor.Deps{
		Uploader:    up,
		Transcriber: tr,
		Generators:  gens,
		Stores:      stores,
		Ledger:      led,
		Executor:    executor.New(),
	}, log)

	return &app{ctx: ctx, cfg: cfg, log: log, ledger: led, processor: proc}, nil
}

// newLedgerApp opens only the ledger, for commands that read run history.
func newLedgerApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*app, error) {
	led, err := openLedger(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &app{ctx: ctx, cfg: cfg, log: log, ledger: led}, nil
}

func openLedger(ctx context.Context, cfg *config.Config) (ledger.Ledger, error) {
	if cfg.Ledger.Driver == "none" {
		return ledger.Nop(), nil
	}
	return ledger.Open(ctx, cfg.Ledger.Driver, cfg.Ledger.DSN)
}

func (a *app) Close() error {
	return a.ledger.Close()
}

func buildStores(cfg *config.Config, storage *supabase.Client) (processor.Stores, error) {
	if cfg.Cache.Backend == "object" {
		if storage == nil {
			return processor.Stores{}, fmt.Errorf("cache.backend object requires storage.url")
		}
		return processor.Stores{
			Raw:     cache.NewObjectStore(storage.Storage, cfg.Storage.Bucket, cfg.Paths.RawTranscripts, ".json"),
			Clean:   cache.NewObjectStore(storage.Storage, cfg.Storage.Bucket, cfg.Paths.CleanTranscripts, ".md"),
			Results: cache.NewObjectStore(storage.Storage, cfg.Storage.Bucket, cfg.Paths.Results, ".md"),
		}, nil
	}
	return processor.Stores{
		Raw:     cache.NewFileStore(cfg.Paths.RawTranscripts, ".json"),
		Clean:   cache.NewFileStore(cfg.Paths.CleanTranscripts, ".md"),
		Results: cache.NewFileStore(cfg.Paths.Results, ".md"),
	}, nil
}

// buildGenerators creates each configured provider once and the four
// artifact generators on top of them.
func buildGenerators(ctx context.Context, cfg *config.Config, log logger.Logger) ([]generator.Generator, error) {
	counter, err := tokens.New()
	if err != nil {
		log.Warn(ctx, "Token encoding unavailable, estimating prompt sizes from length: %v", err)
		counter = tokens.Fallback()
	}

	providers := make(map[string]llm.TextGenerator)
	provider := func(name string) (llm.TextGenerator, error) {
		if p, ok := providers[name]; ok {
			return p, nil
		}
		pc, ok := cfg.Provider(name)
		if !ok {
			return nil, fmt.Errorf("unknown provider %q", name)
		}
		p, err := llm.New(ctx, name, llm.Settings{
			APIKey:        pc.APIKey,
			BaseURL:       pc.BaseURL,
			Model:         pc.Model,
			Label:         pc.Label,
			MaxTokens:     pc.MaxTokens,
			ContextTokens: pc.ContextTokens,
		}, counter)
		if err != nil {
			return nil, err
		}
		providers[name] = p
		return p, nil
	}

	chapters, err := provider(cfg.Generation.Chapters)
	if err != nil {
		return nil, err
	}
	showNotes, err := provider(cfg.Generation.ShowNotes)
	if err != nil {
		return nil, err
	}
	suggestions := make([]llm.TextGenerator, 0, len(cfg.Generation.Suggestions))
	for _, name := range cfg.Generation.Suggestions {
		p, err := provider(name)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, p)
	}

	return generator.NewSet(chapters, showNotes, suggestions, generator.Options{Temperature: cfg.Generation.Temperature}, log), nil
}
