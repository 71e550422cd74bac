package processor

import (
	"github.com/nguyentantai21042004/podcast-flow/internal/cache"
	"github.com/nguyentantai21042004/podcast-flow/internal/config"
	"github.com/nguyentantai21042004/podcast-flow/internal/generator"
	"github.com/nguyentantai21042004/podcast-flow/internal/ledger"
	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
	"github.com/nguyentantai21042004/podcast-flow/internal/transcriber"
	"github.com/nguyentantai21042004/podcast-flow/internal/uploader"
	"github.com/nguyentantai21042004/podcast-flow/pkg/executor"
)

// Stores are the stage caches, keyed by episode name.
type Stores struct {
	Raw     cache.Store
	Clean   cache.Store
	Results cache.Store
}

// Deps are the collaborators a Processor is built from.
type Deps struct {
	Uploader    uploader.Uploader
	Transcriber transcriber.Transcriber
	Generators  []generator.Generator
	Stores      Stores
	Ledger      ledger.Ledger
	Executor    executor.Executor
}

type implProcessor struct {
	cfg         *config.Config
	uploader    uploader.Uploader
	transcriber transcriber.Transcriber
	generators  []generator.Generator
	stores      Stores
	ledger      ledger.Ledger
	executor    executor.Executor
	logger      logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, deps Deps, log logger.Logger) Processor {
	l := deps.Ledger
	if l == nil {
		l = ledger.Nop()
	}
	exec := deps.Executor
	if exec == nil {
		exec = executor.New()
	}
	return &implProcessor{
		cfg:         cfg,
		uploader:    deps.Uploader,
		transcriber: deps.Transcriber,
		generators:  deps.Generators,
		stores:      deps.Stores,
		ledger:      l,
		executor:    exec,
		logger:      log,
	}
}
