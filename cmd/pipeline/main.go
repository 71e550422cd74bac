package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/nguyentantai21042004/podcast-flow/internal/config"
	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
	"github.com/nguyentantai21042004/podcast-flow/internal/watcher"
)

type cli struct {
	Config string `short:"c" default:"config.yaml" help:"Path to the YAML configuration file."`

	Run    runCmd    `cmd:"" default:"withargs" help:"Process one recording (local path or URL)."`
	Watch  watchCmd  `cmd:"" help:"Process every recording dropped into the inbox directory."`
	Status statusCmd `cmd:"" help:"Show the recorded lifecycle of an episode."`
}

type runCmd struct {
	Input string `arg:"" help:"Audio or video file, or an http(s) URL to one."`
}

func (c *runCmd) Run(a *app) error {
	res, err := a.processor.Process(a.ctx, c.Input)
	if err != nil {
		return err
	}
	fmt.Printf("Results written to %s\n", res.Results)
	if res.Docx != "" {
		fmt.Printf("Word export written to %s\n", res.Docx)
	}
	return nil
}

type watchCmd struct{}

func (c *watchCmd) Run(a *app) error {
	if err := os.MkdirAll(a.cfg.Paths.Inbox, 0755); err != nil {
		return fmt.Errorf("create inbox: %w", err)
	}

	extensions := append(append([]string{}, a.cfg.Media.AudioExtensions...), a.cfg.Media.VideoExtensions...)
	w, err := watcher.New(watcher.Options{
		Dir:           a.cfg.Paths.Inbox,
		Extensions:    extensions,
		MaxConcurrent: a.cfg.Performance.MaxConcurrent,
	}, func(ctx context.Context, path string) error {
		_, err := a.processor.Process(ctx, path)
		return err
	}, a.log)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	a.log.Info(a.ctx, "Podcast pipeline is ready! Drop recordings into %s, press Ctrl+C to stop", a.cfg.Paths.Inbox)
	if err := w.Start(a.ctx); err != nil && a.ctx.Err() == nil {
		return err
	}
	a.log.Info(context.Background(), "Podcast pipeline stopped")
	return nil
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("pipeline"),
		kong.Description("Turn a podcast recording into a transcript, chapters, show notes, titles and tweets."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(c.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var a *app
	if kctx.Selected() != nil && kctx.Selected().Name == "status" {
		a, err = newLedgerApp(ctx, cfg, log)
	} else {
		a, err = newApp(ctx, cfg, log)
	}
	if err != nil {
		log.Error(ctx, "Failed to initialize: %v", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := kctx.Run(a); err != nil {
		log.Error(ctx, "%v", err)
		a.Close()
		os.Exit(1)
	}
}
