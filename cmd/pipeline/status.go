package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nguyentantai21042004/podcast-flow/internal/episode"
	"github.com/nguyentantai21042004/podcast-flow/internal/ledger"
)

type statusCmd struct {
	Episode string `arg:"" help:"Episode name (file name without extension)."`
	History bool   `help:"Print every recorded transition, not just the latest."`
}

func (c *statusCmd) Run(a *app) error {
	return printStatus(a.ctx, os.Stdout, a.ledger, c.Episode, c.History)
}

func printStatus(ctx context.Context, w io.Writer, led ledger.Ledger, name string, history bool) error {
	if err := episode.ValidateName(name); err != nil {
		return err
	}

	if !history {
		ev, err := led.Last(ctx, name)
		if errors.Is(err, ledger.ErrNoEvents) {
			fmt.Fprintf(w, "%s: no runs recorded\n", name)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read status of %s: %w", name, err)
		}
		fmt.Fprintf(w, "%s: %s\n", name, formatEvent(ev))
		return nil
	}

	events, err := led.History(ctx, name)
	if err != nil {
		return fmt.Errorf("read history of %s: %w", name, err)
	}
	if len(events) == 0 {
		fmt.Fprintf(w, "%s: no runs recorded\n", name)
		return nil
	}
	for _, ev := range events {
		fmt.Fprintf(w, "%s  %s\n", ev.RunID, formatEvent(ev))
	}
	return nil
}

func formatEvent(ev ledger.Event) string {
	s := fmt.Sprintf("%s at %s", ev.Status, ev.CreatedAt.UTC().Format(time.RFC3339))
	if ev.Detail != "" {
		s += " (" + ev.Detail + ")"
	}
	return s
}
