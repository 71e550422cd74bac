package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/podcast-flow/internal/episode"
)

// Run records the transitions of a single pipeline run under one run id.
// Transitions only move forward; failed can follow anything.
type Run struct {
	ID      string
	Episode string
	ledger  Ledger
	last    episode.Status
}

// NewRun starts a run for the episode with a fresh id.
func NewRun(l Ledger, name string) *Run {
	return &Run{ID: uuid.NewString(), Episode: name, ledger: l}
}

// Mark appends a transition to status.
func (r *Run) Mark(ctx context.Context, status episode.Status, detail string) error {
	if r.last.Terminal() {
		return fmt.Errorf("run %s already %s", r.ID, r.last)
	}
	if status != episode.StatusFailed && r.last != "" && !r.last.Before(status) {
		return fmt.Errorf("run %s cannot move from %s to %s", r.ID, r.last, status)
	}
	if err := r.ledger.Record(ctx, Event{RunID: r.ID, Episode: r.Episode, Status: status, Detail: detail}); err != nil {
		return err
	}
	r.last = status
	return nil
}
