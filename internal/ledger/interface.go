// Package ledger records the lifecycle transitions of episode runs.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/nguyentantai21042004/podcast-flow/internal/episode"
)

// ErrNoEvents is returned by Last for an episode that was never recorded.
var ErrNoEvents = errors.New("ledger: no events for episode")

// Event is one lifecycle transition of one run.
type Event struct {
	ID        string
	RunID     string
	Episode   string
	Status    episode.Status
	Detail    string
	CreatedAt time.Time
}

// Ledger is an append-only log of events.
type Ledger interface {
	Record(ctx context.Context, ev Event) error
	// Last returns the most recent event of the episode.
	Last(ctx context.Context, name string) (Event, error)
	// History returns the events of the episode, oldest first.
	History(ctx context.Context, name string) ([]Event, error)
	Close() error
}
