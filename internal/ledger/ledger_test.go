package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nguyentantai21042004/podcast-flow/internal/episode"
)

func openTestLedger(t *testing.T) *sqlLedger {
	t.Helper()

	l, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "state", "podcasts-state.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { l.Close() })

	sl := l.(*sqlLedger)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sl.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return sl
}

func TestSQLiteLedger(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t)

	if _, err := l.Last(ctx, "ep-01"); !errors.Is(err, ErrNoEvents) {
		t.Fatalf("Last() on empty ledger error = %v, want ErrNoEvents", err)
	}

	run := NewRun(l, "ep-01")
	for _, s := range []episode.Status{episode.StatusPending, episode.StatusUploaded, episode.StatusTranscribed} {
		if err := run.Mark(ctx, s, ""); err != nil {
			t.Fatalf("Mark(%s) error = %v", s, err)
		}
	}
	if err := NewRun(l, "ep-02").Mark(ctx, episode.StatusPending, "other episode"); err != nil {
		t.Fatal(err)
	}

	last, err := l.Last(ctx, "ep-01")
	if err != nil {
		t.Fatalf("Last() error = %v", err)
	}
	if last.Status != episode.StatusTranscribed || last.RunID != run.ID {
		t.Errorf("Last() = %+v, want transcribed in run %s", last, run.ID)
	}

	history, err := l.History(ctx, "ep-01")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	var statuses []episode.Status
	for _, ev := range history {
		statuses = append(statuses, ev.Status)
	}
	want := []episode.Status{episode.StatusPending, episode.StatusUploaded, episode.StatusTranscribed}
	if diff := cmp.Diff(want, statuses); diff != "" {
		t.Errorf("History() mismatch (-want +got):\n%s", diff)
	}
}

func TestRunTransitions(t *testing.T) {
	ctx := context.Background()
	run := NewRun(Nop(), "ep-01")

	if err := run.Mark(ctx, episode.StatusTranscribed, ""); err != nil {
		t.Fatal(err)
	}
	if err := run.Mark(ctx, episode.StatusUploaded, ""); err == nil {
		t.Error("Mark() expected error moving backwards")
	}
	if err := run.Mark(ctx, episode.StatusFailed, "boom"); err != nil {
		t.Errorf("Mark(failed) error = %v", err)
	}
	if err := run.Mark(ctx, episode.StatusComplete, ""); err == nil {
		t.Error("Mark() expected error after a terminal status")
	}
}

func TestRebind(t *testing.T) {
	pg := &sqlLedger{postgres: true}
	got := pg.rebind("SELECT * FROM t WHERE a = ? AND b = ?")
	if got != "SELECT * FROM t WHERE a = $1 AND b = $2" {
		t.Errorf("rebind() = %q", got)
	}

	lite := &sqlLedger{}
	if got := lite.rebind("a = ?"); got != "a = ?" {
		t.Errorf("rebind() for sqlite = %q", got)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), "mysql", "x"); err == nil {
		t.Error("Open() expected error for unknown driver")
	}
}
