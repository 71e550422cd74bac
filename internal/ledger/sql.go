package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/nguyentantai21042004/podcast-flow/internal/episode"
)

const schema = `
CREATE TABLE IF NOT EXISTS episode_events (
	id TEXT PRIMARY KEY,
	episode TEXT NOT NULL,
	run_id TEXT NOT NULL,
	status TEXT NOT NULL,
	detail TEXT NOT NULL DEFAULT '',
	created_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_episode_events_episode ON episode_events (episode, created_at);
`

type sqlLedger struct {
	db       *sql.DB
	postgres bool
	now      func() time.Time
}

// Open connects to the ledger database. driver is "sqlite" (dsn is a file
// path) or "postgres" (dsn is a connection string).
func Open(ctx context.Context, driver, dsn string) (Ledger, error) {
	var (
		db  *sql.DB
		err error
	)

	switch driver {
	case "sqlite":
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("create ledger directory: %w", err)
			}
		}
		db, err = sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	case "postgres":
		db, err = sql.Open("pgx", dsn)
	default:
		return nil, fmt.Errorf("unknown ledger driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	l := &sqlLedger{db: db, postgres: driver == "postgres", now: time.Now}
	if err := l.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate ledger: %w", err)
	}
	return l, nil
}

func (l *sqlLedger) migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := l.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// rebind turns ? placeholders into $n for postgres.
func (l *sqlLedger) rebind(query string) string {
	if !l.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (l *sqlLedger) Record(ctx context.Context, ev Event) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = l.now()
	}

	_, err := l.db.ExecContext(ctx, l.rebind(
		`INSERT INTO episode_events (id, episode, run_id, status, detail, created_at) VALUES (?, ?, ?, ?, ?, ?)`),
		ev.ID, ev.Episode, ev.RunID, string(ev.Status), ev.Detail, ev.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("record %s %s: %w", ev.Episode, ev.Status, err)
	}
	return nil
}

func (l *sqlLedger) Last(ctx context.Context, name string) (Event, error) {
	row := l.db.QueryRowContext(ctx, l.rebind(
		`SELECT id, episode, run_id, status, detail, created_at FROM episode_events WHERE episode = ? ORDER BY created_at DESC LIMIT 1`), name)
	ev, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, ErrNoEvents
	}
	if err != nil {
		return Event{}, fmt.Errorf("query last event of %s: %w", name, err)
	}
	return ev, nil
}

func (l *sqlLedger) History(ctx context.Context, name string) ([]Event, error) {
	rows, err := l.db.QueryContext(ctx, l.rebind(
		`SELECT id, episode, run_id, status, detail, created_at FROM episode_events WHERE episode = ? ORDER BY created_at ASC`), name)
	if err != nil {
		return nil, fmt.Errorf("query history of %s: %w", name, err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (l *sqlLedger) Close() error {
	return l.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (Event, error) {
	var (
		ev     Event
		status string
		nanos  int64
	)
	if err := s.Scan(&ev.ID, &ev.Episode, &ev.RunID, &status, &ev.Detail, &nanos); err != nil {
		return Event{}, err
	}
	ev.Status = episode.Status(status)
	ev.CreatedAt = time.Unix(0, nanos)
	return ev, nil
}
