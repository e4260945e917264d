// Package storage persists a local journal of ClickUp API calls.
//
// The journal is a SQLite database (pure Go driver) holding one row per
// logical call: method, path, final status, attempt count and error kind.
// It never stores request or response bodies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/clickup-mcp/pkg/clickup"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Entry is one journaled API call.
type Entry struct {
	ID         string    `json:"id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Status     int       `json:"status"`
	Attempts   int       `json:"attempts"`
	Kind       string    `json:"kind,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
}

// Stats aggregates the journal.
type Stats struct {
	Total       int `json:"total"`
	Failed      int `json:"failed"`
	RateLimited int `json:"rate_limited"`
	Retried     int `json:"retried"`
}

// Journal records clickup.RequestRecord values. It implements
// clickup.Observer.
type Journal struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ clickup.Observer = (*Journal)(nil)

// OpenJournal opens or creates the journal database at path.
func OpenJournal(path string, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("journal: create data dir: %w", err)
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("journal: pragma %q: %w", p, err)
		}
	}

	j := &Journal{db: db, logger: logger}
	if err := j.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: migration: %w", err)
	}
	return j, nil
}

// Close closes the underlying database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) migrate() error {
	_, err := j.db.Exec(`
		CREATE TABLE IF NOT EXISTS requests (
			id          TEXT PRIMARY KEY,
			method      TEXT NOT NULL,
			path        TEXT NOT NULL,
			status      INTEGER NOT NULL DEFAULT 0,
			attempts    INTEGER NOT NULL DEFAULT 0,
			kind        TEXT NOT NULL DEFAULT '',
			started_at  INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_requests_started ON requests(started_at DESC);
	`)
	return err
}

// ObserveRequest stores rec. Write failures are logged, never returned,
// so journaling cannot fail an API call.
func (j *Journal) ObserveRequest(ctx context.Context, rec clickup.RequestRecord) {
	if err := j.Record(context.WithoutCancel(ctx), rec); err != nil {
		j.logger.Warn("journal write failed", "id", rec.ID, "error", err)
	}
}

// Record inserts rec.
func (j *Journal) Record(ctx context.Context, rec clickup.RequestRecord) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO requests (id, method, path, status, attempts, kind, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Method, rec.Path, rec.Status, rec.Attempts, string(rec.Kind),
		rec.StartedAt.UnixMilli(), rec.Duration.Milliseconds(),
	)
	return err
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, method, path, status, attempts, kind, started_at, duration_ms
		 FROM requests ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: query recent: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			started int64
		)
		if err := rows.Scan(&e.ID, &e.Method, &e.Path, &e.Status, &e.Attempts, &e.Kind, &started, &e.DurationMS); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		e.StartedAt = time.UnixMilli(started).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// Stats summarizes every journaled call.
func (j *Journal) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := j.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN kind != '' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN attempts > 1 THEN 1 ELSE 0 END), 0)
		FROM requests`, string(clickup.KindRateLimited),
	).Scan(&s.Total, &s.Failed, &s.RateLimited, &s.Retried)
	if err != nil {
		return Stats{}, fmt.Errorf("journal: stats: %w", err)
	}
	return s, nil
}

// Prune deletes entries that started before cutoff and reports how many
// were removed.
func (j *Journal) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := j.db.ExecContext(ctx, `DELETE FROM requests WHERE started_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("journal: prune: %w", err)
	}
	return res.RowsAffected()
}
