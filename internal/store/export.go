package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/WhosEdo/gallerylog/internal/ledger"
)

// exportSchema holds the snapshot table. seq is the record's position in
// the log file, so ORDER BY seq reproduces file order exactly.
const exportSchema = `
CREATE TABLE IF NOT EXISTS events (
	seq       INTEGER PRIMARY KEY,
	ts        TEXT NOT NULL,
	actor_id  TEXT NOT NULL,
	person_id TEXT NOT NULL,
	action    TEXT NOT NULL,
	room_id   TEXT NOT NULL
);
DELETE FROM events;
`

// Export authenticates for the read operation, replays the ledger under
// a shared lock, and snapshots every valid record into a SQLite database
// at dbPath for ad-hoc querying. The flat file remains the source of
// truth; the snapshot is a disposable read-side derivation and is
// rebuilt from scratch on every export.
//
// Returns the number of records exported.
func (s *Store) Export(ctx context.Context, secret, dbPath string) (int, error) {
	records, err := s.ReadAll(ctx, secret)
	if err != nil {
		return 0, err
	}

	db, err := openExportDB(dbPath)
	if err != nil {
		return 0, &OpError{Op: "failed to open export database", Err: err}
	}
	defer db.Close()

	if err := writeSnapshot(ctx, db, records); err != nil {
		return 0, &OpError{Op: "failed to write export database", Err: err}
	}

	s.logger.Info("ledger exported", "records", len(records))
	return len(records), nil
}

// openExportDB opens (or creates) the snapshot database and applies the
// pragmas and schema. Idempotent.
func openExportDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect: %w", err)
	}

	// Single writer; the export rewrites the whole table anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	return db, nil
}

// writeSnapshot replaces the events table contents with the given
// records inside one transaction, preserving file order via seq.
func writeSnapshot(ctx context.Context, db *sql.DB, records []ledger.Record) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(exportSchema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (seq, ts, actor_id, person_id, action, room_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, i+1, r.Timestamp, r.ActorID, r.PersonID, string(r.Action), r.RoomID); err != nil {
			return fmt.Errorf("insert record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
