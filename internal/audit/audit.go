// Package audit keeps a local record of admin mutations issued through
// this front end. The backend stays the system of record for rooms and
// bookings; this trail only answers "who clicked what here, and did the
// backend accept it".
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Outcomes recorded per action.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
)

// Entry is one recorded admin action.
type Entry struct {
	ID         int64
	ActorID    string
	ActorEmail string
	Action     string
	EntityType string
	EntityID   string
	Outcome    string
	Message    string
	CreatedAt  time.Time
}

// DB wraps sql.DB for the audit trail.
type DB struct {
	*sql.DB
}

// NewDB opens the database at path and runs migrations.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if err := createTables(db); err != nil {
		return nil, err
	}
	return &DB{db}, nil
}

func createTables(db *sql.DB) error {
	query := `CREATE TABLE IF NOT EXISTS admin_actions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		actor_id TEXT NOT NULL,
		actor_email TEXT NOT NULL,
		action TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id TEXT,
		outcome TEXT NOT NULL,
		message TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("create admin_actions: %w", err)
	}
	return nil
}

// Record appends one entry to the trail.
func (db *DB) Record(ctx context.Context, e Entry) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO admin_actions (actor_id, actor_email, action, entity_type, entity_id, outcome, message)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ActorID, e.ActorEmail, e.Action, e.EntityType, e.EntityID, e.Outcome, e.Message)
	if err != nil {
		return fmt.Errorf("record admin action: %w", err)
	}
	return nil
}

// Recent returns the newest entries, newest first.
func (db *DB) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.QueryContext(ctx,
		`SELECT id, actor_id, actor_email, action, entity_type, COALESCE(entity_id, ''), outcome, COALESCE(message, ''), created_at
		 FROM admin_actions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.ActorEmail, &e.Action, &e.EntityType, &e.EntityID, &e.Outcome, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
