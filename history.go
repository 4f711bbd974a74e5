package sitepress

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// History records build and deploy outcomes in SQLite so a user can see
// what the last few runs did without scrolling logs. It is optional; a Site
// without a history path never touches it.
type History struct {
	db *sql.DB
}

// HistoryEntry is one recorded outcome.
type HistoryEntry struct {
	ID        int64
	Op        string // "build" or "deploy"
	OK        bool
	Detail    string // target path, script output, or error text
	CreatedAt string // RFC 3339
}

// OpenHistory opens (or creates) the history database at path, ensuring the
// parent directory exists and running schema migrations.
func OpenHistory(path string) (*History, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &FileError{Op: "create", Path: dir, Err: err}
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the preview server read history while a deploy records into
	// it; the busy timeout makes writers wait instead of failing.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	h := &History{db: db}
	if err := h.ensureSchema(); err != nil {
		return nil, err
	}
	return h, nil
}

// Close closes the underlying database connection.
func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) ensureSchema() error {
	_, err := h.db.Exec(`
CREATE TABLE IF NOT EXISTS outcomes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    op TEXT NOT NULL,
    ok INTEGER NOT NULL,
    detail TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`)
	return err
}

// Record stores one outcome.
func (h *History) Record(op string, ok bool, detail string) error {
	okInt := 0
	if ok {
		okInt = 1
	}
	_, err := h.db.Exec(
		`INSERT INTO outcomes (op, ok, detail, created_at) VALUES (?, ?, ?, ?)`,
		op, okInt, detail, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Recent returns up to limit outcomes, newest first.
func (h *History) Recent(limit int) ([]HistoryEntry, error) {
	rows, err := h.db.Query(
		`SELECT id, op, ok, detail, created_at FROM outcomes ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var ok int
		if err := rows.Scan(&e.ID, &e.Op, &ok, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.OK = ok == 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
