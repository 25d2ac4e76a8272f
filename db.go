package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Zachkp/portfolio/internal/contact"
)

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,  -- hashed, never the raw IP
	user_agent TEXT,
	path TEXT,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	country TEXT
);
CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);

CREATE TABLE IF NOT EXISTS contact_messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	body TEXT NOT NULL,
	delivered INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS skill_clicks (
	name TEXT PRIMARY KEY,
	clicks INTEGER NOT NULL DEFAULT 0,
	last_clicked DATETIME
);
`

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer keeps sqlite from reporting SQLITE_BUSY under the tracker goroutines.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

// clickStore counts carousel item clicks for the admin dashboard.
type clickStore struct {
	db *sql.DB
}

func (s clickStore) RecordClick(name string) error {
	_, err := s.db.Exec(`
		INSERT INTO skill_clicks (name, clicks, last_clicked) VALUES (?, 1, ?)
		ON CONFLICT(name) DO UPDATE SET clicks = clicks + 1, last_clicked = excluded.last_clicked
	`, name, time.Now().UTC())
	return err
}

// saveMessage stores a submission before delivery is attempted.
func saveMessage(db *sql.DB, m contact.Message) (int64, error) {
	res, err := db.Exec(`INSERT INTO contact_messages (name, email, body, created_at) VALUES (?, ?, ?, ?)`,
		m.Name, m.Email, m.Body, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func markDelivered(db *sql.DB, id int64) error {
	_, err := db.Exec(`UPDATE contact_messages SET delivered = 1 WHERE id = ?`, id)
	return err
}
