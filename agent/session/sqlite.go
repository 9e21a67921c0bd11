package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	rosterx "github.com/krittin-w/frontdesk/agent/roster"
	_ "modernc.org/sqlite"
)

// SQLiteStore backs the session slot with a transactional per-key upsert,
// removing the lost-update window the file backend tolerates.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := dbPath + "?_journal=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping session database: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS sessions (
		session_id TEXT PRIMARY KEY,
		doctor_json TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("create sessions schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, sessionID string) (rosterx.Doctor, error) {
	sessionID, err := validSessionID(sessionID)
	if err != nil {
		return rosterx.Doctor{}, err
	}

	var raw string
	row := s.db.QueryRowContext(ctx, `SELECT doctor_json FROM sessions WHERE session_id = ?`, sessionID)
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rosterx.Doctor{}, ErrSessionNotFound
		}
		return rosterx.Doctor{}, fmt.Errorf("load session: %w", err)
	}

	var doc rosterx.Doctor
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return rosterx.Doctor{}, fmt.Errorf("decode session doctor: %w", err)
	}
	return doc, nil
}

func (s *SQLiteStore) Save(ctx context.Context, sessionID string, doc rosterx.Doctor) error {
	sessionID, err := validSessionID(sessionID)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode session doctor: %w", err)
	}

	query := `
	INSERT INTO sessions (session_id, doctor_json, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(session_id) DO UPDATE SET doctor_json = excluded.doctor_json, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, sessionID, string(raw), time.Now().Unix()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, sessionID string) error {
	sessionID, err := validSessionID(sessionID)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
