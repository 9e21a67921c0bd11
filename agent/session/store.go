// Package session persists the single-slot conversational context shared
// across agents: the last doctor selected for a session id. The value is a
// snapshot, overwritten on every save, never merged.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	rosterx "github.com/krittin-w/frontdesk/agent/roster"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidSession  = errors.New("session id is empty")
)

// Store is the persistence contract for the per-session doctor slot.
type Store interface {
	// Load returns the last saved snapshot, or ErrSessionNotFound when the
	// session has never been populated.
	Load(ctx context.Context, sessionID string) (rosterx.Doctor, error)
	// Save overwrites the slot for the session id. Other sessions are
	// untouched.
	Save(ctx context.Context, sessionID string, doc rosterx.Doctor) error
	Delete(ctx context.Context, sessionID string) error
}

// Config selects and parameterizes the backend.
type Config struct {
	// FilePath and SQLitePath fall back to paths under the application data
	// directory when left empty.
	Backend    string `envconfig:"BACKEND" split_words:"true" default:"file"`
	FilePath   string `envconfig:"FILE_PATH" split_words:"true"`
	SQLitePath string `envconfig:"SQLITE_PATH" split_words:"true"`

	RedisAddr     string `envconfig:"REDIS_ADDR" split_words:"true" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" split_words:"true"`
	RedisDB       int    `envconfig:"REDIS_DB" split_words:"true" default:"0"`
}

// NewStore builds the backend named by cfg.Backend: "file" (default),
// "sqlite", or "redis".
func NewStore(cfg Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", "file":
		return NewFileStore(cfg.FilePath), nil
	case "sqlite":
		return NewSQLiteStore(cfg.SQLitePath)
	case "redis":
		return NewRedisStore(cfg), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}

func validSessionID(sessionID string) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", ErrInvalidSession
	}
	return sessionID, nil
}
