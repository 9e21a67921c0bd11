package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	rosterx "github.com/krittin-w/frontdesk/agent/roster"
)

// FileStore keeps every session slot in one pretty-printed JSON file using a
// load-all, mutate-one-key, write-all cycle. A missing file reads as an empty
// store; an unreadable or corrupt file fails the call, not the process.
//
// The mutex serializes writers within this process only. Concurrent writers
// from other processes race (last write wins); use the sqlite or redis backend
// when that matters.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context, sessionID string) (rosterx.Doctor, error) {
	sessionID, err := validSessionID(sessionID)
	if err != nil {
		return rosterx.Doctor{}, err
	}
	if err := ctx.Err(); err != nil {
		return rosterx.Doctor{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.readAll()
	if err != nil {
		return rosterx.Doctor{}, err
	}
	doc, ok := sessions[sessionID]
	if !ok {
		return rosterx.Doctor{}, ErrSessionNotFound
	}
	return doc, nil
}

func (s *FileStore) Save(ctx context.Context, sessionID string, doc rosterx.Doctor) error {
	sessionID, err := validSessionID(sessionID)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.readAll()
	if err != nil {
		return err
	}
	sessions[sessionID] = doc
	return s.writeAll(sessions)
}

func (s *FileStore) Delete(ctx context.Context, sessionID string) error {
	sessionID, err := validSessionID(sessionID)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.readAll()
	if err != nil {
		return err
	}
	if _, ok := sessions[sessionID]; !ok {
		return nil
	}
	delete(sessions, sessionID)
	return s.writeAll(sessions)
}

func (s *FileStore) readAll() (map[string]rosterx.Doctor, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]rosterx.Doctor), nil
		}
		return nil, fmt.Errorf("read session store: %w", err)
	}

	sessions := make(map[string]rosterx.Doctor)
	if len(raw) == 0 {
		return sessions, nil
	}
	if err := json.Unmarshal(raw, &sessions); err != nil {
		return nil, fmt.Errorf("parse session store: %w", err)
	}
	return sessions, nil
}

func (s *FileStore) writeAll(sessions map[string]rosterx.Doctor) error {
	raw, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session store: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session store dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write session store: %w", err)
	}
	return nil
}
