package reception

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// TranscriptStore keeps a per-session audit log of reception turns, one
// "User: ..." or "Agent: ..." line per entry. Separate from task history so
// it survives task completion and store restarts.
type TranscriptStore struct {
	mu   sync.Mutex
	path string
}

func NewTranscriptStore(path string) *TranscriptStore {
	return &TranscriptStore{path: path}
}

func (t *TranscriptStore) Append(sessionID string, lines ...string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	all, err := t.readAll()
	if err != nil {
		return err
	}
	all[sessionID] = append(all[sessionID], lines...)
	return t.writeAll(all)
}

func (t *TranscriptStore) History(sessionID string) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	all, err := t.readAll()
	if err != nil {
		return nil, err
	}
	return all[sessionID], nil
}

func (t *TranscriptStore) readAll() (map[string][]string, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]string{}, nil
		}
		return nil, fmt.Errorf("read transcript store: %w", err)
	}

	all := map[string][]string{}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("decode transcript store: %w", err)
	}
	return all, nil
}

func (t *TranscriptStore) writeAll(all map[string][]string) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("create transcript store dir: %w", err)
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encode transcript store: %w", err)
	}
	if err := os.WriteFile(t.path, data, 0o644); err != nil {
		return fmt.Errorf("write transcript store: %w", err)
	}
	return nil
}
