package recommend

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	rosterx "github.com/krittin-w/frontdesk/agent/roster"
)

// CandidateStore keeps the shortlist offered to each session between the
// ambiguous query and the follow-up selection. File backed, one JSON object
// keyed by session id.
type CandidateStore struct {
	mu   sync.Mutex
	path string
}

func NewCandidateStore(path string) *CandidateStore {
	return &CandidateStore{path: path}
}

func (c *CandidateStore) Put(sessionID string, doctors []rosterx.Doctor) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	all, err := c.readAll()
	if err != nil {
		return err
	}
	all[sessionID] = doctors
	return c.writeAll(all)
}

func (c *CandidateStore) Get(sessionID string) ([]rosterx.Doctor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	all, err := c.readAll()
	if err != nil {
		return nil, err
	}
	return all[sessionID], nil
}

func (c *CandidateStore) Delete(sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	all, err := c.readAll()
	if err != nil {
		return err
	}
	delete(all, sessionID)
	return c.writeAll(all)
}

func (c *CandidateStore) readAll() (map[string][]rosterx.Doctor, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]rosterx.Doctor{}, nil
		}
		return nil, fmt.Errorf("read candidate store: %w", err)
	}

	all := map[string][]rosterx.Doctor{}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("decode candidate store: %w", err)
	}
	return all, nil
}

func (c *CandidateStore) writeAll(all map[string][]rosterx.Doctor) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create candidate store dir: %w", err)
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encode candidate store: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write candidate store: %w", err)
	}
	return nil
}
