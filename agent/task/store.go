package task

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	contractx "github.com/krittin-w/frontdesk/agent/contract"
)

var ErrTaskNotFound = errors.New("task not found")

// Store is the in-memory task registry. One mutex guards every operation so an
// append never interleaves with a concurrent completion of the same task.
type Store struct {
	mu    sync.Mutex
	tasks map[string]*contractx.Task
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		tasks: make(map[string]*contractx.Task),
		now:   time.Now,
	}
}

// Upsert returns the task registered under params.ID, creating it with empty
// history and SUBMITTED status on first sight. The inbound user message is
// appended under the same lock when it carries any parts. The returned value is
// a snapshot; the stored record is only ever touched under the store's lock.
func (s *Store) Upsert(params contractx.TaskSendParams) (*contractx.Task, error) {
	id := strings.TrimSpace(params.ID)
	if id == "" {
		return nil, fmt.Errorf("%w: upsert requires a task id", contractx.ErrEmptyTaskID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		t = &contractx.Task{
			ID:        id,
			SessionID: strings.TrimSpace(params.SessionID),
			Status: contractx.TaskStatus{
				State:     contractx.TaskStateSubmitted,
				Timestamp: s.now().UTC(),
			},
		}
		s.tasks[id] = t
	}

	if len(params.Message.Parts) > 0 {
		msg := params.Message
		if strings.TrimSpace(msg.Role) == "" {
			msg.Role = contractx.RoleUser
		}
		t.History = append(t.History, msg)
	}

	return t.Clone(), nil
}

// Complete marks the task COMPLETED and appends the agent message, atomically
// relative to every other store operation.
func (s *Store) Complete(id string, msg contractx.Message) (*contractx.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%s", ErrTaskNotFound, id)
	}

	t.Status = contractx.TaskStatus{
		State:     contractx.TaskStateCompleted,
		Timestamp: s.now().UTC(),
	}
	t.History = append(t.History, msg)

	return t.Clone(), nil
}

// Snapshot returns a copy of the task, or false if the id is unknown.
func (s *Store) Snapshot(id string) (*contractx.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}
