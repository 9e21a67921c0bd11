package contract

import "time"

// TaskState is the lifecycle state of a task record.
type TaskState string

const (
	TaskStateSubmitted TaskState = "submitted"
	TaskStateWorking   TaskState = "working"
	TaskStateCompleted TaskState = "completed"
	TaskStateFailed    TaskState = "failed"
)

const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

const PartTypeText = "text"

// Part is one content part of a message. Only text parts are used today.
type Part struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

func TextPart(text string) Part {
	return Part{Type: PartTypeText, Text: text}
}

// Message is one turn in a task's history. Immutable once appended.
type Message struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// FirstText returns the text of the first text part, or false if there is none.
func (m Message) FirstText() (string, bool) {
	for _, p := range m.Parts {
		if p.Type == PartTypeText {
			return p.Text, true
		}
	}
	return "", false
}

func AgentMessage(text string) Message {
	return Message{Role: RoleAgent, Parts: []Part{TextPart(text)}}
}

type TaskStatus struct {
	State     TaskState `json:"state"`
	Timestamp time.Time `json:"timestamp"`
}

// Task is one request/response interaction record. History is append-only and
// preserves chronological order of turns; tasks live for the process lifetime.
type Task struct {
	ID        string     `json:"id"`
	SessionID string     `json:"sessionId"`
	Status    TaskStatus `json:"status"`
	History   []Message  `json:"history"`
}

// Clone returns a deep copy safe to hand out across the lock boundary.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	out := &Task{
		ID:        t.ID,
		SessionID: t.SessionID,
		Status:    t.Status,
	}
	if len(t.History) > 0 {
		out.History = make([]Message, len(t.History))
		for i, m := range t.History {
			cp := Message{Role: m.Role}
			cp.Parts = append([]Part(nil), m.Parts...)
			out.History[i] = cp
		}
	}
	return out
}

// TaskSendParams identifies the task and session an inbound message belongs to.
type TaskSendParams struct {
	ID        string  `json:"id"`
	SessionID string  `json:"sessionId"`
	Message   Message `json:"message"`
}

type SendTaskRequest struct {
	ID     string         `json:"id"`
	Params TaskSendParams `json:"params"`
}

// SendTaskResponse echoes the request id and carries the full updated task.
type SendTaskResponse struct {
	ID     string `json:"id"`
	Result *Task  `json:"result"`
}

// AgentCard is the metadata surface an agent publishes about itself.
type AgentCard struct {
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	Version            string       `json:"version"`
	DefaultInputModes  []string     `json:"defaultInputModes"`
	DefaultOutputModes []string     `json:"defaultOutputModes"`
	Capabilities       Capabilities `json:"capabilities"`
	Skills             []Skill      `json:"skills"`
}

type Capabilities struct {
	Streaming bool `json:"streaming"`
}

type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}
