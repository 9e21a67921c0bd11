package adapter

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/krittin-w/frontdesk/agent/contract"
)

type fakeAgent struct {
	reply string
	err   error
	calls int

	lastQuery   string
	lastSession string
}

func (f *fakeAgent) Handle(ctx context.Context, query string, sessionID string) (string, error) {
	f.calls++
	f.lastQuery = query
	f.lastSession = sessionID
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func sendReq(taskID, sessionID, text string) contractx.SendTaskRequest {
	msg := contractx.Message{Role: contractx.RoleUser}
	if text != "" {
		msg.Parts = []contractx.Part{contractx.TextPart(text)}
	}
	return contractx.SendTaskRequest{
		ID: "req-" + taskID,
		Params: contractx.TaskSendParams{
			ID:        taskID,
			SessionID: sessionID,
			Message:   msg,
		},
	}
}

func newTestService(t *testing.T, agent contractx.Agent) *Service {
	t.Helper()
	svc, err := New("recommend", contractx.AgentCard{Name: "Doctor Recommendation Agent"}, agent)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return svc
}

func TestOnSendTaskCompletesWithAgentReply(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{reply: "You should see Dr. Asha Mehta."}
	svc := newTestService(t, agent)

	resp, err := svc.OnSendTask(context.Background(), sendReq("task-1", "sess-1", "I have chest pain"))
	if err != nil {
		t.Fatalf("OnSendTask() error = %v", err)
	}
	if resp.Result == nil {
		t.Fatal("OnSendTask() returned nil task")
	}
	if resp.Result.Status.State != contractx.TaskStateCompleted {
		t.Fatalf("task state = %q, want %q", resp.Result.Status.State, contractx.TaskStateCompleted)
	}
	if agent.lastQuery != "I have chest pain" || agent.lastSession != "sess-1" {
		t.Fatalf("agent saw query=%q session=%q", agent.lastQuery, agent.lastSession)
	}

	// History: the user turn followed by the agent turn.
	if n := len(resp.Result.History); n != 2 {
		t.Fatalf("history length = %d, want 2", n)
	}
	last := resp.Result.History[1]
	if last.Role != contractx.RoleAgent {
		t.Fatalf("last role = %q, want %q", last.Role, contractx.RoleAgent)
	}
	if text, _ := last.FirstText(); text != "You should see Dr. Asha Mehta." {
		t.Fatalf("agent reply = %q", text)
	}
}

func TestOnSendTaskEmptyTaskIDRejected(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &fakeAgent{reply: "hi"})

	_, err := svc.OnSendTask(context.Background(), sendReq("   ", "sess-1", "hello"))
	if !errors.Is(err, contractx.ErrEmptyTaskID) {
		t.Fatalf("expected ErrEmptyTaskID, got %v", err)
	}
}

func TestOnSendTaskNoTextPartStillCompletes(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{reply: "unused"}
	svc := newTestService(t, agent)

	resp, err := svc.OnSendTask(context.Background(), sendReq("task-2", "sess-2", ""))
	if err != nil {
		t.Fatalf("OnSendTask() error = %v", err)
	}
	if agent.calls != 0 {
		t.Fatalf("agent invoked %d times for a textless message, want 0", agent.calls)
	}
	if resp.Result.Status.State != contractx.TaskStateCompleted {
		t.Fatalf("task state = %q, want completed", resp.Result.Status.State)
	}
	text, _ := resp.Result.History[len(resp.Result.History)-1].FirstText()
	if !strings.Contains(text, "could not find any text") {
		t.Fatalf("reply = %q, want guidance about the missing text", text)
	}
}

func TestOnSendTaskAgentErrorFoldsIntoReply(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &fakeAgent{err: errors.New("model unreachable")})

	resp, err := svc.OnSendTask(context.Background(), sendReq("task-3", "sess-3", "book me in"))
	if err != nil {
		t.Fatalf("OnSendTask() error = %v, agent failures must not fail the task", err)
	}
	if resp.Result.Status.State != contractx.TaskStateCompleted {
		t.Fatalf("task state = %q, want completed", resp.Result.Status.State)
	}
	text, _ := resp.Result.History[len(resp.Result.History)-1].FirstText()
	if !strings.Contains(text, "Sorry") {
		t.Fatalf("reply = %q, want an apology", text)
	}
}

func TestOnSendTaskReplayReturnsStoredTask(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{reply: "Dr. Priya Nair is available."}
	svc := newTestService(t, agent)

	first, err := svc.OnSendTask(context.Background(), sendReq("task-4", "sess-4", "skin rash"))
	if err != nil {
		t.Fatalf("first OnSendTask() error = %v", err)
	}

	// Resend with no new text: the completed task comes back untouched.
	second, err := svc.OnSendTask(context.Background(), sendReq("task-4", "sess-4", ""))
	if err != nil {
		t.Fatalf("replay OnSendTask() error = %v", err)
	}
	if agent.calls != 1 {
		t.Fatalf("agent invoked %d times, want 1", agent.calls)
	}
	if len(second.Result.History) != len(first.Result.History) {
		t.Fatalf("replay grew history: %d -> %d", len(first.Result.History), len(second.Result.History))
	}
}

func TestOnSendTaskSecondTurnAppendsHistory(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{reply: "Done."}
	svc := newTestService(t, agent)

	if _, err := svc.OnSendTask(context.Background(), sendReq("task-5", "sess-5", "first turn")); err != nil {
		t.Fatalf("first OnSendTask() error = %v", err)
	}
	resp, err := svc.OnSendTask(context.Background(), sendReq("task-5", "sess-5", "second turn"))
	if err != nil {
		t.Fatalf("second OnSendTask() error = %v", err)
	}
	if n := len(resp.Result.History); n != 4 {
		t.Fatalf("history length = %d, want 4 (two user turns, two agent turns)", n)
	}
	if agent.calls != 2 {
		t.Fatalf("agent invoked %d times, want 2", agent.calls)
	}
}

func TestSessionDefaultsToTaskID(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{reply: "ok"}
	svc := newTestService(t, agent)

	if _, err := svc.OnSendTask(context.Background(), sendReq("task-6", "", "hello")); err != nil {
		t.Fatalf("OnSendTask() error = %v", err)
	}
	if agent.lastSession != "task-6" {
		t.Fatalf("session = %q, want task id fallback", agent.lastSession)
	}
}
