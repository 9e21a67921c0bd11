package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	adapterx "github.com/krittin-w/frontdesk/agent/adapter"
	contractx "github.com/krittin-w/frontdesk/agent/contract"
)

type echoAgent struct{}

func (echoAgent) Handle(ctx context.Context, query string, sessionID string) (string, error) {
	return "echo: " + query, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	card := contractx.AgentCard{
		Name:        "Hospital Reception Agent",
		Description: "Front desk assistant",
		Version:     "1.0.0",
	}
	adapter, err := adapterx.New("reception", card, echoAgent{})
	if err != nil {
		t.Fatalf("adapter.New() error = %v", err)
	}
	return New(adapter)
}

func postTask(t *testing.T, srv *Server, agent string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/agents/"+agent+"/tasks", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestSendTaskRoundTrip(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := postTask(t, srv, "reception", contractx.SendTaskRequest{
		ID: "req-1",
		Params: contractx.TaskSendParams{
			ID:        "task-1",
			SessionID: "sess-1",
			Message: contractx.Message{
				Role:  contractx.RoleUser,
				Parts: []contractx.Part{contractx.TextPart("where is cardiology?")},
			},
		},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}

	var resp contractx.SendTaskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "req-1" {
		t.Fatalf("response id = %q, want req-1", resp.ID)
	}
	if resp.Result == nil || resp.Result.Status.State != contractx.TaskStateCompleted {
		t.Fatalf("result = %+v, want completed task", resp.Result)
	}
	text, _ := resp.Result.History[len(resp.Result.History)-1].FirstText()
	if text != "echo: where is cardiology?" {
		t.Fatalf("reply = %q", text)
	}
}

func TestSendTaskMalformedBody(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/agents/reception/tasks", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSendTaskMissingTaskID(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := postTask(t, srv, "reception", contractx.SendTaskRequest{ID: "req-2"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body=%s", rec.Code, rec.Body.String())
	}
}

func TestUnknownAgent(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := postTask(t, srv, "billing", contractx.SendTaskRequest{ID: "req-3"})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAgentCard(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/agents/reception/card", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var card contractx.AgentCard
	if err := json.Unmarshal(rec.Body.Bytes(), &card); err != nil {
		t.Fatalf("decode card: %v", err)
	}
	if card.Name != "Hospital Reception Agent" {
		t.Fatalf("card name = %q", card.Name)
	}
}

func TestGetTaskSnapshot(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := postTask(t, srv, "reception", contractx.SendTaskRequest{
		ID: "req-4",
		Params: contractx.TaskSendParams{
			ID:        "task-4",
			SessionID: "sess-4",
			Message: contractx.Message{
				Role:  contractx.RoleUser,
				Parts: []contractx.Part{contractx.TextPart("hello")},
			},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("seed task: status = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/agents/reception/tasks/task-4", nil)
	getRec := httptest.NewRecorder()
	srv.ServeHTTP(getRec, req)

	if getRec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", getRec.Code)
	}
	var task contractx.Task
	if err := json.Unmarshal(getRec.Body.Bytes(), &task); err != nil {
		t.Fatalf("decode task: %v", err)
	}
	if task.ID != "task-4" || task.Status.State != contractx.TaskStateCompleted {
		t.Fatalf("task = %+v", task)
	}

	req = httptest.NewRequest(http.MethodGet, "/agents/reception/tasks/ghost", nil)
	getRec = httptest.NewRecorder()
	srv.ServeHTTP(getRec, req)
	if getRec.Code != http.StatusNotFound {
		t.Fatalf("unknown task status = %d, want 404", getRec.Code)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
