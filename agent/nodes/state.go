package tasknode

import (
	contractx "github.com/krittin-w/frontdesk/agent/contract"
)

type GraphInput struct {
	Request contractx.SendTaskRequest
}

type GraphOutput struct {
	Task *contractx.Task
}

// GraphState carries one task request through the handling pipeline.
// Nodes mutate it in place and pass the same pointer forward.
type GraphState struct {
	Request contractx.SendTaskRequest

	Query     string
	HasText   bool
	SessionID string

	Task      *contractx.Task
	ReplyText string

	// Replay marks a resend for an already completed task that carries
	// no new text, answered from the store without touching the agent.
	Replay bool
}
