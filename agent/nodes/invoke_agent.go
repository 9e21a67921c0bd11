package tasknode

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/krittin-w/frontdesk/agent/contract"
)

const (
	missingTextReply = "I could not find any text in your message. Please describe what you need in a short sentence."
	agentErrorReply  = "Sorry, something went wrong on our side while handling your request. Please try again in a moment."
)

// InvokeAgent runs the domain agent for the current query. Agent failures do
// not fail the task: the caller still gets a completed task whose last
// message explains the problem.
func InvokeAgent(ctx context.Context, in *GraphState, agent contractx.Agent) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	if !in.HasText {
		in.ReplyText = missingTextReply
		return in, nil
	}

	reply, err := agent.Handle(ctx, in.Query, in.SessionID)
	if err != nil {
		log.Error().
			Err(err).
			Str("task_id", in.Request.Params.ID).
			Str("session_id", in.SessionID).
			Msg("agent invocation failed")
		in.ReplyText = agentErrorReply
		return in, nil
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = agentErrorReply
	}
	in.ReplyText = reply
	return in, nil
}
