package tasknode

import (
	"fmt"
	"strings"

	contractx "github.com/krittin-w/frontdesk/agent/contract"
)

func ValidateRequest(in GraphInput) (*GraphState, error) {
	taskID := strings.TrimSpace(in.Request.Params.ID)
	if taskID == "" {
		return nil, fmt.Errorf("%w: task id is required", contractx.ErrEmptyTaskID)
	}

	sessionID := strings.TrimSpace(in.Request.Params.SessionID)
	if sessionID == "" {
		sessionID = taskID
	}

	query, hasText := in.Request.Params.Message.FirstText()

	return &GraphState{
		Request:   in.Request,
		Query:     strings.TrimSpace(query),
		HasText:   hasText && strings.TrimSpace(query) != "",
		SessionID: sessionID,
	}, nil
}
