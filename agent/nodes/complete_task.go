package tasknode

import (
	"fmt"

	contractx "github.com/krittin-w/frontdesk/agent/contract"
	taskx "github.com/krittin-w/frontdesk/agent/task"
)

func CompleteTask(in *GraphState, store *taskx.Store) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	t, err := store.Complete(in.Request.Params.ID, contractx.AgentMessage(in.ReplyText))
	if err != nil {
		return nil, fmt.Errorf("complete task %s: %w", in.Request.Params.ID, err)
	}
	in.Task = t
	return in, nil
}
