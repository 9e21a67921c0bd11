package tasknode

import (
	"context"
	"fmt"

	contractx "github.com/krittin-w/frontdesk/agent/contract"
	taskx "github.com/krittin-w/frontdesk/agent/task"
)

func UpsertTask(ctx context.Context, in *GraphState, store *taskx.Store) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	t, err := store.Upsert(in.Request.Params)
	if err != nil {
		return nil, fmt.Errorf("upsert task %s: %w", in.Request.Params.ID, err)
	}
	in.Task = t
	in.Replay = t.Status.State == contractx.TaskStateCompleted && !in.HasText
	return in, nil
}
