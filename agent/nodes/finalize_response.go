package tasknode

import (
	"fmt"

	contractx "github.com/krittin-w/frontdesk/agent/contract"
)

func FinalizeResponse(in *GraphState) (GraphOutput, error) {
	if in == nil || in.Task == nil {
		return GraphOutput{}, fmt.Errorf("%w: task missing from graph state", contractx.ErrValidation)
	}
	return GraphOutput{Task: in.Task}, nil
}

// RespondCached answers a replayed request straight from the stored task.
func RespondCached(in *GraphState) (GraphOutput, error) {
	return FinalizeResponse(in)
}
