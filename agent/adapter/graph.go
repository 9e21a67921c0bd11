package adapter

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	nodex "github.com/krittin-w/frontdesk/agent/nodes"
)

func (s *Service) compileSendTaskGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("upsert_task",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.UpsertTask(ctx, in, s.tasks)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node upsert_task: %w", err)
	}

	if err := graph.AddLambdaNode("invoke_agent",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.InvokeAgent(ctx, in, s.agent)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node invoke_agent: %w", err)
	}

	if err := graph.AddLambdaNode("complete_task",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.CompleteTask(in, s.tasks)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node complete_task: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_response",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeResponse(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_response: %w", err)
	}

	if err := graph.AddLambdaNode("respond_cached",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.RespondCached(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node respond_cached: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "upsert_task"},
		{"invoke_agent", "complete_task"},
		{"complete_task", "finalize_response"},
		{"finalize_response", compose.END},
		{"respond_cached", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	replayBranch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			if in.Replay {
				return "respond_cached", nil
			}
			return "invoke_agent", nil
		},
		map[string]bool{"respond_cached": true, "invoke_agent": true},
	)
	if err := graph.AddBranch("upsert_task", replayBranch); err != nil {
		return nil, fmt.Errorf("add replay branch: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName(s.name+".send_task"))
	if err != nil {
		return nil, fmt.Errorf("compile adapter graph: %w", err)
	}
	return runner, nil
}
