// Package adapter exposes a domain agent behind the task protocol. It owns
// the task lifecycle (upsert, invoke, complete) so agents only deal with
// plain queries and replies.
package adapter

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/krittin-w/frontdesk/agent/contract"
	nodex "github.com/krittin-w/frontdesk/agent/nodes"
	taskx "github.com/krittin-w/frontdesk/agent/task"
)

type Service struct {
	name  string
	card  contractx.AgentCard
	tasks *taskx.Store
	agent contractx.Agent

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]
}

func New(name string, card contractx.AgentCard, agent contractx.Agent) (*Service, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("adapter name is required")
	}
	if agent == nil {
		return nil, errors.New("agent is required")
	}

	s := &Service{
		name:  name,
		card:  card,
		tasks: taskx.NewStore(),
		agent: agent,
	}

	graphRunner, err := s.compileSendTaskGraph(context.Background())
	if err != nil {
		return nil, err
	}
	s.graphRunner = graphRunner

	return s, nil
}

func (s *Service) Name() string { return s.name }

func (s *Service) Card() contractx.AgentCard { return s.card }

// OnSendTask handles one task request end to end and returns the updated
// task. Invalid requests surface as errors; agent failures do not, they are
// folded into the task reply.
func (s *Service) OnSendTask(ctx context.Context, req contractx.SendTaskRequest) (contractx.SendTaskResponse, error) {
	out, err := s.graphRunner.Invoke(ctx, nodex.GraphInput{Request: req})
	if err != nil {
		return contractx.SendTaskResponse{}, err
	}
	return contractx.SendTaskResponse{ID: req.ID, Result: out.Task}, nil
}

// Snapshot returns a copy of a stored task, for read-only inspection.
func (s *Service) Snapshot(taskID string) (*contractx.Task, bool) {
	return s.tasks.Snapshot(taskID)
}
