// Package reception implements the front desk conversation agent. Replies
// come from a conversational model seeded with a fixed receptionist persona.
package reception

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

const fallbackReply = "I apologize, but I couldn't generate a response at the moment."

// Generator produces one reply for one query under a persona instruction.
type Generator interface {
	Reply(ctx context.Context, persona string, query string) (string, error)
}

type Receptionist struct {
	generator  Generator
	persona    string
	transcript *TranscriptStore
}

func New(generator Generator, persona string, transcript *TranscriptStore) (*Receptionist, error) {
	if generator == nil {
		return nil, errors.New("generator is required")
	}
	if persona == "" {
		return nil, errors.New("persona is required")
	}
	if transcript == nil {
		return nil, errors.New("transcript store is required")
	}
	return &Receptionist{
		generator:  generator,
		persona:    persona,
		transcript: transcript,
	}, nil
}

// Handle records the user turn, asks the model for a reply and records that
// too. Model failures degrade to a fixed apology so the counter never goes
// silent.
func (r *Receptionist) Handle(ctx context.Context, query string, sessionID string) (string, error) {
	if err := r.transcript.Append(sessionID, "User: "+query); err != nil {
		return "", err
	}

	reply, err := r.generator.Reply(ctx, r.persona, query)
	if err != nil {
		log.Warn().
			Err(err).
			Str("session_id", sessionID).
			Msg("reception model call failed")
		reply = fallbackReply
	}
	if reply == "" {
		reply = fallbackReply
	}

	if err := r.transcript.Append(sessionID, "Agent: "+reply); err != nil {
		return "", err
	}
	return reply, nil
}
