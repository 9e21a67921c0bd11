// Package recommend implements the doctor recommendation agent: symptom
// text in, a doctor suggestion out, with a one-turn numbered follow-up when
// several doctors fit the complaint.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	rosterx "github.com/krittin-w/frontdesk/agent/roster"
	sessionx "github.com/krittin-w/frontdesk/agent/session"
)

const maxCandidates = 3

const (
	noMatchReply          = "I couldn't find any matching doctors for your symptoms. Could you rephrase it?"
	noCandidateListReply  = "No active doctor list. Please describe your symptoms again."
	invalidSelectionReply = "Invalid selection. Please reply with a number (e.g., 1, 2, or 3)."
)

type Recommender struct {
	roster     *rosterx.Roster
	sessions   sessionx.Store
	candidates *CandidateStore

	// awaiting flags the sessions whose next message is a numeric pick
	// into their candidate shortlist rather than fresh symptom text.
	mu       sync.Mutex
	awaiting map[string]bool
}

func New(roster *rosterx.Roster, sessions sessionx.Store, candidates *CandidateStore) (*Recommender, error) {
	if roster == nil {
		return nil, errors.New("roster is required")
	}
	if sessions == nil {
		return nil, errors.New("session store is required")
	}
	if candidates == nil {
		return nil, errors.New("candidate store is required")
	}
	return &Recommender{
		roster:     roster,
		sessions:   sessions,
		candidates: candidates,
		awaiting:   map[string]bool{},
	}, nil
}

func (r *Recommender) Handle(ctx context.Context, query string, sessionID string) (string, error) {
	if r.consumeAwaiting(sessionID) {
		return r.handleSelection(ctx, query, sessionID)
	}
	return r.handleSymptoms(ctx, query, sessionID)
}

// consumeAwaiting reads and clears the selection flag in one step. The flag
// is spent on a single follow-up regardless of whether the pick is valid.
func (r *Recommender) consumeAwaiting(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	was := r.awaiting[sessionID]
	delete(r.awaiting, sessionID)
	return was
}

func (r *Recommender) setAwaiting(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.awaiting[sessionID] = true
}

func (r *Recommender) handleSymptoms(ctx context.Context, query string, sessionID string) (string, error) {
	specialty := matchSpecialty(query)
	if specialty == "" {
		return noMatchReply, nil
	}

	day, hasDay := requestedWeekday(query)
	matches := matchDoctors(r.roster, specialty, day, hasDay)
	if len(matches) == 0 && hasDay {
		// Nobody fits the requested day. Offer the specialty's doctors
		// anyway instead of a dead end.
		matches = matchDoctors(r.roster, specialty, day, false)
	}
	if len(matches) == 0 {
		return noMatchReply, nil
	}

	if len(matches) == 1 {
		selected := matches[0]
		if err := r.commitSelection(ctx, sessionID, selected); err != nil {
			return "", err
		}
		return formatDoctor(selected), nil
	}

	shortlist := matches
	if len(shortlist) > maxCandidates {
		shortlist = shortlist[:maxCandidates]
	}
	if err := r.candidates.Put(sessionID, shortlist); err != nil {
		return "", fmt.Errorf("store candidates for session %s: %w", sessionID, err)
	}
	r.setAwaiting(sessionID)

	log.Debug().
		Str("session_id", sessionID).
		Str("specialty", specialty).
		Int("candidates", len(shortlist)).
		Msg("awaiting doctor selection")

	return formatShortlist(shortlist), nil
}

func (r *Recommender) handleSelection(ctx context.Context, query string, sessionID string) (string, error) {
	shortlist, err := r.candidates.Get(sessionID)
	if err != nil {
		return "", fmt.Errorf("load candidates for session %s: %w", sessionID, err)
	}
	if len(shortlist) == 0 {
		return noCandidateListReply, nil
	}

	idx, err := strconv.Atoi(strings.TrimSpace(query))
	if err != nil || idx < 1 || idx > len(shortlist) {
		return invalidSelectionReply, nil
	}

	selected := shortlist[idx-1]
	if err := r.candidates.Put(sessionID, []rosterx.Doctor{selected}); err != nil {
		return "", fmt.Errorf("collapse candidates for session %s: %w", sessionID, err)
	}
	if err := r.commitSelection(ctx, sessionID, selected); err != nil {
		return "", err
	}
	return formatDoctor(selected), nil
}

func (r *Recommender) commitSelection(ctx context.Context, sessionID string, doc rosterx.Doctor) error {
	if err := r.sessions.Save(ctx, sessionID, doc); err != nil {
		return fmt.Errorf("save session %s: %w", sessionID, err)
	}
	return nil
}

func formatDoctor(doc rosterx.Doctor) string {
	return fmt.Sprintf(
		"*Name:* %s\n*Specialty:* %s\n*Available Days:* %s\n*Time:* %s\n*Location:* %s",
		doc.Name, doc.Specialty, strings.Join(doc.AvailableDays, ", "), doc.Time, doc.Location,
	)
}

func formatShortlist(docs []rosterx.Doctor) string {
	var b strings.Builder
	b.WriteString("Here are some available doctors:\n")
	for i, doc := range docs {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, doc.Name, doc.Specialty)
	}
	b.WriteString("\nPlease reply with the number of the doctor you'd like to know more about.")
	return b.String()
}
