// Package booking implements the appointment booking agent. It resolves a
// doctor from the request text or the caller's session, pins down a date and
// commits the appointment to the ledger.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	rosterx "github.com/krittin-w/frontdesk/agent/roster"
	sessionx "github.com/krittin-w/frontdesk/agent/session"
)

// lookaheadDays bounds how far a weekday-only request may land in the future.
const lookaheadDays = 14

type Booker struct {
	roster   *rosterx.Roster
	sessions sessionx.Store
	book     *AppointmentBook

	now func() time.Time
}

func New(roster *rosterx.Roster, sessions sessionx.Store, book *AppointmentBook) (*Booker, error) {
	if roster == nil {
		return nil, errors.New("roster is required")
	}
	if sessions == nil {
		return nil, errors.New("session store is required")
	}
	if book == nil {
		return nil, errors.New("appointment book is required")
	}
	return &Booker{
		roster:   roster,
		sessions: sessions,
		book:     book,
		now:      time.Now,
	}, nil
}

func (b *Booker) Handle(ctx context.Context, query string, sessionID string) (string, error) {
	req := parseRequest(query)

	doctor, userErr, err := b.resolveDoctor(ctx, req, sessionID)
	if err != nil {
		return "", err
	}
	if userErr != "" {
		return userErr, nil
	}

	dateStr := req.Date
	if dateStr == "" && req.HasWeekday {
		next, ok := b.nextDateFor(doctor, req.Weekday)
		if !ok {
			return fmt.Sprintf("%s does not have upcoming availability on %s.", doctor.Name, req.Weekday), nil
		}
		dateStr = next
	}
	if dateStr == "" {
		return "Please provide a date in YYYY-MM-DD format or a valid weekday name.", nil
	}

	// The date may have come from the caller rather than the weekday scan,
	// so check it against the roster before committing.
	if !availableOnDate(doctor, dateStr) {
		return fmt.Sprintf("%s is not available on %s.", doctor.Name, dateStr), nil
	}

	appt, err := b.book.Append(Appointment{
		SessionID:  sessionID,
		DoctorID:   doctor.ID,
		DoctorName: doctor.Name,
		Date:       dateStr,
		Time:       doctor.Time,
		Location:   doctor.Location,
	})
	if err != nil {
		return "", fmt.Errorf("append appointment: %w", err)
	}

	log.Info().
		Str("appointment_id", appt.ID).
		Str("doctor_id", doctor.ID).
		Str("date", dateStr).
		Str("session_id", sessionID).
		Msg("appointment booked")

	return fmt.Sprintf(
		"Confirmed appointment with *%s* on *%s*\nTime: %s\nLocation: %s",
		doctor.Name, dateStr, doctor.Time, doctor.Location,
	), nil
}

// resolveDoctor picks the doctor for this booking: an explicit token in the
// text wins, otherwise the session's remembered doctor. The middle return is
// a user-facing message for caller mistakes; the last is a real failure.
func (b *Booker) resolveDoctor(ctx context.Context, req ParsedRequest, sessionID string) (rosterx.Doctor, string, error) {
	if req.DoctorToken != "" {
		doctor, ok := b.roster.Find(req.DoctorToken)
		if !ok {
			return rosterx.Doctor{}, fmt.Sprintf("No doctor found with ID '%s'.", req.DoctorToken), nil
		}
		return doctor, "", nil
	}

	remembered, err := b.sessions.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionx.ErrSessionNotFound) {
			return rosterx.Doctor{}, "Doctor ID not provided and no previous doctor found in session.", nil
		}
		return rosterx.Doctor{}, "", fmt.Errorf("load session %s: %w", sessionID, err)
	}

	doctor, ok := b.roster.Find(remembered.ID)
	if !ok {
		return rosterx.Doctor{}, "No valid doctor found.", nil
	}
	return doctor, "", nil
}

// nextDateFor walks the lookahead window for the first date that is both the
// requested weekday and a day the doctor works.
func (b *Booker) nextDateFor(doctor rosterx.Doctor, weekday string) (string, bool) {
	today := b.now()
	for i := 1; i <= lookaheadDays; i++ {
		check := today.AddDate(0, 0, i)
		if check.Weekday().String() == weekday && doctor.AvailableOn(check.Weekday()) {
			return check.Format("2006-01-02"), true
		}
	}
	return "", false
}

func availableOnDate(doctor rosterx.Doctor, dateStr string) bool {
	dt, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil {
		return false
	}
	return doctor.AvailableOn(dt.Weekday())
}
