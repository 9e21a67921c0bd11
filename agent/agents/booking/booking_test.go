package booking

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	rosterx "github.com/krittin-w/frontdesk/agent/roster"
	sessionx "github.com/krittin-w/frontdesk/agent/session"
)

func newTestBooker(t *testing.T) (*Booker, sessionx.Store, *AppointmentBook) {
	t.Helper()

	roster, err := rosterx.Load("")
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}

	dir := t.TempDir()
	sessions := sessionx.NewFileStore(filepath.Join(dir, "session_store.json"))
	book := NewAppointmentBook(filepath.Join(dir, "appointment_db.json"))

	b, err := New(roster, sessions, book)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	// 2025-07-01 is a Tuesday; tests reason about the following two weeks.
	b.now = func() time.Time {
		return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	}
	return b, sessions, book
}

func TestParseRequestTokenClasses(t *testing.T) {
	t.Parallel()

	req := parseRequest("Book doc001 then actually doc003 for 2025-07-07 or friday")
	if req.DoctorToken != "doc003" {
		t.Fatalf("doctor token = %q, want last occurrence doc003", req.DoctorToken)
	}
	if req.Date != "2025-07-07" {
		t.Fatalf("date = %q, want 2025-07-07", req.Date)
	}
	if !req.HasWeekday || req.Weekday != "Friday" {
		t.Fatalf("weekday = %q/%v, want Friday", req.Weekday, req.HasWeekday)
	}

	// Malformed dates are ignored, not errors.
	req = parseRequest("see me on 2025-13-99")
	if req.Date != "" {
		t.Fatalf("date = %q, want empty for invalid calendar date", req.Date)
	}
}

func TestBookWithExplicitIDAndDate(t *testing.T) {
	t.Parallel()

	b, _, book := newTestBooker(t)

	// 2025-07-07 is a Monday and doc003 works Mondays.
	reply, err := b.Handle(context.Background(), "book doc003 on 2025-07-07", "sess-1")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(reply, "Confirmed appointment with *Dr. Priya Nair* on *2025-07-07*") {
		t.Fatalf("reply = %q, want confirmation", reply)
	}

	appts, err := book.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(appts) != 1 {
		t.Fatalf("ledger has %d records, want 1", len(appts))
	}
	if appts[0].ID == "" || appts[0].DoctorID != "doc003" || appts[0].Date != "2025-07-07" {
		t.Fatalf("stored appointment = %+v", appts[0])
	}
}

func TestBookUnavailableDateRejectedWithoutAppend(t *testing.T) {
	t.Parallel()

	b, _, book := newTestBooker(t)

	// 2025-07-05 is a Saturday; doc003 works Monday and Thursday.
	reply, err := b.Handle(context.Background(), "book doc003 on 2025-07-05", "sess-2")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if reply != "Dr. Priya Nair is not available on 2025-07-05." {
		t.Fatalf("reply = %q", reply)
	}

	appts, err := book.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(appts) != 0 {
		t.Fatalf("rejected booking must not append, got %d records", len(appts))
	}
}

func TestBookByWeekdayPicksNextMatchingDate(t *testing.T) {
	t.Parallel()

	b, _, _ := newTestBooker(t)

	// From Tuesday 2025-07-01 the next Thursday is 2025-07-03; doc007 works
	// Thursdays and Fridays.
	reply, err := b.Handle(context.Background(), "book doc007 on thursday", "sess-3")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(reply, "*2025-07-03*") {
		t.Fatalf("reply = %q, want next Thursday 2025-07-03", reply)
	}
}

func TestBookByWeekdayOutsideAvailability(t *testing.T) {
	t.Parallel()

	b, _, _ := newTestBooker(t)

	// doc006 works Monday and Wednesday only; Tuesdays never match inside
	// the lookahead window.
	reply, err := b.Handle(context.Background(), "book doc006 on tuesday", "sess-4")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if reply != "Dr. Arjun Menon does not have upcoming availability on Tuesday." {
		t.Fatalf("reply = %q", reply)
	}
}

func TestBookFallsBackToSessionDoctor(t *testing.T) {
	t.Parallel()

	b, sessions, _ := newTestBooker(t)
	ctx := context.Background()

	doc, ok := b.roster.Find("doc001")
	if !ok {
		t.Fatal("roster missing doc001")
	}
	if err := sessions.Save(ctx, "sess-5", doc); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	// 2025-07-04 is a Friday; doc001 works Mon/Wed/Fri.
	reply, err := b.Handle(ctx, "book me in on 2025-07-04", "sess-5")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(reply, "Dr. Asha Mehta") {
		t.Fatalf("reply = %q, want session doctor used", reply)
	}
}

func TestBookWithoutDoctorOrSession(t *testing.T) {
	t.Parallel()

	b, _, _ := newTestBooker(t)

	reply, err := b.Handle(context.Background(), "book an appointment on 2025-07-07", "sess-6")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if reply != "Doctor ID not provided and no previous doctor found in session." {
		t.Fatalf("reply = %q", reply)
	}
}

func TestBookUnknownDoctorID(t *testing.T) {
	t.Parallel()

	b, _, _ := newTestBooker(t)

	reply, err := b.Handle(context.Background(), "book doc999 on 2025-07-07", "sess-7")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if reply != "No doctor found with ID 'doc999'." {
		t.Fatalf("reply = %q", reply)
	}
}

func TestBookWithoutDateOrWeekday(t *testing.T) {
	t.Parallel()

	b, _, _ := newTestBooker(t)

	reply, err := b.Handle(context.Background(), "book doc001 please", "sess-8")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if reply != "Please provide a date in YYYY-MM-DD format or a valid weekday name." {
		t.Fatalf("reply = %q", reply)
	}
}
