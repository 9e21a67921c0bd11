// Package roster loads the static doctor roster and answers identity and
// availability lookups against it. The roster is read once and treated as
// immutable for the process lifetime.
package roster

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

//go:embed doctors.json
var defaultRosterRaw []byte

var ErrEmptyRoster = errors.New("doctor roster is empty")

// Doctor is one roster entry. AvailableDays holds capitalized English weekday
// names exactly as serialized in the roster file.
type Doctor struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Specialty     string   `json:"specialty"`
	AvailableDays []string `json:"available_days"`
	Time          string   `json:"time"`
	Location      string   `json:"location"`
}

// AvailableOn reports whether the doctor works on the given weekday.
func (d Doctor) AvailableOn(day time.Weekday) bool {
	name := day.String()
	for _, avail := range d.AvailableDays {
		if strings.EqualFold(strings.TrimSpace(avail), name) {
			return true
		}
	}
	return false
}

type rosterFile struct {
	Doctors []Doctor `json:"doctors"`
}

// Roster is the immutable doctor list, in file order.
type Roster struct {
	doctors []Doctor
}

// Load reads the roster from path, or falls back to the embedded default when
// path is empty.
func Load(path string) (*Roster, error) {
	raw := defaultRosterRaw
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read roster file: %w", err)
		}
		raw = data
	}

	var parsed rosterFile
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	if len(parsed.Doctors) == 0 {
		return nil, ErrEmptyRoster
	}

	return &Roster{doctors: parsed.Doctors}, nil
}

// Doctors returns the roster entries in file order. Callers must not mutate
// the returned slice.
func (r *Roster) Doctors() []Doctor {
	return r.doctors
}

// Find resolves a doctor case-insensitively by id or display name. Resolution
// is deterministic: the first match in roster order wins.
func (r *Roster) Find(identifier string) (Doctor, bool) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Doctor{}, false
	}
	for _, d := range r.doctors {
		if strings.EqualFold(d.ID, identifier) || strings.EqualFold(d.Name, identifier) {
			return d, true
		}
	}
	return Doctor{}, false
}

// BySpecialty returns every doctor with the given specialty, in roster order.
func (r *Roster) BySpecialty(specialty string) []Doctor {
	var out []Doctor
	for _, d := range r.doctors {
		if strings.EqualFold(d.Specialty, specialty) {
			out = append(out, d)
		}
	}
	return out
}
