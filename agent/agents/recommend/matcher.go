package recommend

import (
	"strings"
	"time"

	rosterx "github.com/krittin-w/frontdesk/agent/roster"
)

// keywordRule maps a symptom keyword to a specialty. Rules are checked in
// order and the first hit wins, so more specific complaints sit above the
// catch-all General Medicine entries.
type keywordRule struct {
	keyword   string
	specialty string
}

var keywordRules = []keywordRule{
	{"heart", "Cardiology"},
	{"chest", "Cardiology"},
	{"skin", "Dermatology"},
	{"rash", "Dermatology"},
	{"throat", "ENT"},
	{"ear", "ENT"},
	{"nose", "ENT"},
	{"bone", "Orthopedics"},
	{"joint", "Orthopedics"},
	{"headache", "Neurology"},
	{"migraine", "Neurology"},
	{"dizziness", "Neurology"},
	{"stomach", "Gastroenterology"},
	{"cold", "General Medicine"},
	{"fever", "General Medicine"},
	{"pain", "General Medicine"},
}

// weekdayNames is ordered so a query naming two days resolves the same way
// every time: the earlier entry wins.
var weekdayNames = []struct {
	name string
	day  time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

// matchSpecialty returns the specialty for the first keyword found in the
// query, or "" when nothing matches.
func matchSpecialty(query string) string {
	q := strings.ToLower(query)
	for _, rule := range keywordRules {
		if strings.Contains(q, rule.keyword) {
			return rule.specialty
		}
	}
	return ""
}

// requestedWeekday scans the query for an English weekday name. The second
// return is false when the query names no day.
func requestedWeekday(query string) (time.Weekday, bool) {
	q := strings.ToLower(query)
	for _, entry := range weekdayNames {
		if strings.Contains(q, entry.name) {
			return entry.day, true
		}
	}
	return time.Sunday, false
}

// matchDoctors returns the roster doctors for a specialty, optionally
// narrowed to those available on the requested weekday. Roster order is
// preserved.
func matchDoctors(roster *rosterx.Roster, specialty string, day time.Weekday, hasDay bool) []rosterx.Doctor {
	var out []rosterx.Doctor
	for _, doc := range roster.BySpecialty(specialty) {
		if hasDay && !doc.AvailableOn(day) {
			continue
		}
		out = append(out, doc)
	}
	return out
}
