package booking

import (
	"strings"
	"time"
)

const doctorIDPrefix = "doc"

// ParsedRequest is what free-form booking text boils down to: an optional
// doctor token, an optional literal date, an optional weekday name.
type ParsedRequest struct {
	DoctorToken string
	Date        string
	Weekday     string
	HasWeekday  bool
}

var dayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// parseRequest scans whitespace-separated tokens of the lowercased input.
// When a token class repeats, the last occurrence wins.
func parseRequest(input string) ParsedRequest {
	var req ParsedRequest
	for _, tok := range strings.Fields(strings.ToLower(input)) {
		switch {
		case strings.HasPrefix(tok, doctorIDPrefix):
			req.DoctorToken = tok
		case len(tok) == 10 && strings.Contains(tok, "-"):
			if _, err := time.Parse("2006-01-02", tok); err == nil {
				req.Date = tok
			}
		case isDayName(capitalize(tok)):
			req.Weekday = capitalize(tok)
			req.HasWeekday = true
		}
	}
	return req
}

func isDayName(s string) bool {
	for _, d := range dayNames {
		if s == d {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
