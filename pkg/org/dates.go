package org

import (
	"regexp"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	displayLayout   = "2006-01-02 Mon 15:04"
	dueMarkerLayout = "2006-01-02 Mon"
)

var (
	leadingDateRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`)
	dateOnlyRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ExtractDate returns the leading YYYY-MM-DD substring of an ISO-8601-like
// string. Absent or malformed input yields ok == false, never an error.
func ExtractDate(s string) (string, bool) {
	m := leadingDateRe.FindString(s)
	if m == "" {
		return "", false
	}
	return m, true
}

// FormatTimestamp renders an RFC 3339 timestamp as
// "YYYY-MM-DD Day HH:MM" in local time, without timezone conversion
// beyond what the local clock implies. Malformed input yields "".
func FormatTimestamp(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return ""
	}
	return t.Local().Format(displayLayout)
}

// DateToRemoteMidnight turns a strict YYYY-MM-DD string into the
// remote service's midnight timestamp form. Validation is shape-only:
// any ten-character digit pattern passes, anything else yields
// ok == false.
func DateToRemoteMidnight(d string) (string, bool) {
	if !dateOnlyRe.MatchString(d) {
		return "", false
	}
	return d + "T00:00:00.000Z", true
}

// displayDate renders a YYYY-MM-DD string with its weekday
// abbreviation for use inside a timestamp marker. Dates the calendar
// rejects pass through unchanged.
func displayDate(d string) string {
	t, err := time.ParseInLocation(dateLayout, d, time.Local)
	if err != nil {
		return d
	}
	return t.Format(dueMarkerLayout)
}
