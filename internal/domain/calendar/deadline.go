package calendar

import (
	"strconv"
	"strings"
	"time"
)

var monthAbbrev = map[string]time.Month{
	"gen": time.January, "jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"mag": time.May, "may": time.May,
	"giu": time.June, "jun": time.June,
	"lug": time.July, "jul": time.July,
	"ago": time.August, "aug": time.August,
	"set": time.September, "sep": time.September,
	"ott": time.October, "oct": time.October,
	"nov": time.November,
	"dic": time.December, "dec": time.December,
}

// ParseDueDate reads a project due date. It accepts "<day> <Mon> <year>"
// with Italian or English month abbreviations (only the first three letters
// of the month are read) and ISO "2006-01-02". The result is the first instant
// of that day in loc.
func ParseDueDate(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return startOfDay(t.Year(), t.Month(), t.Day(), loc), true
	}

	parts := strings.Fields(s)
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	name := strings.ToLower(parts[1])
	if len(name) < 3 {
		return time.Time{}, false
	}
	month, ok := monthAbbrev[name[:3]]
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, false
	}

	if time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Day() != day {
		// 31 Feb and friends would roll into the next month
		return time.Time{}, false
	}
	return startOfDay(year, month, day, loc), true
}
