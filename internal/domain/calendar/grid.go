package calendar

import "time"

// BuildMonth lays out the given month in whole weeks starting on weekStart.
// Days outside the month pad the first and last week. Events are bucketed
// into the day they start on, compared in loc.
func BuildMonth(year int, month time.Month, weekStart time.Weekday, loc *time.Location, events []Event) Month {
	if loc == nil {
		loc = time.Local
	}

	// Cells are counted on the calendar, not the clock: a local day can be
	// 23 or 25 hours long and its midnight may not exist.
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)

	lead := (int(first.Weekday()) - int(weekStart) + 7) % 7
	weekEnd := (weekStart + 6) % 7
	trail := (int(weekEnd) - int(last.Weekday()) + 7) % 7

	total := lead + last.Day() + trail
	days := make([]Day, 0, total)

	buckets := make(map[dayKey][]Event)
	for _, e := range events {
		k := keyOf(e.Start.In(loc))
		buckets[k] = append(buckets[k], e)
	}

	for i := 0; i < total; i++ {
		k := keyOf(time.Date(year, month, 1-lead+i, 0, 0, 0, 0, time.UTC))
		dayEvents := buckets[k]
		if dayEvents == nil {
			dayEvents = []Event{}
		}
		days = append(days, Day{
			Date:    startOfDay(k.year, k.month, k.day, loc),
			InMonth: k.year == year && k.month == month,
			Events:  dayEvents,
		})
	}

	return Month{Year: year, Month: month, WeekStart: weekStart, Days: days}
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dayKey {
	y, m, d := t.Date()
	return dayKey{year: y, month: m, day: d}
}

// startOfDay returns the first instant of the given date in loc. Where a DST
// change skips midnight, that is the end of the gap. Out of range days
// normalize the way time.Date does.
func startOfDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	k := keyOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
	t := time.Date(k.year, k.month, k.day, 0, 0, 0, 0, loc)
	if t.Day() != k.day {
		_, end := t.ZoneBounds()
		if !end.IsZero() {
			t = end
		}
	}
	return t
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	return keyOf(a.In(loc)) == keyOf(b.In(loc))
}
