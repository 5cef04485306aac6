package schedule

import "time"

// DateLayout is the wire format for all date-only values. Dates are
// wall-clock in the studio's local time; no timezone conversion happens
// at this layer.
const DateLayout = "2006-01-02"

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// startOfDay truncates t to midnight, keeping its location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// mondayOffset maps time.Weekday (0=Sunday) to the number of days since
// the previous Monday.
func mondayOffset(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// WeekDates returns the 7 dates of the week containing anchor, Monday
// first.
func WeekDates(anchor time.Time) []time.Time {
	monday := startOfDay(anchor).AddDate(0, 0, -mondayOffset(anchor.Weekday()))

	days := make([]time.Time, 7)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// MonthDates returns the calendar grid for anchor's month: every day of
// the month, padded back to the preceding Monday and forward to the
// following Sunday. The result length is always a multiple of 7 (35, 42
// or 49 depending on how the month lands on the week).
func MonthDates(anchor time.Time) []time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	last := first.AddDate(0, 1, -1)

	gridStart := first.AddDate(0, 0, -mondayOffset(first.Weekday()))
	gridEnd := last.AddDate(0, 0, 6-mondayOffset(last.Weekday()))

	var days []time.Time
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
