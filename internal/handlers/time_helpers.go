package handlers

import (
	"time"

	domain "github.com/StudioFitServices/studio-booking-api/internal/domain/schedule"
	"github.com/StudioFitServices/studio-booking-api/internal/timezone"
)

// All date-only request params are studio-local wall-clock dates.

func parseStudioDate(tz string, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		domain.DateLayout,
		dateStr,
		timezone.Location(tz),
	)
}

func studioToday(tz string) time.Time {
	now := timezone.NowIn(tz)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// normalizeHHMM accepts HH:MM and HH:MM:SS wall-clock strings and
// returns the canonical HH:MM form. Seconds are dropped: slots are
// stored minute-granular.
func normalizeHHMM(s string) (string, bool) {
	if t, err := time.Parse("15:04", s); err == nil {
		return t.Format("15:04"), true
	}
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format("15:04"), true
	}
	return "", false
}
