package schedule

import (
	"time"

	"github.com/StudioFitServices/studio-booking-api/internal/models"
)

// SlotAvailability pairs a matched slot with its availability on one
// date.
type SlotAvailability struct {
	Slot         models.TimeSlot `json:"slot"`
	Availability Availability    `json:"availability"`
}

// CalendarDay is the derived view for one grid cell: the date, its
// display state, and the offered slots with their remaining spots. It is
// recomputed on every request and never persisted.
type CalendarDay struct {
	Date  string             `json:"date"`
	State DayState           `json:"state"`
	Slots []SlotAvailability `json:"slots"`
}

// BuildCalendarDay assembles a CalendarDay from the full slot set and
// the bookings covering the visible range. userBookings is the calling
// user's own set, for the has-booking state; pass nil for anonymous or
// admin views. includeInactive switches to the admin matcher so the
// schedule editor can see deactivated slots.
func BuildCalendarDay(
	date time.Time,
	today time.Time,
	selected *time.Time,
	displayMonth time.Month,
	slots []models.TimeSlot,
	bookings []models.Booking,
	userBookings []models.Booking,
	includeInactive bool,
) CalendarDay {

	matched := SlotsForDate(slots, date)
	if includeInactive {
		matched = SlotsForDateAdmin(slots, date)
	}
	SortByStartTime(matched)

	iso := FormatDate(date)
	hasAvailability := false

	out := make([]SlotAvailability, 0, len(matched))
	for i := range matched {
		av := Aggregate(matched[i].Capacity, CountConfirmed(bookings, matched[i].ID, iso))
		if av.Available > 0 {
			hasAvailability = true
		}
		out = append(out, SlotAvailability{
			Slot:         matched[i],
			Availability: av,
		})
	}

	state := ClassifyDay(DayFacts{
		Date:            date,
		Today:           today,
		Selected:        selected,
		DisplayMonth:    displayMonth,
		MatchingSlots:   matched,
		HasAvailability: hasAvailability,
		UserBookings:    userBookings,
	})

	return CalendarDay{
		Date:  iso,
		State: state,
		Slots: out,
	}
}
