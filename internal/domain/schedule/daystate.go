package schedule

import (
	"time"

	"github.com/StudioFitServices/studio-booking-api/internal/models"
)

type DayState string

const (
	DayPast                 DayState = "past"
	DaySelectedWithSlots    DayState = "selected-with-availability"
	DaySelectedWithoutSlots DayState = "selected-no-availability"
	DayTodayWithSlots       DayState = "today-with-availability"
	DayTodayWithoutSlots    DayState = "today-no-availability"
	DayHasBooking           DayState = "has-booking"
	DayAvailable            DayState = "available"
	DayOtherMonth           DayState = "other-month"
	DayUnavailable          DayState = "unavailable"
)

// DayFacts are the inputs the classifier needs for one calendar cell.
// MatchingSlots is the active matched set for the date; HasAvailability
// means at least one of those slots has remaining capacity.
type DayFacts struct {
	Date         time.Time
	Today        time.Time
	Selected     *time.Time
	DisplayMonth time.Month

	MatchingSlots   []models.TimeSlot
	HasAvailability bool
	UserBookings    []models.Booking
}

// ClassifyDay maps a date and its derived facts to one display state.
// Precedence is strict and deliberate: a past date is locked no matter
// what else is true, and selection outranks today styling when both
// apply to the same cell.
func ClassifyDay(f DayFacts) DayState {
	date := startOfDay(f.Date)
	today := startOfDay(f.Today)

	if date.Before(today) {
		return DayPast
	}

	if f.Selected != nil && SameDate(date, *f.Selected) {
		if f.HasAvailability {
			return DaySelectedWithSlots
		}
		return DaySelectedWithoutSlots
	}

	if SameDate(date, today) {
		if f.HasAvailability {
			return DayTodayWithSlots
		}
		return DayTodayWithoutSlots
	}

	if userHasConfirmedBooking(f.UserBookings, date) {
		return DayHasBooking
	}

	if f.Date.Month() == f.DisplayMonth && len(f.MatchingSlots) > 0 && f.HasAvailability {
		return DayAvailable
	}

	if f.Date.Month() != f.DisplayMonth {
		return DayOtherMonth
	}

	return DayUnavailable
}

func userHasConfirmedBooking(bookings []models.Booking, date time.Time) bool {
	iso := FormatDate(date)
	for i := range bookings {
		if bookings[i].BookingDate == iso && bookings[i].Status == string(StatusConfirmed) {
			return true
		}
	}
	return false
}
