package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/StudioFitServices/studio-booking-api/internal/models"
)

func facts(d time.Time) DayFacts {
	return DayFacts{
		Date:         d,
		Today:        date(2026, time.August, 29),
		DisplayMonth: time.August,
	}
}

func withSlots(f DayFacts) DayFacts {
	f.MatchingSlots = []models.TimeSlot{recurringSlot(1, int(f.Date.Weekday()), "10:00")}
	f.HasAvailability = true
	return f
}

func TestClassifyDayPastWinsOverEverything(t *testing.T) {
	yesterday := date(2026, time.August, 28)

	f := withSlots(facts(yesterday))
	selected := yesterday
	f.Selected = &selected
	f.UserBookings = []models.Booking{booking(1, "2026-08-28", StatusConfirmed)}

	assert.Equal(t, DayPast, ClassifyDay(f))
}

func TestClassifyDaySelectedOutranksToday(t *testing.T) {
	today := date(2026, time.August, 29)

	f := withSlots(facts(today))
	f.Selected = &today

	assert.Equal(t, DaySelectedWithSlots, ClassifyDay(f))
}

func TestClassifyDaySelectedWithoutAvailability(t *testing.T) {
	d := date(2026, time.August, 30)

	f := facts(d)
	f.Selected = &d

	assert.Equal(t, DaySelectedWithoutSlots, ClassifyDay(f))
}

func TestClassifyDayToday(t *testing.T) {
	today := date(2026, time.August, 29)

	assert.Equal(t, DayTodayWithSlots, ClassifyDay(withSlots(facts(today))))
	assert.Equal(t, DayTodayWithoutSlots, ClassifyDay(facts(today)))
}

func TestClassifyDayHasBookingBeatsAvailable(t *testing.T) {
	d := date(2026, time.August, 31)

	f := withSlots(facts(d))
	f.UserBookings = []models.Booking{booking(1, "2026-08-31", StatusConfirmed)}

	assert.Equal(t, DayHasBooking, ClassifyDay(f))
}

func TestClassifyDayCancelledBookingDoesNotCount(t *testing.T) {
	d := date(2026, time.August, 31)

	f := withSlots(facts(d))
	f.UserBookings = []models.Booking{booking(1, "2026-08-31", StatusCancelled)}

	assert.Equal(t, DayAvailable, ClassifyDay(f))
}

func TestClassifyDayAvailable(t *testing.T) {
	d := date(2026, time.August, 31)

	assert.Equal(t, DayAvailable, ClassifyDay(withSlots(facts(d))))
}

func TestClassifyDayFullSlotsAreUnavailable(t *testing.T) {
	d := date(2026, time.August, 31)

	f := facts(d)
	f.MatchingSlots = []models.TimeSlot{recurringSlot(1, int(d.Weekday()), "10:00")}
	f.HasAvailability = false

	assert.Equal(t, DayUnavailable, ClassifyDay(f))
}

func TestClassifyDayOtherMonth(t *testing.T) {
	// A padding cell from September in the August grid, even with
	// availability, renders as other-month.
	d := date(2026, time.September, 2)

	assert.Equal(t, DayOtherMonth, ClassifyDay(withSlots(facts(d))))
}

func TestClassifyDayNoSlots(t *testing.T) {
	d := date(2026, time.August, 31)

	assert.Equal(t, DayUnavailable, ClassifyDay(facts(d)))
}

func TestClassifyDayIdempotent(t *testing.T) {
	f := withSlots(facts(date(2026, time.August, 31)))

	first := ClassifyDay(f)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ClassifyDay(f))
	}
}

func TestBuildCalendarDaySortsAndAggregates(t *testing.T) {
	d := date(2026, time.August, 31) // Monday

	slots := []models.TimeSlot{
		recurringSlot(2, 1, "18:00"),
		recurringSlot(1, 1, "09:00"),
	}
	bookings := []models.Booking{
		booking(1, "2026-08-31", StatusConfirmed),
		booking(1, "2026-08-31", StatusConfirmed),
	}

	day := BuildCalendarDay(d, date(2026, time.August, 29), nil, time.August, slots, bookings, nil, false)

	assert.Equal(t, "2026-08-31", day.Date)
	assert.Equal(t, DayAvailable, day.State)
	assert.Len(t, day.Slots, 2)
	assert.Equal(t, uint(1), day.Slots[0].Slot.ID)
	assert.Equal(t, 6, day.Slots[0].Availability.Available)
	assert.Equal(t, 8, day.Slots[1].Availability.Available)
}

func TestBuildCalendarDayFullyBooked(t *testing.T) {
	d := date(2026, time.August, 31)

	slot := recurringSlot(1, 1, "09:00")
	slot.Capacity = 1

	day := BuildCalendarDay(
		d,
		date(2026, time.August, 29),
		nil,
		time.August,
		[]models.TimeSlot{slot},
		[]models.Booking{booking(1, "2026-08-31", StatusConfirmed)},
		nil,
		false,
	)

	assert.Equal(t, DayUnavailable, day.State)
	assert.Equal(t, 0, day.Slots[0].Availability.Available)
}
