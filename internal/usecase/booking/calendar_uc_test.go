package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/StudioFitServices/studio-booking-api/internal/domain/schedule"
	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
	"github.com/StudioFitServices/studio-booking-api/internal/timezone"
)

func TestCalendarMonthGridShape(t *testing.T) {
	repo := newFakeRepository()
	uc := NewCalendarView(repo, nil, testTZ)

	// August 2026 pads to 42 cells (Mon 27 Jul .. Sun 6 Sep).
	days, err := uc.Month(context.Background(), MonthInput{Year: 2026, Month: 8})
	require.NoError(t, err)

	require.Len(t, days, 42)
	assert.Equal(t, "2026-07-27", days[0].Date)
	assert.Equal(t, "2026-09-06", days[len(days)-1].Date)
	assert.Zero(t, len(days)%7)
}

func TestCalendarMonthRejectsBadMonth(t *testing.T) {
	uc := NewCalendarView(newFakeRepository(), nil, testTZ)

	_, err := uc.Month(context.Background(), MonthInput{Year: 2026, Month: 13})
	assert.True(t, httperr.IsBusiness(err, "invalid_month"))
}

func TestCalendarMonthMarksUserBookings(t *testing.T) {
	repo := newFakeRepository()

	// Pick a future month so none of its days classify as past.
	future := timezone.NowIn(testTZ).AddDate(0, 2, 0)
	year, month := future.Year(), int(future.Month())

	// A recurring slot on every weekday keeps the fixture simple.
	for dow := 0; dow <= 6; dow++ {
		d := dow
		repo.slots[uint(dow+1)] = models.TimeSlot{
			ID:        uint(dow + 1),
			SlotType:  models.SlotTypeRecurring,
			DayOfWeek: &d,
			StartTime: "10:00",
			EndTime:   "11:00",
			Capacity:  5,
			IsActive:  true,
		}
	}

	bookedDate := domain.FormatDate(future)
	repo.bookings = append(repo.bookings, models.Booking{
		ID: 1, UserID: 10, TimeSlotID: 1,
		BookingDate: bookedDate,
		Status:      string(domain.StatusConfirmed),
	})

	userID := uint(10)
	days, err := NewCalendarView(repo, nil, testTZ).Month(context.Background(), MonthInput{
		Year:   year,
		Month:  month,
		UserID: &userID,
	})
	require.NoError(t, err)

	var found bool
	for _, day := range days {
		if day.Date == bookedDate {
			found = true
			assert.Equal(t, domain.DayHasBooking, day.State)
		}
	}
	assert.True(t, found)
}

func TestCalendarMonthIncludeInactiveSurfacesDisabledSlots(t *testing.T) {
	repo := newFakeRepository()

	future := timezone.NowIn(testTZ).AddDate(0, 2, 0)
	year, month := future.Year(), int(future.Month())

	// Deactivated slots on every weekday: invisible to clients, but the
	// schedule editor must still see them.
	for dow := 0; dow <= 6; dow++ {
		d := dow
		repo.slots[uint(dow+1)] = models.TimeSlot{
			ID:        uint(dow + 1),
			SlotType:  models.SlotTypeRecurring,
			DayOfWeek: &d,
			StartTime: "10:00",
			EndTime:   "11:00",
			Capacity:  5,
			IsActive:  false,
		}
	}

	uc := NewCalendarView(repo, nil, testTZ)

	adminDays, err := uc.Month(context.Background(), MonthInput{
		Year: year, Month: month, IncludeInactive: true,
	})
	require.NoError(t, err)

	var adminSlots int
	for _, day := range adminDays {
		adminSlots += len(day.Slots)
	}
	require.NotZero(t, adminSlots)

	clientDays, err := uc.Month(context.Background(), MonthInput{
		Year: year, Month: month,
	})
	require.NoError(t, err)

	for _, day := range clientDays {
		assert.Empty(t, day.Slots)
	}
}

func TestCalendarWeekAlwaysSevenDays(t *testing.T) {
	uc := NewCalendarView(newFakeRepository(), nil, testTZ)

	days, err := uc.Week(context.Background(), "2026-08-29", nil, nil)
	require.NoError(t, err)

	require.Len(t, days, 7)
	assert.Equal(t, "2026-08-24", days[0].Date)

	// Week view never produces other-month cells.
	for _, d := range days {
		assert.NotEqual(t, domain.DayOtherMonth, d.State)
	}
}

func TestCalendarWeekRejectsBadAnchor(t *testing.T) {
	uc := NewCalendarView(newFakeRepository(), nil, testTZ)

	_, err := uc.Week(context.Background(), "29-08-2026", nil, nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestSpotsFor(t *testing.T) {
	repo := newFakeRepository()
	d := nextWeek()
	seedSlotFor(repo, 1, d, 5)
	iso := domain.FormatDate(d)

	repo.bookings = append(repo.bookings,
		models.Booking{ID: 1, UserID: 10, TimeSlotID: 1, BookingDate: iso, Status: string(domain.StatusConfirmed)},
		models.Booking{ID: 2, UserID: 11, TimeSlotID: 1, BookingDate: iso, Status: string(domain.StatusCancelled)},
	)

	uc := NewCalendarView(repo, nil, testTZ)

	av, err := uc.SpotsFor(context.Background(), 1, iso)
	require.NoError(t, err)

	assert.Equal(t, domain.Availability{Capacity: 5, Booked: 1, Available: 4}, av)
}

func TestSpotsForRejectsBadDate(t *testing.T) {
	uc := NewCalendarView(newFakeRepository(), nil, testTZ)

	_, err := uc.SpotsFor(context.Background(), 1, "not-a-date")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}
