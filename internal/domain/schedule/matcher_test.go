package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StudioFitServices/studio-booking-api/internal/models"
)

func recurringSlot(id uint, dayOfWeek int, start string) models.TimeSlot {
	return models.TimeSlot{
		ID:        id,
		SlotType:  models.SlotTypeRecurring,
		DayOfWeek: &dayOfWeek,
		StartTime: start,
		EndTime:   "23:00",
		Capacity:  8,
		IsActive:  true,
	}
}

func specificSlot(id uint, isoDate, start string) models.TimeSlot {
	return models.TimeSlot{
		ID:           id,
		SlotType:     models.SlotTypeSpecificDate,
		SpecificDate: &isoDate,
		StartTime:    start,
		EndTime:      "23:00",
		Capacity:     8,
		IsActive:     true,
	}
}

func TestMatchesRecurring(t *testing.T) {
	// 2026-08-29 is a Saturday (weekday 6).
	saturday := date(2026, time.August, 29)

	slot := recurringSlot(1, 6, "10:00")
	assert.True(t, Matches(&slot, saturday))

	// Same slot, every following Saturday too.
	assert.True(t, Matches(&slot, saturday.AddDate(0, 0, 7)))
	assert.False(t, Matches(&slot, saturday.AddDate(0, 0, 1)))
}

func TestMatchesRecurringNilWeekday(t *testing.T) {
	slot := models.TimeSlot{SlotType: models.SlotTypeRecurring}
	assert.False(t, Matches(&slot, date(2026, time.August, 29)))
}

func TestMatchesSpecificDate(t *testing.T) {
	slot := specificSlot(1, "2026-08-29", "10:00")

	assert.True(t, Matches(&slot, date(2026, time.August, 29)))
	// Same weekday one week later must not match.
	assert.False(t, Matches(&slot, date(2026, time.September, 5)))
}

func TestMatchesUnknownType(t *testing.T) {
	slot := models.TimeSlot{SlotType: "whatever"}
	assert.False(t, Matches(&slot, date(2026, time.August, 29)))
}

func TestSlotsForDateSkipsInactive(t *testing.T) {
	saturday := date(2026, time.August, 29)

	active := recurringSlot(1, 6, "10:00")
	inactive := recurringSlot(2, 6, "12:00")
	inactive.IsActive = false

	matched := SlotsForDate([]models.TimeSlot{active, inactive}, saturday)
	require.Len(t, matched, 1)
	assert.Equal(t, uint(1), matched[0].ID)

	// The admin view keeps the inactive one.
	adminMatched := SlotsForDateAdmin([]models.TimeSlot{active, inactive}, saturday)
	assert.Len(t, adminMatched, 2)
}

func TestSlotsForDateMixesTypes(t *testing.T) {
	saturday := date(2026, time.August, 29)

	slots := []models.TimeSlot{
		recurringSlot(1, 6, "10:00"),
		specificSlot(2, "2026-08-29", "17:00"),
		specificSlot(3, "2026-08-30", "17:00"),
	}

	matched := SlotsForDate(slots, saturday)
	require.Len(t, matched, 2)
}

func TestSortByStartTime(t *testing.T) {
	slots := []models.TimeSlot{
		recurringSlot(1, 6, "18:30"),
		recurringSlot(2, 6, "07:00"),
		recurringSlot(3, 6, "10:15"),
	}

	SortByStartTime(slots)

	assert.Equal(t, []uint{2, 3, 1}, []uint{slots[0].ID, slots[1].ID, slots[2].ID})
}
