package schedule

import (
	"sort"
	"time"

	"github.com/StudioFitServices/studio-booking-api/internal/models"
)

// Matches reports whether the slot is offered on date. A recurring slot
// matches every date with its weekday; a specific-date slot matches its
// exact date only. Weekday numbering is the native 0=Sunday..6=Saturday —
// the Monday-first convention is a grid concern and must not leak here.
// Active status is checked by the caller-facing filters, not here.
func Matches(slot *models.TimeSlot, date time.Time) bool {
	switch slot.SlotType {
	case models.SlotTypeRecurring:
		return slot.DayOfWeek != nil && *slot.DayOfWeek == int(date.Weekday())
	case models.SlotTypeSpecificDate:
		return slot.SpecificDate != nil && *slot.SpecificDate == FormatDate(date)
	}
	return false
}

// SlotsForDate filters the active slots offered on date. Overlapping or
// duplicate slots pass through untouched; data quality is the creation
// workflow's problem.
func SlotsForDate(slots []models.TimeSlot, date time.Time) []models.TimeSlot {
	out := make([]models.TimeSlot, 0)
	for i := range slots {
		if slots[i].IsActive && Matches(&slots[i], date) {
			out = append(out, slots[i])
		}
	}
	return out
}

// SlotsForDateAdmin is the admin-facing variant: inactive slots are
// included so the schedule editor can show them.
func SlotsForDateAdmin(slots []models.TimeSlot, date time.Time) []models.TimeSlot {
	out := make([]models.TimeSlot, 0)
	for i := range slots {
		if Matches(&slots[i], date) {
			out = append(out, slots[i])
		}
	}
	return out
}

// SortByStartTime orders slots by start time ascending, for rendering.
// HH:MM strings compare correctly as text.
func SortByStartTime(slots []models.TimeSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime < slots[j].StartTime
	})
}
