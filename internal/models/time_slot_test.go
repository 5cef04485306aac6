package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeekdayRecurring(t *testing.T) {
	dow := 3
	slot := TimeSlot{SlotType: SlotTypeRecurring, DayOfWeek: &dow}

	got, ok := slot.Weekday()
	assert.True(t, ok)
	assert.Equal(t, 3, got)
}

func TestWeekdayDerivedFromSpecificDate(t *testing.T) {
	saturday := "2026-08-29"
	slot := TimeSlot{SlotType: SlotTypeSpecificDate, SpecificDate: &saturday}

	got, ok := slot.Weekday()
	assert.True(t, ok)
	assert.Equal(t, 6, got)
}

func TestWeekdayMissingData(t *testing.T) {
	_, ok := (&TimeSlot{SlotType: SlotTypeRecurring}).Weekday()
	assert.False(t, ok)

	_, ok = (&TimeSlot{SlotType: SlotTypeSpecificDate}).Weekday()
	assert.False(t, ok)

	bad := "29/08/2026"
	_, ok = (&TimeSlot{SlotType: SlotTypeSpecificDate, SpecificDate: &bad}).Weekday()
	assert.False(t, ok)
}
