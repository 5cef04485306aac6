package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/StudioFitServices/studio-booking-api/internal/models"
)

func booking(slotID uint, isoDate string, status Status) models.Booking {
	return models.Booking{
		TimeSlotID:  slotID,
		BookingDate: isoDate,
		Status:      string(status),
	}
}

func TestCountConfirmedOnlyCountsConfirmed(t *testing.T) {
	bookings := []models.Booking{
		booking(1, "2026-08-29", StatusConfirmed),
		booking(1, "2026-08-29", StatusConfirmed),
		booking(1, "2026-08-29", StatusCancelled),
		booking(1, "2026-08-29", StatusCompleted),
		booking(1, "2026-08-29", StatusPending),
		booking(1, "2026-08-30", StatusConfirmed), // other date
		booking(2, "2026-08-29", StatusConfirmed), // other slot
	}

	assert.Equal(t, 2, CountConfirmed(bookings, 1, "2026-08-29"))
	assert.Equal(t, 0, CountConfirmed(bookings, 3, "2026-08-29"))
}

func TestAggregate(t *testing.T) {
	av := Aggregate(8, 3)
	assert.Equal(t, Availability{Capacity: 8, Booked: 3, Available: 5}, av)
}

func TestAggregateClampsAtZero(t *testing.T) {
	// Overbooked reads as full, never negative.
	av := Aggregate(8, 10)
	assert.Equal(t, 0, av.Available)
	assert.Equal(t, 10, av.Booked)
}

func TestOccupiesCapacity(t *testing.T) {
	assert.True(t, OccupiesCapacity(StatusConfirmed))
	assert.False(t, OccupiesCapacity(StatusPending))
	assert.False(t, OccupiesCapacity(StatusCancelled))
	assert.False(t, OccupiesCapacity(StatusCompleted))
}

func TestStatusTransitions(t *testing.T) {
	assert.NoError(t, CanCancel(StatusConfirmed))
	assert.NoError(t, CanCancel(StatusPending))
	assert.Error(t, CanCancel(StatusCancelled))
	assert.Error(t, CanCancel(StatusCompleted))

	assert.NoError(t, CanComplete(StatusConfirmed))
	assert.Error(t, CanComplete(StatusPending))
	assert.Error(t, CanComplete(StatusCancelled))
}
