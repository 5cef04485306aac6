package schedule

import "github.com/StudioFitServices/studio-booking-api/internal/models"

type Availability struct {
	Capacity  int `json:"capacity"`
	Booked    int `json:"booked"`
	Available int `json:"available"`
}

// CountConfirmed counts the bookings occupying capacity for a
// (slot, date) pair: confirmed only. Pending and cancelled never occupy
// a spot; completed bookings belong to the past and are excluded from
// forward-looking availability.
func CountConfirmed(bookings []models.Booking, timeSlotID uint, date string) int {
	n := 0
	for i := range bookings {
		b := &bookings[i]
		if b.TimeSlotID == timeSlotID && b.BookingDate == date && b.Status == string(StatusConfirmed) {
			n++
		}
	}
	return n
}

// Aggregate computes availability for a slot's capacity and a confirmed
// count. Available clamps at zero: an overbooked pair (a lost race
// between two confirmations) reads as full, never negative — enforcing
// the capacity invariant is the booking write path's job.
func Aggregate(capacity, booked int) Availability {
	available := capacity - booked
	if available < 0 {
		available = 0
	}
	return Availability{
		Capacity:  capacity,
		Booked:    booked,
		Available: available,
	}
}
