package schedule

import "github.com/StudioFitServices/studio-booking-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ===============================
// Validations
// ===============================

// CanCancel: only live bookings can be cancelled.
func CanCancel(current Status) error {
	if current != StatusConfirmed && current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete: only a confirmed booking represents a delivered session.
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// OccupiesCapacity reports whether a booking in this status counts
// against the slot's capacity.
func OccupiesCapacity(current Status) bool {
	return current == StatusConfirmed
}

func InitialStatus() Status {
	return StatusConfirmed
}
