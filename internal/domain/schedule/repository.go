package schedule

import (
	"context"

	"github.com/StudioFitServices/studio-booking-api/internal/models"
)

// Repository is the persistence surface the booking use cases depend on.
// The capacity invariant (at most Capacity confirmed bookings per
// slot+date) is owned by CreateBookingLocked, which must re-validate
// under a row lock regardless of any advisory checks callers ran first.
type Repository interface {
	// -------- Time slots --------
	GetTimeSlot(
		ctx context.Context,
		id uint,
	) (*models.TimeSlot, error)

	ListActiveTimeSlots(
		ctx context.Context,
	) ([]models.TimeSlot, error)

	ListTimeSlots(
		ctx context.Context,
	) ([]models.TimeSlot, error)

	// -------- Profiles --------
	GetProfile(
		ctx context.Context,
		id uint,
	) (*models.Profile, error)

	// -------- Bookings (read) --------
	GetBookingForUser(
		ctx context.Context,
		bookingID uint,
		userID uint,
	) (*models.Booking, error)

	GetBooking(
		ctx context.Context,
		bookingID uint,
	) (*models.Booking, error)

	ListBookingsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Booking, error)

	ListBookingsForRange(
		ctx context.Context,
		from string,
		to string,
	) ([]models.Booking, error)

	// -------- Capacity (authoritative) --------
	AvailableSpots(
		ctx context.Context,
		timeSlotID uint,
		date string,
	) (Availability, error)

	// CreateBookingLocked inserts the booking after locking the slot row
	// and re-counting confirmed bookings; it also debits one credit from
	// the booked user, all in one transaction.
	CreateBookingLocked(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Bookings (state change) --------
	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// CancelAndRefund persists the cancelled booking and, when refund is
	// true, credits the user back in the same transaction.
	CancelAndRefund(
		ctx context.Context,
		b *models.Booking,
		refund bool,
	) error

	// -------- Settings --------
	GetSettingValue(
		ctx context.Context,
		key string,
	) (string, error)
}
