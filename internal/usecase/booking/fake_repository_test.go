package booking

import (
	"context"
	"fmt"

	domain "github.com/StudioFitServices/studio-booking-api/internal/domain/schedule"
	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
)

// fakeRepository is an in-memory domain.Repository. It enforces the
// same capacity and duplicate rules as the gorm implementation so the
// use cases can be tested end to end without a database.
type fakeRepository struct {
	slots    map[uint]models.TimeSlot
	profiles map[uint]models.Profile
	bookings []models.Booking
	settings map[string]string

	nextBookingID uint

	cancelAndRefundCalls int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		slots:         map[uint]models.TimeSlot{},
		profiles:      map[uint]models.Profile{},
		settings:      map[string]string{},
		nextBookingID: 1,
	}
}

var _ domain.Repository = (*fakeRepository)(nil)

func (f *fakeRepository) GetTimeSlot(_ context.Context, id uint) (*models.TimeSlot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return &s, nil
}

func (f *fakeRepository) ListActiveTimeSlots(_ context.Context) ([]models.TimeSlot, error) {
	out := make([]models.TimeSlot, 0)
	for _, s := range f.slots {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListTimeSlots(_ context.Context) ([]models.TimeSlot, error) {
	out := make([]models.TimeSlot, 0)
	for _, s := range f.slots {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeRepository) GetProfile(_ context.Context, id uint) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return &p, nil
}

func (f *fakeRepository) GetBookingForUser(_ context.Context, bookingID, userID uint) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == bookingID && f.bookings[i].UserID == userID {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (f *fakeRepository) GetBooking(_ context.Context, bookingID uint) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == bookingID {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (f *fakeRepository) ListBookingsForUser(_ context.Context, userID uint) ([]models.Booking, error) {
	out := make([]models.Booking, 0)
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListBookingsForRange(_ context.Context, from, to string) ([]models.Booking, error) {
	out := make([]models.Booking, 0)
	for _, b := range f.bookings {
		if b.BookingDate >= from && b.BookingDate <= to {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepository) AvailableSpots(_ context.Context, timeSlotID uint, date string) (domain.Availability, error) {
	slot, ok := f.slots[timeSlotID]
	if !ok {
		return domain.Availability{}, httperr.ErrBusiness("slot_not_found")
	}
	return domain.Aggregate(slot.Capacity, domain.CountConfirmed(f.bookings, timeSlotID, date)), nil
}

func (f *fakeRepository) CreateBookingLocked(_ context.Context, b *models.Booking) error {
	slot, ok := f.slots[b.TimeSlotID]
	if !ok {
		return httperr.ErrBusiness("slot_not_found")
	}

	if domain.CountConfirmed(f.bookings, b.TimeSlotID, b.BookingDate) >= slot.Capacity {
		return httperr.ErrBusiness("slot_full")
	}

	for _, existing := range f.bookings {
		if existing.UserID == b.UserID &&
			existing.TimeSlotID == b.TimeSlotID &&
			existing.BookingDate == b.BookingDate &&
			existing.Status == string(domain.StatusConfirmed) {
			return httperr.ErrBusiness("duplicate_booking")
		}
	}

	p := f.profiles[b.UserID]
	if p.Credits <= 0 {
		return httperr.ErrBusiness("insufficient_credits")
	}
	p.Credits--
	f.profiles[b.UserID] = p

	b.ID = f.nextBookingID
	f.nextBookingID++
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeRepository) UpdateBooking(_ context.Context, b *models.Booking) error {
	for i := range f.bookings {
		if f.bookings[i].ID == b.ID {
			f.bookings[i] = *b
			return nil
		}
	}
	return fmt.Errorf("not found")
}

func (f *fakeRepository) CancelAndRefund(_ context.Context, b *models.Booking, refund bool) error {
	f.cancelAndRefundCalls++

	if err := f.UpdateBooking(context.Background(), b); err != nil {
		return err
	}
	if refund {
		p := f.profiles[b.UserID]
		p.Credits++
		f.profiles[b.UserID] = p
	}
	return nil
}

func (f *fakeRepository) GetSettingValue(_ context.Context, key string) (string, error) {
	v, ok := f.settings[key]
	if !ok {
		return "", fmt.Errorf("not found")
	}
	return v, nil
}
