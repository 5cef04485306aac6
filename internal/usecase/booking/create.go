package booking

import (
	"context"
	"time"

	"github.com/StudioFitServices/studio-booking-api/internal/audit"
	"github.com/StudioFitServices/studio-booking-api/internal/cache"
	domain "github.com/StudioFitServices/studio-booking-api/internal/domain/schedule"
	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
	"github.com/StudioFitServices/studio-booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID     uint
	TimeSlotID uint
	Date       string // YYYY-MM-DD, studio-local

	// Set when an admin books on the client's behalf.
	CreatedBy *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
	tz    string
}

func NewCreateBooking(
	repo domain.Repository,
	availCache *cache.AvailabilityCache,
	auditDispatcher *audit.Dispatcher,
	tz string,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		cache: availCache,
		audit: auditDispatcher,
		tz:    tz,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// 1. Date must be valid and not in the past (studio wall clock).
	date, err := time.ParseInLocation(domain.DateLayout, in.Date, timezone.Location(uc.tz))
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	now := timezone.NowIn(uc.tz)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	// 2. Slot must exist, be active and actually be offered that day.
	slot, err := uc.repo.GetTimeSlot(ctx, in.TimeSlotID)
	if err != nil {
		return nil, httperr.ErrBusiness("slot_not_found")
	}
	if !slot.IsActive {
		return nil, httperr.ErrBusiness("slot_inactive")
	}
	if !domain.Matches(slot, date) {
		return nil, httperr.ErrBusiness("slot_not_offered_on_date")
	}

	// 3. Advisory credit check for a friendly error. The transaction
	// re-checks; this one can be stale.
	profile, err := uc.repo.GetProfile(ctx, in.UserID)
	if err != nil {
		return nil, httperr.ErrBusiness("user_not_found")
	}
	if profile.Credits <= 0 {
		return nil, httperr.ErrBusiness("insufficient_credits")
	}

	// 4. Reserve the spot under lock. Capacity, duplicates and the
	// credit debit are all settled inside the transaction.
	b := &models.Booking{
		UserID:      in.UserID,
		TimeSlotID:  in.TimeSlotID,
		BookingDate: in.Date,
		Status:      string(domain.InitialStatus()),
		CreatedBy:   in.CreatedBy,
	}

	if err := uc.repo.CreateBookingLocked(ctx, b); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, in.TimeSlotID, in.Date)

	actor := in.CreatedBy
	if actor == nil {
		actor = &in.UserID
	}
	uc.audit.Dispatch(audit.Event{
		ActorID:  actor,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"date": in.Date, "time_slot_id": in.TimeSlotID},
	})

	return b, nil
}
