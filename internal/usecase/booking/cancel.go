package booking

import (
	"context"
	"encoding/json"
	"time"

	"github.com/StudioFitServices/studio-booking-api/internal/audit"
	"github.com/StudioFitServices/studio-booking-api/internal/cache"
	domain "github.com/StudioFitServices/studio-booking-api/internal/domain/schedule"
	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
	"github.com/StudioFitServices/studio-booking-api/internal/timezone"
)

// CancellationPolicy is the cancellation_policy app setting: how far in
// advance a client must cancel to get the credit back.
type CancellationPolicy struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"` // "hours" or "days"
}

func (p CancellationPolicy) hours() float64 {
	if p.Unit == "days" {
		return float64(p.Value) * 24
	}
	return float64(p.Value)
}

type CancelBooking struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
	tz    string
}

func NewCancelBooking(
	repo domain.Repository,
	availCache *cache.AvailabilityCache,
	auditDispatcher *audit.Dispatcher,
	tz string,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		cache: availCache,
		audit: auditDispatcher,
		tz:    tz,
	}
}

// Execute cancels a booking. Clients are held to the cancellation
// window; admins bypass it. A confirmed booking refunds its credit.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	actorID uint,
	bookingID uint,
	asAdmin bool,
) (*models.Booking, error) {

	var b *models.Booking
	var err error
	if asAdmin {
		b, err = uc.repo.GetBooking(ctx, bookingID)
	} else {
		b, err = uc.repo.GetBookingForUser(ctx, bookingID, actorID)
	}
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.CanCancel(domain.Status(b.Status)); err != nil {
		return nil, err
	}

	if !asAdmin {
		ok, err := uc.withinCancellationWindow(ctx, b)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrBusiness("cancellation_window_closed")
		}
	}

	refund := domain.Status(b.Status) == domain.StatusConfirmed

	now := timezone.NowIn(uc.tz)
	b.Status = string(domain.StatusCancelled)
	b.CancelledAt = &now

	if err := uc.repo.CancelAndRefund(ctx, b, refund); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, b.TimeSlotID, b.BookingDate)

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"refund": refund},
	})

	return b, nil
}

// withinCancellationWindow compares the booking's start (date + slot
// start time, studio-local) against now plus the policy window. A zero
// policy means cancellation is always allowed.
func (uc *CancelBooking) withinCancellationWindow(
	ctx context.Context,
	b *models.Booking,
) (bool, error) {

	policy := CancellationPolicy{Value: 0, Unit: "hours"}
	if raw, err := uc.repo.GetSettingValue(ctx, "cancellation_policy"); err == nil {
		// A malformed setting falls back to the permissive default.
		_ = json.Unmarshal([]byte(raw), &policy)
	}

	if policy.Value <= 0 {
		return true, nil
	}

	startAt, err := time.ParseInLocation(
		domain.DateLayout+" 15:04",
		b.BookingDate+" "+hhmm(b.TimeSlot.StartTime),
		timezone.Location(uc.tz),
	)
	if err != nil {
		return false, httperr.ErrBusiness("invalid_booking_time")
	}

	hoursLeft := startAt.Sub(timezone.NowIn(uc.tz)).Hours()
	return hoursLeft > policy.hours(), nil
}

// hhmm normalizes HH:MM:SS to HH:MM.
func hhmm(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}
