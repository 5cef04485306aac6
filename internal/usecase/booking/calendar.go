package booking

import (
	"context"
	"time"

	"github.com/StudioFitServices/studio-booking-api/internal/cache"
	domain "github.com/StudioFitServices/studio-booking-api/internal/domain/schedule"
	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
	"github.com/StudioFitServices/studio-booking-api/internal/timezone"
)

// ======================================================
// CALENDAR (month + week views)
// ======================================================

type CalendarView struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	tz    string
}

func NewCalendarView(
	repo domain.Repository,
	availCache *cache.AvailabilityCache,
	tz string,
) *CalendarView {
	return &CalendarView{
		repo:  repo,
		cache: availCache,
		tz:    tz,
	}
}

type MonthInput struct {
	Year  int
	Month int

	// Optional: the requesting user, for has-booking cells, and the
	// currently selected date from the UI.
	UserID       *uint
	SelectedDate *string

	// Admins see inactive slots too.
	IncludeInactive bool
}

// Month builds the full grid for a month: padded to whole Monday-Sunday
// weeks, every cell classified, every offered slot with its remaining
// spots. Recomputed from scratch per request.
func (uc *CalendarView) Month(
	ctx context.Context,
	in MonthInput,
) ([]domain.CalendarDay, error) {

	if in.Month < 1 || in.Month > 12 {
		return nil, httperr.ErrBusiness("invalid_month")
	}

	loc := timezone.Location(uc.tz)
	anchor := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, loc)
	days := domain.MonthDates(anchor)

	return uc.buildDays(ctx, days, anchor.Month(), in.UserID, in.SelectedDate, in.IncludeInactive)
}

// Week builds the 7-day strip around an anchor date for the booking
// screen. The display month is the anchor's month, so no cell ever
// classifies as other-month in week view.
func (uc *CalendarView) Week(
	ctx context.Context,
	anchorDate string,
	userID *uint,
	selectedDate *string,
) ([]domain.CalendarDay, error) {

	loc := timezone.Location(uc.tz)
	anchor, err := time.ParseInLocation(domain.DateLayout, anchorDate, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	days := domain.WeekDates(anchor)

	// Week cells belong to whichever month they are in; pass each cell's
	// own month so other-month never triggers.
	slots, bookings, userBookings, err := uc.fetchRange(ctx, days[0], days[len(days)-1], userID, false)
	if err != nil {
		return nil, err
	}

	selected, err := parseSelected(selectedDate, loc)
	if err != nil {
		return nil, err
	}

	today := timezone.NowIn(uc.tz)
	out := make([]domain.CalendarDay, 0, len(days))
	for _, d := range days {
		out = append(out, domain.BuildCalendarDay(d, today, selected, d.Month(), slots, bookings, userBookings, false))
	}
	return out, nil
}

// SpotsFor returns the authoritative availability for one (slot, date)
// pair, through the cache when one is configured.
func (uc *CalendarView) SpotsFor(
	ctx context.Context,
	timeSlotID uint,
	date string,
) (domain.Availability, error) {

	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return domain.Availability{}, httperr.ErrBusiness("invalid_date")
	}

	if av, ok := uc.cache.Get(ctx, timeSlotID, date); ok {
		return av, nil
	}

	av, err := uc.repo.AvailableSpots(ctx, timeSlotID, date)
	if err != nil {
		return domain.Availability{}, err
	}

	uc.cache.Set(ctx, timeSlotID, date, av)
	return av, nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func (uc *CalendarView) buildDays(
	ctx context.Context,
	days []time.Time,
	displayMonth time.Month,
	userID *uint,
	selectedDate *string,
	includeInactive bool,
) ([]domain.CalendarDay, error) {

	slots, bookings, userBookings, err := uc.fetchRange(ctx, days[0], days[len(days)-1], userID, includeInactive)
	if err != nil {
		return nil, err
	}

	selected, err := parseSelected(selectedDate, timezone.Location(uc.tz))
	if err != nil {
		return nil, err
	}

	today := timezone.NowIn(uc.tz)
	out := make([]domain.CalendarDay, 0, len(days))
	for _, d := range days {
		out = append(out, domain.BuildCalendarDay(d, today, selected, displayMonth, slots, bookings, userBookings, includeInactive))
	}
	return out, nil
}

func (uc *CalendarView) fetchRange(
	ctx context.Context,
	from time.Time,
	to time.Time,
	userID *uint,
	includeInactive bool,
) (slots []models.TimeSlot, bookings []models.Booking, userBookings []models.Booking, err error) {

	if includeInactive {
		slots, err = uc.repo.ListTimeSlots(ctx)
	} else {
		slots, err = uc.repo.ListActiveTimeSlots(ctx)
	}
	if err != nil {
		return nil, nil, nil, err
	}

	bookings, err = uc.repo.ListBookingsForRange(ctx, domain.FormatDate(from), domain.FormatDate(to))
	if err != nil {
		return nil, nil, nil, err
	}

	if userID != nil {
		for i := range bookings {
			if bookings[i].UserID == *userID {
				userBookings = append(userBookings, bookings[i])
			}
		}
	}

	return slots, bookings, userBookings, nil
}

func parseSelected(selectedDate *string, loc *time.Location) (*time.Time, error) {
	if selectedDate == nil || *selectedDate == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(domain.DateLayout, *selectedDate, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_selected_date")
	}
	return &t, nil
}
