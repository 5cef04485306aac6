package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/StudioFitServices/studio-booking-api/internal/domain/schedule"
	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
	"github.com/StudioFitServices/studio-booking-api/internal/timezone"
)

// seedBooking plants a confirmed booking that starts at the given
// studio-local time, with the slot embedded the way the gorm repository
// preloads it.
func seedBooking(repo *fakeRepository, id, userID uint, startAt time.Time) {
	repo.bookings = append(repo.bookings, models.Booking{
		ID:          id,
		UserID:      userID,
		TimeSlotID:  1,
		BookingDate: domain.FormatDate(startAt),
		Status:      string(domain.StatusConfirmed),
		TimeSlot: models.TimeSlot{
			ID:        1,
			StartTime: startAt.Format("15:04"),
			EndTime:   startAt.Add(time.Hour).Format("15:04"),
		},
	})
	repo.nextBookingID = id + 1
}

func TestCancelBookingRefundsConfirmed(t *testing.T) {
	repo := newFakeRepository()
	seedUser(repo, 10, 2)
	seedBooking(repo, 1, 10, timezone.NowIn(testTZ).AddDate(0, 0, 7))

	uc := NewCancelBooking(repo, nil, nil, testTZ)

	b, err := uc.Execute(context.Background(), 10, 1, false)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), b.Status)
	assert.NotNil(t, b.CancelledAt)
	assert.Equal(t, 3, repo.profiles[10].Credits, "credit refunded")
	assert.Equal(t, 1, repo.cancelAndRefundCalls)
}

func TestCancelBookingOtherUsersBookingNotFound(t *testing.T) {
	repo := newFakeRepository()
	seedUser(repo, 10, 2)
	seedBooking(repo, 1, 99, timezone.NowIn(testTZ).AddDate(0, 0, 7))

	uc := NewCancelBooking(repo, nil, nil, testTZ)

	_, err := uc.Execute(context.Background(), 10, 1, false)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

func TestCancelBookingAdminReachesAnyBooking(t *testing.T) {
	repo := newFakeRepository()
	seedUser(repo, 10, 2)
	seedBooking(repo, 1, 10, timezone.NowIn(testTZ).AddDate(0, 0, 7))

	uc := NewCancelBooking(repo, nil, nil, testTZ)

	b, err := uc.Execute(context.Background(), 1, 1, true)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), b.Status)
}

func TestCancelBookingAlreadyCancelled(t *testing.T) {
	repo := newFakeRepository()
	seedUser(repo, 10, 2)
	seedBooking(repo, 1, 10, timezone.NowIn(testTZ).AddDate(0, 0, 7))
	repo.bookings[0].Status = string(domain.StatusCancelled)

	uc := NewCancelBooking(repo, nil, nil, testTZ)

	_, err := uc.Execute(context.Background(), 10, 1, false)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelBookingWindowClosed(t *testing.T) {
	repo := newFakeRepository()
	repo.settings["cancellation_policy"] = `{"value":24,"unit":"hours"}`
	seedUser(repo, 10, 2)

	// Starts in ~2 hours: inside the 24h window.
	seedBooking(repo, 1, 10, timezone.NowIn(testTZ).Add(2*time.Hour))

	uc := NewCancelBooking(repo, nil, nil, testTZ)

	_, err := uc.Execute(context.Background(), 10, 1, false)
	assert.True(t, httperr.IsBusiness(err, "cancellation_window_closed"))
	assert.Equal(t, 2, repo.profiles[10].Credits, "no refund")
}

func TestCancelBookingWindowOpen(t *testing.T) {
	repo := newFakeRepository()
	repo.settings["cancellation_policy"] = `{"value":24,"unit":"hours"}`
	seedUser(repo, 10, 2)
	seedBooking(repo, 1, 10, timezone.NowIn(testTZ).Add(72*time.Hour))

	uc := NewCancelBooking(repo, nil, nil, testTZ)

	_, err := uc.Execute(context.Background(), 10, 1, false)
	assert.NoError(t, err)
	assert.Equal(t, 3, repo.profiles[10].Credits)
}

func TestCancelBookingAdminBypassesWindow(t *testing.T) {
	repo := newFakeRepository()
	repo.settings["cancellation_policy"] = `{"value":24,"unit":"hours"}`
	seedUser(repo, 10, 2)
	seedBooking(repo, 1, 10, timezone.NowIn(testTZ).Add(2*time.Hour))

	uc := NewCancelBooking(repo, nil, nil, testTZ)

	_, err := uc.Execute(context.Background(), 1, 1, true)
	assert.NoError(t, err)
}

func TestCancelBookingDaysPolicyUnit(t *testing.T) {
	repo := newFakeRepository()
	repo.settings["cancellation_policy"] = `{"value":2,"unit":"days"}`
	seedUser(repo, 10, 2)

	// Starts in ~24 hours: inside a 2-day window.
	seedBooking(repo, 1, 10, timezone.NowIn(testTZ).Add(24*time.Hour))

	uc := NewCancelBooking(repo, nil, nil, testTZ)

	_, err := uc.Execute(context.Background(), 10, 1, false)
	assert.True(t, httperr.IsBusiness(err, "cancellation_window_closed"))
}

func TestCompleteBooking(t *testing.T) {
	repo := newFakeRepository()
	seedUser(repo, 10, 2)
	seedBooking(repo, 1, 10, timezone.NowIn(testTZ).AddDate(0, 0, -1))

	uc := NewCompleteBooking(repo, nil, testTZ)

	b, err := uc.Execute(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), b.Status)
	assert.NotNil(t, b.CompletedAt)
	assert.Equal(t, 2, repo.profiles[10].Credits, "completion never refunds")

	// Completing twice is an invalid transition.
	_, err = uc.Execute(context.Background(), 1, 1)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
