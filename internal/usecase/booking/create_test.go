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

const testTZ = "Europe/Madrid"

// nextWeek returns a date 7 days out, studio-local, so tests never
// trip the past-date guard regardless of when they run.
func nextWeek() time.Time {
	return timezone.NowIn(testTZ).AddDate(0, 0, 7)
}

func seedSlotFor(repo *fakeRepository, id uint, d time.Time, capacity int) {
	dow := int(d.Weekday())
	repo.slots[id] = models.TimeSlot{
		ID:        id,
		SlotType:  models.SlotTypeRecurring,
		DayOfWeek: &dow,
		StartTime: "10:00",
		EndTime:   "11:00",
		Capacity:  capacity,
		IsActive:  true,
	}
}

func seedUser(repo *fakeRepository, id uint, credits int) {
	repo.profiles[id] = models.Profile{
		ID:             id,
		Role:           "client",
		ApprovalStatus: "approved",
		Credits:        credits,
	}
}

func TestCreateBookingHappyPath(t *testing.T) {
	repo := newFakeRepository()
	d := nextWeek()
	seedSlotFor(repo, 1, d, 8)
	seedUser(repo, 10, 3)

	uc := NewCreateBooking(repo, nil, nil, testTZ)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     10,
		TimeSlotID: 1,
		Date:       domain.FormatDate(d),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	assert.Equal(t, 2, repo.profiles[10].Credits, "one credit debited")

	av, _ := repo.AvailableSpots(context.Background(), 1, domain.FormatDate(d))
	assert.Equal(t, 7, av.Available)
}

func TestCreateBookingRejectsPastDate(t *testing.T) {
	repo := newFakeRepository()
	yesterday := timezone.NowIn(testTZ).AddDate(0, 0, -1)
	seedSlotFor(repo, 1, yesterday, 8)
	seedUser(repo, 10, 3)

	uc := NewCreateBooking(repo, nil, nil, testTZ)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     10,
		TimeSlotID: 1,
		Date:       domain.FormatDate(yesterday),
	})
	assert.True(t, httperr.IsBusiness(err, "date_in_past"))
}

func TestCreateBookingRejectsWrongWeekday(t *testing.T) {
	repo := newFakeRepository()
	d := nextWeek()
	seedSlotFor(repo, 1, d, 8)
	seedUser(repo, 10, 3)

	uc := NewCreateBooking(repo, nil, nil, testTZ)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     10,
		TimeSlotID: 1,
		Date:       domain.FormatDate(d.AddDate(0, 0, 1)),
	})
	assert.True(t, httperr.IsBusiness(err, "slot_not_offered_on_date"))
}

func TestCreateBookingRejectsInactiveSlot(t *testing.T) {
	repo := newFakeRepository()
	d := nextWeek()
	seedSlotFor(repo, 1, d, 8)
	slot := repo.slots[1]
	slot.IsActive = false
	repo.slots[1] = slot
	seedUser(repo, 10, 3)

	uc := NewCreateBooking(repo, nil, nil, testTZ)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     10,
		TimeSlotID: 1,
		Date:       domain.FormatDate(d),
	})
	assert.True(t, httperr.IsBusiness(err, "slot_inactive"))
}

func TestCreateBookingRejectsWithoutCredits(t *testing.T) {
	repo := newFakeRepository()
	d := nextWeek()
	seedSlotFor(repo, 1, d, 8)
	seedUser(repo, 10, 0)

	uc := NewCreateBooking(repo, nil, nil, testTZ)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     10,
		TimeSlotID: 1,
		Date:       domain.FormatDate(d),
	})
	assert.True(t, httperr.IsBusiness(err, "insufficient_credits"))
	assert.Empty(t, repo.bookings)
}

func TestCreateBookingRejectsWhenFull(t *testing.T) {
	repo := newFakeRepository()
	d := nextWeek()
	seedSlotFor(repo, 1, d, 1)
	seedUser(repo, 10, 3)
	seedUser(repo, 11, 3)

	uc := NewCreateBooking(repo, nil, nil, testTZ)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: 10, TimeSlotID: 1, Date: domain.FormatDate(d),
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), CreateBookingInput{
		UserID: 11, TimeSlotID: 1, Date: domain.FormatDate(d),
	})
	assert.True(t, httperr.IsBusiness(err, "slot_full"))
	assert.Equal(t, 3, repo.profiles[11].Credits, "no debit on failure")
}

func TestCreateBookingFillsSlotToZero(t *testing.T) {
	repo := newFakeRepository()
	d := nextWeek()
	seedSlotFor(repo, 1, d, 5)

	uc := NewCreateBooking(repo, nil, nil, testTZ)
	iso := domain.FormatDate(d)

	for userID := uint(10); userID < 15; userID++ {
		seedUser(repo, userID, 1)
		_, err := uc.Execute(context.Background(), CreateBookingInput{
			UserID: userID, TimeSlotID: 1, Date: iso,
		})
		require.NoError(t, err)
	}

	av, err := repo.AvailableSpots(context.Background(), 1, iso)
	require.NoError(t, err)
	assert.Equal(t, 0, av.Available)

	seedUser(repo, 20, 1)
	_, err = uc.Execute(context.Background(), CreateBookingInput{
		UserID: 20, TimeSlotID: 1, Date: iso,
	})
	assert.True(t, httperr.IsBusiness(err, "slot_full"))
}

func TestCreateBookingRejectsDuplicate(t *testing.T) {
	repo := newFakeRepository()
	d := nextWeek()
	seedSlotFor(repo, 1, d, 8)
	seedUser(repo, 10, 3)

	uc := NewCreateBooking(repo, nil, nil, testTZ)
	in := CreateBookingInput{UserID: 10, TimeSlotID: 1, Date: domain.FormatDate(d)}

	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "duplicate_booking"))
}

func TestCreateBookingAllowsRebookAfterCancel(t *testing.T) {
	repo := newFakeRepository()
	d := nextWeek()
	seedSlotFor(repo, 1, d, 8)
	seedUser(repo, 10, 3)

	createUC := NewCreateBooking(repo, nil, nil, testTZ)
	cancelUC := NewCancelBooking(repo, nil, nil, testTZ)

	in := CreateBookingInput{UserID: 10, TimeSlotID: 1, Date: domain.FormatDate(d)}

	b, err := createUC.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = cancelUC.Execute(context.Background(), 10, b.ID, false)
	require.NoError(t, err)

	// A cancelled booking no longer blocks the (user, slot, date) pair.
	_, err = createUC.Execute(context.Background(), in)
	assert.NoError(t, err)
}
