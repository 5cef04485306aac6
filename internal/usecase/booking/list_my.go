package booking

import (
	"context"
	"sort"

	domain "github.com/StudioFitServices/studio-booking-api/internal/domain/schedule"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
	"github.com/StudioFitServices/studio-booking-api/internal/timezone"
)

type MyBookings struct {
	Upcoming []models.Booking `json:"upcoming"`
	Past     []models.Booking `json:"past"`
}

type ListMyBookings struct {
	repo domain.Repository
	tz   string
}

func NewListMyBookings(repo domain.Repository, tz string) *ListMyBookings {
	return &ListMyBookings{repo: repo, tz: tz}
}

// Execute splits the user's bookings the way the client screen shows
// them: future non-cancelled sessions ascending, everything else
// (past dates and cancellations) descending.
func (uc *ListMyBookings) Execute(
	ctx context.Context,
	userID uint,
) (*MyBookings, error) {

	bookings, err := uc.repo.ListBookingsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := domain.FormatDate(timezone.NowIn(uc.tz))

	out := &MyBookings{
		Upcoming: make([]models.Booking, 0),
		Past:     make([]models.Booking, 0),
	}

	for _, b := range bookings {
		if b.BookingDate >= today && b.Status != string(domain.StatusCancelled) {
			out.Upcoming = append(out.Upcoming, b)
		} else {
			out.Past = append(out.Past, b)
		}
	}

	sort.SliceStable(out.Upcoming, func(i, j int) bool {
		return out.Upcoming[i].BookingDate < out.Upcoming[j].BookingDate
	})
	sort.SliceStable(out.Past, func(i, j int) bool {
		return out.Past[i].BookingDate > out.Past[j].BookingDate
	})

	return out, nil
}
