package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/StudioFitServices/studio-booking-api/internal/domain/schedule"
	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/httpresp"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
)

type DashboardHandler struct {
	db *gorm.DB
	tz string
}

func NewDashboardHandler(db *gorm.DB, tz string) *DashboardHandler {
	return &DashboardHandler{db: db, tz: tz}
}

// Summary aggregates the counters the admin home screen shows.
func (h *DashboardHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()
	today := studioToday(h.tz).Format(domain.DateLayout)

	var (
		pendingApprovals int64
		activeClients    int64
		bookingsToday    int64
		pendingPayments  int64
		activeSlots      int64
	)

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&pendingApprovals, h.db.WithContext(ctx).Model(&models.Profile{}).
			Where("role = ? AND approval_status = ?", "client", "pending")},
		{&activeClients, h.db.WithContext(ctx).Model(&models.Profile{}).
			Where("role = ? AND approval_status = ?", "client", "approved")},
		{&bookingsToday, h.db.WithContext(ctx).Model(&models.Booking{}).
			Where("booking_date = ? AND status = ?", today, domain.StatusConfirmed)},
		{&pendingPayments, h.db.WithContext(ctx).Model(&models.PaymentRequest{}).
			Where("status = ?", "pending")},
		{&activeSlots, h.db.WithContext(ctx).Model(&models.TimeSlot{}).
			Where("is_active = ?", true)},
	}

	for _, cnt := range counts {
		if err := cnt.query.Count(cnt.dest).Error; err != nil {
			httperr.Internal(c, "dashboard_failed", "No se pudo cargar el resumen.")
			return
		}
	}

	// Credits still unredeemed across active clients.
	var creditsOutstanding int64
	if err := h.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("role = ? AND approval_status = ?", "client", "approved").
		Select("COALESCE(SUM(credits), 0)").
		Scan(&creditsOutstanding).Error; err != nil {
		httperr.Internal(c, "dashboard_failed", "No se pudo cargar el resumen.")
		return
	}

	httpresp.OK(c, gin.H{
		"pending_approvals":   pendingApprovals,
		"active_clients":      activeClients,
		"bookings_today":      bookingsToday,
		"pending_payments":    pendingPayments,
		"active_time_slots":   activeSlots,
		"credits_outstanding": creditsOutstanding,
	})
}
