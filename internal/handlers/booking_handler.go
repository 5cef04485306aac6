package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/httpresp"
	"github.com/StudioFitServices/studio-booking-api/internal/middleware"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
	ucBooking "github.com/StudioFitServices/studio-booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db *gorm.DB

	createUC   *ucBooking.CreateBooking
	cancelUC   *ucBooking.CancelBooking
	completeUC *ucBooking.CompleteBooking
	listMyUC   *ucBooking.ListMyBookings
}

func NewBookingHandler(
	db *gorm.DB,
	createUC *ucBooking.CreateBooking,
	cancelUC *ucBooking.CancelBooking,
	completeUC *ucBooking.CompleteBooking,
	listMyUC *ucBooking.ListMyBookings,
) *BookingHandler {
	return &BookingHandler{
		db:         db,
		createUC:   createUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
		listMyUC:   listMyUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	TimeSlotID  uint   `json:"time_slot_id" binding:"required"`
	BookingDate string `json:"booking_date" binding:"required"` // YYYY-MM-DD
}

type AdminCreateBookingRequest struct {
	UserID      uint   `json:"user_id" binding:"required"`
	TimeSlotID  uint   `json:"time_slot_id" binding:"required"`
	BookingDate string `json:"booking_date" binding:"required"`
}

// ======================================================
// CLIENT
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:     userID,
		TimeSlotID: req.TimeSlotID,
		Date:       req.BookingDate,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, b)
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	out, err := h.listMyUC.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Error al listar reservas.")
		return
	}

	httpresp.OK(c, out)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.cancelUC.Execute(c.Request.Context(), userID, bookingID, false)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// ADMIN
// ======================================================

// AdminCreate books on a client's behalf. Same invariants as a
// self-booking: the client's credits are debited.
func (h *BookingHandler) AdminCreate(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req AdminCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:     req.UserID,
		TimeSlotID: req.TimeSlotID,
		Date:       req.BookingDate,
		CreatedBy:  &adminID,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, b)
}

func (h *BookingHandler) AdminCancel(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.cancelUC.Execute(c.Request.Context(), adminID, bookingID, true)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) AdminComplete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.completeUC.Execute(c.Request.Context(), adminID, bookingID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, b)
}

// AdminList filters bookings by exact date or date range, with optional
// status and user filters.
func (h *BookingHandler) AdminList(c *gin.Context) {
	date := c.Query("date")
	from := c.Query("from")
	to := c.Query("to")
	status := c.Query("status")
	userIDStr := c.Query("user_id")

	q := h.db.Preload("TimeSlot").Preload("User")

	switch {
	case date != "":
		q = q.Where("booking_date = ?", date)
	case from != "" && to != "":
		q = q.Where("booking_date >= ? AND booking_date <= ?", from, to)
	}

	if status != "" {
		q = q.Where("status = ?", status)
	}

	if userIDStr != "" {
		userID, err := strconv.ParseUint(userIDStr, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_user_id", "Usuario inválido.")
			return
		}
		q = q.Where("user_id = ?", uint(userID))
	}

	var bookings []models.Booking
	if err := q.
		Order("booking_date DESC, created_at DESC").
		Limit(500).
		Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Error al listar reservas.")
		return
	}

	httpresp.List(c, bookings)
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

// parseIDParam writes the error response itself; callers just return on
// !ok.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}
