package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/httpresp"
	"github.com/StudioFitServices/studio-booking-api/internal/middleware"
	ucBooking "github.com/StudioFitServices/studio-booking-api/internal/usecase/booking"
)

type CalendarHandler struct {
	calendarUC *ucBooking.CalendarView
}

func NewCalendarHandler(calendarUC *ucBooking.CalendarView) *CalendarHandler {
	return &CalendarHandler{calendarUC: calendarUC}
}

// Month returns the Monday-aligned month grid for the booking screen:
// per-day state, matched slots and remaining spots.
func (h *CalendarHandler) Month(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	in := ucBooking.MonthInput{
		Year:   year,
		Month:  month,
		UserID: &userID,
	}
	if sel := c.Query("selected"); sel != "" {
		in.SelectedDate = &sel
	}

	days, err := h.calendarUC.Month(c.Request.Context(), in)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, days)
}

// AdminMonth is the schedule editor's grid: inactive slots included.
func (h *CalendarHandler) AdminMonth(c *gin.Context) {
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	days, err := h.calendarUC.Month(c.Request.Context(), ucBooking.MonthInput{
		Year:            year,
		Month:           month,
		IncludeInactive: true,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, days)
}

// Week returns the 7-day strip containing the anchor date.
func (h *CalendarHandler) Week(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	anchor := c.Query("anchor")
	if anchor == "" {
		httperr.BadRequest(c, "missing_anchor", "Fecha de referencia obligatoria.")
		return
	}

	var selected *string
	if sel := c.Query("selected"); sel != "" {
		selected = &sel
	}

	days, err := h.calendarUC.Week(c.Request.Context(), anchor, &userID, selected)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, days)
}

// Spots is the authoritative availability check for one (slot, date).
func (h *CalendarHandler) Spots(c *gin.Context) {
	slotIDStr := c.Query("time_slot_id")
	date := c.Query("date")

	if slotIDStr == "" || date == "" {
		httperr.BadRequest(c, "missing_params", "Horario y fecha obligatorios.")
		return
	}

	slotID, err := strconv.ParseUint(slotIDStr, 10, 64)
	if err != nil || slotID == 0 {
		httperr.BadRequest(c, "invalid_time_slot_id", "Horario inválido.")
		return
	}

	av, err := h.calendarUC.SpotsFor(c.Request.Context(), uint(slotID), date)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, av)
}

func parseYearMonth(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2200 {
		httperr.BadRequest(c, "invalid_year", "Año inválido.")
		return 0, 0, false
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mes inválido.")
		return 0, 0, false
	}

	return year, month, true
}
