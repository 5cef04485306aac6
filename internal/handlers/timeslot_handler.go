package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioFitServices/studio-booking-api/internal/audit"
	"github.com/StudioFitServices/studio-booking-api/internal/cache"
	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/httpresp"
	"github.com/StudioFitServices/studio-booking-api/internal/middleware"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
)

// ======================================================
// TIME SLOTS (admin schedule management)
// ======================================================

type TimeSlotHandler struct {
	db         *gorm.DB
	availCache *cache.AvailabilityCache
	audit      *audit.Dispatcher
	tz         string
}

func NewTimeSlotHandler(db *gorm.DB, availCache *cache.AvailabilityCache, auditDispatcher *audit.Dispatcher, tz string) *TimeSlotHandler {
	return &TimeSlotHandler{db: db, availCache: availCache, audit: auditDispatcher, tz: tz}
}

type createRecurringSlotsRequest struct {
	DaysOfWeek []int  `json:"days_of_week" binding:"required,min=1"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	Capacity   int    `json:"capacity" binding:"required,min=1"`
}

// CreateRecurring creates one recurring slot per selected weekday,
// best-effort: a 207 response carries one result per weekday in input
// order, and valid weekdays are created even when siblings fail.
func (h *TimeSlotHandler) CreateRecurring(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req createRecurringSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Datos del horario inválidos.")
		return
	}

	startTime, okStart := normalizeHHMM(req.StartTime)
	endTime, okEnd := normalizeHHMM(req.EndTime)
	if !okStart || !okEnd || endTime <= startTime {
		httperr.BadRequest(c, "invalid_time_range", "El horario de fin debe ser posterior al de inicio.")
		return
	}

	results := make([]httpresp.BatchItem[models.TimeSlot], 0, len(req.DaysOfWeek))
	anyOK := false

	for _, dow := range req.DaysOfWeek {
		if dow < 0 || dow > 6 {
			results = append(results, httpresp.BatchItem[models.TimeSlot]{
				OK:    false,
				Error: fmt.Sprintf("día de la semana inválido: %d", dow),
			})
			continue
		}

		day := dow
		slot := models.TimeSlot{
			SlotType:  models.SlotTypeRecurring,
			DayOfWeek: &day,
			StartTime: startTime,
			EndTime:   endTime,
			Capacity:  req.Capacity,
			IsActive:  true,
			CreatedBy: &adminID,
		}

		if err := h.db.WithContext(c.Request.Context()).Create(&slot).Error; err != nil {
			results = append(results, httpresp.BatchItem[models.TimeSlot]{
				OK:    false,
				Error: "no se pudo crear el horario",
			})
			continue
		}

		anyOK = true
		results = append(results, httpresp.BatchItem[models.TimeSlot]{OK: true, Data: &slot})

		h.audit.Dispatch(audit.Event{
			ActorID:  &adminID,
			Action:   "slot_created",
			Entity:   "time_slot",
			EntityID: &slot.ID,
			Metadata: gin.H{"slot_type": slot.SlotType, "day_of_week": day},
		})
	}

	status := 207
	if !anyOK {
		status = 400
	}
	c.JSON(status, gin.H{"results": results})
}

type createSpecificSlotRequest struct {
	SpecificDate string `json:"specific_date" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	Capacity     int    `json:"capacity" binding:"required,min=1"`
}

// CreateSpecific creates a one-off slot for a single date. Past dates
// are rejected: a slot nobody could ever book is a data-entry mistake.
func (h *TimeSlotHandler) CreateSpecific(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req createSpecificSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Datos del horario inválidos.")
		return
	}

	date, err := parseStudioDate(h.tz, req.SpecificDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}
	if date.Before(studioToday(h.tz)) {
		httperr.BadRequest(c, "date_in_past", "No se pueden crear horarios en fechas pasadas.")
		return
	}

	startTime, okStart := normalizeHHMM(req.StartTime)
	endTime, okEnd := normalizeHHMM(req.EndTime)
	if !okStart || !okEnd || endTime <= startTime {
		httperr.BadRequest(c, "invalid_time_range", "El horario de fin debe ser posterior al de inicio.")
		return
	}

	specific := req.SpecificDate
	slot := models.TimeSlot{
		SlotType:     models.SlotTypeSpecificDate,
		SpecificDate: &specific,
		StartTime:    startTime,
		EndTime:      endTime,
		Capacity:     req.Capacity,
		IsActive:     true,
		CreatedBy:    &adminID,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&slot).Error; err != nil {
		httperr.Internal(c, "create_failed", "No se pudo crear el horario.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &adminID,
		Action:   "slot_created",
		Entity:   "time_slot",
		EntityID: &slot.ID,
		Metadata: gin.H{"slot_type": slot.SlotType, "specific_date": specific},
	})

	httpresp.Created(c, slot)
}

func (h *TimeSlotHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.TimeSlot{})

	if slotType := c.Query("slot_type"); slotType != "" {
		q = q.Where("slot_type = ?", slotType)
	}
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}

	var slots []models.TimeSlot
	if err := q.Order("day_of_week asc, specific_date asc, start_time asc").Find(&slots).Error; err != nil {
		httperr.Internal(c, "list_failed", "No se pudieron cargar los horarios.")
		return
	}

	httpresp.List(c, slots)
}

type updateSlotRequest struct {
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Capacity  *int    `json:"capacity"`
	IsActive  *bool   `json:"is_active"`
}

func (h *TimeSlotHandler) Update(c *gin.Context) {
	slotID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Datos inválidos.")
		return
	}

	var slot models.TimeSlot
	if err := h.db.WithContext(c.Request.Context()).First(&slot, slotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "time_slot_not_found", "Horario no encontrado.")
			return
		}
		httperr.Internal(c, "lookup_failed", "No se pudo cargar el horario.")
		return
	}

	if req.StartTime != nil {
		s, ok := normalizeHHMM(*req.StartTime)
		if !ok {
			httperr.BadRequest(c, "invalid_time_range", "Hora de inicio inválida.")
			return
		}
		slot.StartTime = s
	}
	if req.EndTime != nil {
		s, ok := normalizeHHMM(*req.EndTime)
		if !ok {
			httperr.BadRequest(c, "invalid_time_range", "Hora de fin inválida.")
			return
		}
		slot.EndTime = s
	}
	if slot.EndTime <= slot.StartTime {
		httperr.BadRequest(c, "invalid_time_range", "El horario de fin debe ser posterior al de inicio.")
		return
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			httperr.BadRequest(c, "invalid_capacity", "La capacidad debe ser al menos 1.")
			return
		}
		slot.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&slot).Error; err != nil {
		httperr.Internal(c, "update_failed", "No se pudo actualizar el horario.")
		return
	}

	h.invalidateSlot(c, slot.ID)
	httpresp.OK(c, slot)
}

// Delete removes a slot outright only when nothing was ever booked on
// it; otherwise it deactivates, keeping booking history intact.
func (h *TimeSlotHandler) Delete(c *gin.Context) {
	slotID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var slot models.TimeSlot
	if err := h.db.WithContext(ctx).First(&slot, slotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "time_slot_not_found", "Horario no encontrado.")
			return
		}
		httperr.Internal(c, "lookup_failed", "No se pudo cargar el horario.")
		return
	}

	var bookingCount int64
	if err := h.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("time_slot_id = ?", slot.ID).
		Count(&bookingCount).Error; err != nil {
		httperr.Internal(c, "lookup_failed", "No se pudo comprobar las reservas del horario.")
		return
	}

	if bookingCount > 0 {
		slot.IsActive = false
		if err := h.db.WithContext(ctx).Save(&slot).Error; err != nil {
			httperr.Internal(c, "update_failed", "No se pudo desactivar el horario.")
			return
		}
		h.invalidateSlot(c, slot.ID)
		httpresp.OK(c, gin.H{"deleted": false, "deactivated": true})
		return
	}

	if err := h.db.WithContext(ctx).Delete(&slot).Error; err != nil {
		httperr.Internal(c, "delete_failed", "No se pudo eliminar el horario.")
		return
	}

	h.invalidateSlot(c, slot.ID)
	httpresp.OK(c, gin.H{"deleted": true, "deactivated": false})
}

func (h *TimeSlotHandler) invalidateSlot(c *gin.Context, slotID uint) {
	// Availability keys are per (slot, date); the cheapest correct move
	// after a slot edit is to let the short TTL expire stale entries and
	// invalidate today's entry, the one most likely to be hot.
	h.availCache.Invalidate(c.Request.Context(), slotID, studioToday(h.tz).Format("2006-01-02"))
}
