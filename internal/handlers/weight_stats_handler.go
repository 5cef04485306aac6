package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/httpresp"
	"github.com/StudioFitServices/studio-booking-api/internal/middleware"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
)

// ======================================================
// WEIGHT STATS (body composition tracking)
// ======================================================

type WeightStatsHandler struct {
	db *gorm.DB
	tz string
}

func NewWeightStatsHandler(db *gorm.DB, tz string) *WeightStatsHandler {
	return &WeightStatsHandler{db: db, tz: tz}
}

type createWeightStatRequest struct {
	Weight float64 `json:"weight" binding:"required,gt=0"`

	BMI                      *float64 `json:"bmi"`
	BodyFatPercentage        *float64 `json:"body_fat_percentage"`
	MuscleMass               *float64 `json:"muscle_mass"`
	BoneMass                 *float64 `json:"bone_mass"`
	TotalBodyWaterPercentage *float64 `json:"total_body_water_percentage"`
	MetabolicAge             *int     `json:"metabolic_age"`
	DailyCalorieIntake       *int     `json:"daily_calorie_intake"`

	Notes string `json:"notes" binding:"max=500"`

	// ISO date; defaults to today when omitted.
	RecordedAt string `json:"recorded_at"`
}

func (h *WeightStatsHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req createWeightStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Datos de la medición inválidos.")
		return
	}

	recordedAt := studioToday(h.tz)
	if req.RecordedAt != "" {
		parsed, err := parseStudioDate(h.tz, req.RecordedAt)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha de la medición inválida.")
			return
		}
		if parsed.After(studioToday(h.tz)) {
			httperr.BadRequest(c, "date_in_future", "La medición no puede ser futura.")
			return
		}
		recordedAt = parsed
	}

	stat := models.WeightStat{
		UserID:                   userID,
		Weight:                   req.Weight,
		BMI:                      req.BMI,
		BodyFatPercentage:        req.BodyFatPercentage,
		MuscleMass:               req.MuscleMass,
		BoneMass:                 req.BoneMass,
		TotalBodyWaterPercentage: req.TotalBodyWaterPercentage,
		MetabolicAge:             req.MetabolicAge,
		DailyCalorieIntake:       req.DailyCalorieIntake,
		Notes:                    req.Notes,
		RecordedAt:               recordedAt,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&stat).Error; err != nil {
		httperr.Internal(c, "create_failed", "No se pudo guardar la medición.")
		return
	}

	httpresp.Created(c, stat)
}

// List returns the user's measurements, optionally bounded by from/to
// dates, newest first.
func (h *WeightStatsHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	q := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID)

	if from := c.Query("from"); from != "" {
		d, err := parseStudioDate(h.tz, from)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha inicial inválida.")
			return
		}
		q = q.Where("recorded_at >= ?", d)
	}
	if to := c.Query("to"); to != "" {
		d, err := parseStudioDate(h.tz, to)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha final inválida.")
			return
		}
		q = q.Where("recorded_at < ?", d.AddDate(0, 0, 1))
	}

	var stats []models.WeightStat
	if err := q.Order("recorded_at desc").Limit(500).Find(&stats).Error; err != nil {
		httperr.Internal(c, "list_failed", "No se pudieron cargar las mediciones.")
		return
	}

	httpresp.List(c, stats)
}

// Summary reports the latest measurement plus the change since the
// first one on record.
func (h *WeightStatsHandler) Summary(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	ctx := c.Request.Context()

	var latest models.WeightStat
	err := h.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at desc").
		First(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpresp.OK(c, gin.H{"latest": nil})
		return
	}
	if err != nil {
		httperr.Internal(c, "lookup_failed", "No se pudo cargar la medición.")
		return
	}

	var first models.WeightStat
	if err := h.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at asc").
		First(&first).Error; err != nil {
		httperr.Internal(c, "lookup_failed", "No se pudo cargar la medición.")
		return
	}

	httpresp.OK(c, gin.H{
		"latest":        latest,
		"first":         first,
		"weight_change": latest.Weight - first.Weight,
		"days_tracked":  int(latest.RecordedAt.Sub(first.RecordedAt) / (24 * time.Hour)),
	})
}

func (h *WeightStatsHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	statID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", statID, userID).
		Delete(&models.WeightStat{})
	if res.Error != nil {
		httperr.Internal(c, "delete_failed", "No se pudo eliminar la medición.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "weight_stat_not_found", "Medición no encontrada.")
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}
