package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/httpresp"
	"github.com/StudioFitServices/studio-booking-api/internal/middleware"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
)

type SettingsHandler struct {
	db *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

// publicKeys are the settings any client may read; everything else is
// admin-only.
var publicKeys = map[string]bool{
	"cancellation_policy": true,
}

// PublicGet exposes the safelisted settings to authenticated clients,
// e.g. the cancellation policy shown on the booking screen.
func (h *SettingsHandler) PublicGet(c *gin.Context) {
	key := c.Param("key")
	if !publicKeys[key] {
		httperr.NotFound(c, "setting_not_found", "Ajuste no encontrado.")
		return
	}
	h.Get(c)
}

func (h *SettingsHandler) List(c *gin.Context) {
	var settings []models.AppSetting
	if err := h.db.WithContext(c.Request.Context()).
		Order("key asc").
		Find(&settings).Error; err != nil {
		httperr.Internal(c, "list_failed", "No se pudieron cargar los ajustes.")
		return
	}

	httpresp.List(c, settings)
}

func (h *SettingsHandler) Get(c *gin.Context) {
	key := c.Param("key")

	var setting models.AppSetting
	if err := h.db.WithContext(c.Request.Context()).
		Where("key = ?", key).
		First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "setting_not_found", "Ajuste no encontrado.")
			return
		}
		httperr.Internal(c, "lookup_failed", "No se pudo cargar el ajuste.")
		return
	}

	httpresp.OK(c, setting)
}

type updateSettingRequest struct {
	Value       json.RawMessage `json:"value" binding:"required"`
	Description *string         `json:"description"`
}

// Update upserts a keyed JSON value. The value is stored verbatim, so
// it must at least be valid JSON.
func (h *SettingsHandler) Update(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)
	key := c.Param("key")

	var req updateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Valor del ajuste inválido.")
		return
	}
	if !json.Valid(req.Value) {
		httperr.BadRequest(c, "invalid_payload", "El valor debe ser JSON válido.")
		return
	}

	ctx := c.Request.Context()

	var setting models.AppSetting
	err := h.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = models.AppSetting{Key: key}
	case err != nil:
		httperr.Internal(c, "lookup_failed", "No se pudo cargar el ajuste.")
		return
	}

	setting.Value = string(req.Value)
	setting.UpdatedBy = &adminID
	if req.Description != nil {
		setting.Description = *req.Description
	}

	if err := h.db.WithContext(ctx).Save(&setting).Error; err != nil {
		httperr.Internal(c, "update_failed", "No se pudo guardar el ajuste.")
		return
	}

	httpresp.OK(c, setting)
}
