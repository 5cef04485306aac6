package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/httpresp"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if actor := c.Query("actor_id"); actor != "" {
		actorID, err := strconv.ParseUint(actor, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_actor_id", "Identificador de usuario inválido.")
			return
		}
		q = q.Where("actor_id = ?", actorID)
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	var logs []models.AuditLog
	if err := q.Order("created_at desc").Limit(limit).Find(&logs).Error; err != nil {
		httperr.Internal(c, "list_failed", "No se pudieron cargar los registros.")
		return
	}

	httpresp.List(c, logs)
}
