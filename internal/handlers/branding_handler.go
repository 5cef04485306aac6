package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/httpresp"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
	"github.com/StudioFitServices/studio-booking-api/internal/storage"
)

// ======================================================
// BRANDING (public landing-page content)
// ======================================================

const maxImageUploadBytes = 10 << 20

type BrandingHandler struct {
	db      *gorm.DB
	storage *storage.Client
}

func NewBrandingHandler(db *gorm.DB, storageClient *storage.Client) *BrandingHandler {
	return &BrandingHandler{db: db, storage: storageClient}
}

// Get is public and unauthenticated: the landing page fetches it before
// anyone logs in. The row is seeded at startup, so First never misses
// in a healthy deployment.
func (h *BrandingHandler) Get(c *gin.Context) {
	var branding models.BrandingSettings
	if err := h.db.WithContext(c.Request.Context()).First(&branding).Error; err != nil {
		httperr.Internal(c, "lookup_failed", "No se pudo cargar la información del estudio.")
		return
	}

	httpresp.OK(c, branding)
}

// Update overwrites the editable content fields. Image URLs are managed
// through UploadImage, not here.
func (h *BrandingHandler) Update(c *gin.Context) {
	var req models.BrandingSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Datos inválidos.")
		return
	}

	ctx := c.Request.Context()

	var branding models.BrandingSettings
	if err := h.db.WithContext(ctx).First(&branding).Error; err != nil {
		httperr.Internal(c, "lookup_failed", "No se pudo cargar la información del estudio.")
		return
	}

	branding.BusinessName = req.BusinessName
	branding.HeroTitle = req.HeroTitle
	branding.HeroSubtitle = req.HeroSubtitle
	branding.HeroCTAText = req.HeroCTAText
	branding.ValuePropTitle = req.ValuePropTitle
	branding.ValuePropSubtitle = req.ValuePropSubtitle
	branding.AboutTrainerTitle = req.AboutTrainerTitle
	branding.AboutTrainerText = req.AboutTrainerText
	branding.AboutTrainerQuote = req.AboutTrainerQuote
	branding.Phone = req.Phone
	branding.Email = req.Email
	branding.WhatsApp = req.WhatsApp
	branding.Instagram = req.Instagram
	branding.Address = req.Address
	branding.City = req.City
	branding.Region = req.Region
	branding.Country = req.Country
	branding.GoogleMapsURL = req.GoogleMapsURL
	branding.Latitude = req.Latitude
	branding.Longitude = req.Longitude
	branding.ScheduleWeekdays = req.ScheduleWeekdays
	branding.ScheduleSaturday = req.ScheduleSaturday
	branding.ScheduleSunday = req.ScheduleSunday
	branding.ShowLogo = req.ShowLogo
	branding.ShowHeroImage = req.ShowHeroImage
	branding.ShowTrainerImage = req.ShowTrainerImage
	branding.ShowGroupImage = req.ShowGroupImage
	branding.ShowPhone = req.ShowPhone
	branding.ShowEmail = req.ShowEmail
	branding.ShowWhatsApp = req.ShowWhatsApp
	branding.ShowInstagram = req.ShowInstagram
	branding.ShowLocation = req.ShowLocation
	branding.ShowSchedule = req.ShowSchedule
	branding.Testimonials = req.Testimonials

	if err := h.db.WithContext(ctx).Save(&branding).Error; err != nil {
		httperr.Internal(c, "update_failed", "No se pudo guardar la información del estudio.")
		return
	}

	httpresp.OK(c, branding)
}

var brandingImageFields = map[string]string{
	"logo":    "logo_url",
	"hero":    "hero_image_url",
	"trainer": "trainer_image_url",
	"group":   "group_image_url",
}

// UploadImage accepts a multipart image for one of the landing-page
// slots, normalizes it to webp, stores it and saves the new URL.
func (h *BrandingHandler) UploadImage(c *gin.Context) {
	slot := c.Param("slot")
	column, ok := brandingImageFields[slot]
	if !ok {
		httperr.BadRequest(c, "invalid_image_slot", "Tipo de imagen desconocido.")
		return
	}

	if !h.storage.Enabled() {
		httperr.BadRequest(c, "storage_disabled", "La subida de imágenes no está configurada.")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Falta el archivo de imagen.")
		return
	}
	if fileHeader.Size > maxImageUploadBytes {
		httperr.BadRequest(c, "image_too_large", "La imagen supera el tamaño máximo de 10MB.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "upload_failed", "No se pudo leer la imagen.")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxImageUploadBytes+1))
	if err != nil {
		httperr.Internal(c, "upload_failed", "No se pudo leer la imagen.")
		return
	}

	normalized, contentType, err := storage.NormalizeImage(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Formato de imagen no soportado.")
		return
	}

	ctx := c.Request.Context()

	url, err := h.storage.UploadImage(ctx, normalized, contentType)
	if err != nil {
		httperr.Internal(c, "upload_failed", "No se pudo subir la imagen.")
		return
	}

	var branding models.BrandingSettings
	if err := h.db.WithContext(ctx).First(&branding).Error; err != nil {
		httperr.Internal(c, "lookup_failed", "No se pudo cargar la información del estudio.")
		return
	}

	if err := h.db.WithContext(ctx).
		Model(&branding).
		Update(column, url).Error; err != nil {
		httperr.Internal(c, "update_failed", "No se pudo guardar la URL de la imagen.")
		return
	}

	httpresp.OK(c, gin.H{"slot": slot, "url": url})
}
