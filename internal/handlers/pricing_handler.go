package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/httpresp"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
)

type PricingHandler struct {
	db *gorm.DB
}

func NewPricingHandler(db *gorm.DB) *PricingHandler {
	return &PricingHandler{db: db}
}

// ListActive is public: the landing page shows the credit packs.
func (h *PricingHandler) ListActive(c *gin.Context) {
	var packs []models.PricingPackage
	if err := h.db.WithContext(c.Request.Context()).
		Where("is_active = ?", true).
		Order("display_order asc, price asc").
		Find(&packs).Error; err != nil {
		httperr.Internal(c, "list_failed", "No se pudieron cargar los bonos.")
		return
	}

	httpresp.List(c, packs)
}

func (h *PricingHandler) AdminList(c *gin.Context) {
	var packs []models.PricingPackage
	if err := h.db.WithContext(c.Request.Context()).
		Order("display_order asc, price asc").
		Find(&packs).Error; err != nil {
		httperr.Internal(c, "list_failed", "No se pudieron cargar los bonos.")
		return
	}

	httpresp.List(c, packs)
}

type pricingPackageRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	PackageName  string  `json:"package_name" binding:"max=100"`
	Credits      int     `json:"credits" binding:"required,min=1"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	DisplayOrder int     `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

func (h *PricingHandler) Create(c *gin.Context) {
	var req pricingPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Datos del bono inválidos.")
		return
	}

	pack := models.PricingPackage{
		Name:         req.Name,
		PackageName:  req.PackageName,
		Credits:      req.Credits,
		Price:        req.Price,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}
	if req.IsActive != nil {
		pack.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&pack).Error; err != nil {
		httperr.Internal(c, "create_failed", "No se pudo crear el bono.")
		return
	}

	httpresp.Created(c, pack)
}

func (h *PricingHandler) Update(c *gin.Context) {
	packID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req pricingPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Datos del bono inválidos.")
		return
	}

	var pack models.PricingPackage
	if err := h.db.WithContext(c.Request.Context()).First(&pack, packID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "pricing_package_not_found", "Bono no encontrado.")
			return
		}
		httperr.Internal(c, "lookup_failed", "No se pudo cargar el bono.")
		return
	}

	pack.Name = req.Name
	pack.PackageName = req.PackageName
	pack.Credits = req.Credits
	pack.Price = req.Price
	pack.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		pack.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&pack).Error; err != nil {
		httperr.Internal(c, "update_failed", "No se pudo actualizar el bono.")
		return
	}

	httpresp.OK(c, pack)
}

// Delete deactivates: past payment requests were priced against it.
func (h *PricingHandler) Delete(c *gin.Context) {
	packID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.PricingPackage{}).
		Where("id = ?", packID).
		Update("is_active", false)
	if res.Error != nil {
		httperr.Internal(c, "update_failed", "No se pudo desactivar el bono.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "pricing_package_not_found", "Bono no encontrado.")
		return
	}

	httpresp.OK(c, gin.H{"deactivated": true})
}
