package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/httpresp"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
)

type PaymentMethodHandler struct {
	db *gorm.DB
}

func NewPaymentMethodHandler(db *gorm.DB) *PaymentMethodHandler {
	return &PaymentMethodHandler{db: db}
}

// ListActive is public: clients see how they can pay before requesting
// credits.
func (h *PaymentMethodHandler) ListActive(c *gin.Context) {
	var methods []models.PaymentMethod
	if err := h.db.WithContext(c.Request.Context()).
		Where("is_active = ?", true).
		Order("display_order asc, name asc").
		Find(&methods).Error; err != nil {
		httperr.Internal(c, "list_failed", "No se pudieron cargar los métodos de pago.")
		return
	}

	httpresp.List(c, methods)
}

func (h *PaymentMethodHandler) AdminList(c *gin.Context) {
	var methods []models.PaymentMethod
	if err := h.db.WithContext(c.Request.Context()).
		Order("display_order asc, name asc").
		Find(&methods).Error; err != nil {
		httperr.Internal(c, "list_failed", "No se pudieron cargar los métodos de pago.")
		return
	}

	httpresp.List(c, methods)
}

type paymentMethodRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Type         string `json:"type" binding:"required,max=30"`
	Instructions string `json:"instructions" binding:"max=500"`
	BankAccount  string `json:"bank_account" binding:"max=50"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone" binding:"max=20"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

func (h *PaymentMethodHandler) Create(c *gin.Context) {
	var req paymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Datos del método de pago inválidos.")
		return
	}

	method := models.PaymentMethod{
		Name:         req.Name,
		Type:         req.Type,
		Instructions: req.Instructions,
		BankAccount:  req.BankAccount,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}
	if req.IsActive != nil {
		method.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&method).Error; err != nil {
		httperr.Internal(c, "create_failed", "No se pudo crear el método de pago.")
		return
	}

	httpresp.Created(c, method)
}

func (h *PaymentMethodHandler) Update(c *gin.Context) {
	methodID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req paymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Datos del método de pago inválidos.")
		return
	}

	var method models.PaymentMethod
	if err := h.db.WithContext(c.Request.Context()).First(&method, methodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "payment_method_not_found", "Método de pago no encontrado.")
			return
		}
		httperr.Internal(c, "lookup_failed", "No se pudo cargar el método de pago.")
		return
	}

	method.Name = req.Name
	method.Type = req.Type
	method.Instructions = req.Instructions
	method.BankAccount = req.BankAccount
	method.ContactEmail = req.ContactEmail
	method.ContactPhone = req.ContactPhone
	method.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		method.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&method).Error; err != nil {
		httperr.Internal(c, "update_failed", "No se pudo actualizar el método de pago.")
		return
	}

	httpresp.OK(c, method)
}

// Delete deactivates rather than removes: payment requests keep their
// method reference.
func (h *PaymentMethodHandler) Delete(c *gin.Context) {
	methodID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.PaymentMethod{}).
		Where("id = ?", methodID).
		Update("is_active", false)
	if res.Error != nil {
		httperr.Internal(c, "update_failed", "No se pudo desactivar el método de pago.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "payment_method_not_found", "Método de pago no encontrado.")
		return
	}

	httpresp.OK(c, gin.H{"deactivated": true})
}
