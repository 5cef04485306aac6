package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioFitServices/studio-booking-api/internal/audit"
	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/httpresp"
	"github.com/StudioFitServices/studio-booking-api/internal/middleware"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
	"github.com/StudioFitServices/studio-booking-api/internal/payments"
)

// ======================================================
// PAYMENT REQUESTS (credit purchases)
// ======================================================

const (
	paymentRequestPending  = "pending"
	paymentRequestApproved = "approved"
	paymentRequestRejected = "rejected"
)

type PaymentRequestHandler struct {
	db       *gorm.DB
	checkout *payments.Checkout
	audit    *audit.Dispatcher
}

func NewPaymentRequestHandler(db *gorm.DB, checkout *payments.Checkout, auditDispatcher *audit.Dispatcher) *PaymentRequestHandler {
	return &PaymentRequestHandler{db: db, checkout: checkout, audit: auditDispatcher}
}

type createPaymentRequestRequest struct {
	PricingPackageID uint  `json:"pricing_package_id" binding:"required"`
	PaymentMethodID  *uint `json:"payment_method_id"`

	// Request an online checkout link instead of a manual method.
	OnlineCheckout bool `json:"online_checkout"`
}

// Create registers a client's intent to buy a credits pack. Credits are
// only granted when an admin approves; an optional Mercado Pago
// checkout link gives the client a way to pay online meanwhile.
func (h *PaymentRequestHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	ctx := c.Request.Context()

	var req createPaymentRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Datos de la solicitud inválidos.")
		return
	}

	var pack models.PricingPackage
	if err := h.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", req.PricingPackageID, true).
		First(&pack).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "pricing_package_not_found", "Bono no encontrado.")
			return
		}
		httperr.Internal(c, "lookup_failed", "No se pudo cargar el bono.")
		return
	}

	if req.PaymentMethodID != nil {
		var count int64
		if err := h.db.WithContext(ctx).
			Model(&models.PaymentMethod{}).
			Where("id = ? AND is_active = ?", *req.PaymentMethodID, true).
			Count(&count).Error; err != nil || count == 0 {
			httperr.BadRequest(c, "payment_method_not_found", "Método de pago no válido.")
			return
		}
	}

	// One open request at a time keeps the admin queue sane.
	var pending int64
	if err := h.db.WithContext(ctx).
		Model(&models.PaymentRequest{}).
		Where("user_id = ? AND status = ?", userID, paymentRequestPending).
		Count(&pending).Error; err != nil {
		httperr.Internal(c, "lookup_failed", "No se pudo comprobar solicitudes anteriores.")
		return
	}
	if pending > 0 {
		httperr.Conflict(c, "pending_request_exists", "Ya tienes una solicitud de créditos pendiente.")
		return
	}

	pr := models.PaymentRequest{
		UserID:           userID,
		CreditsRequested: pack.Credits,
		PaymentMethodID:  req.PaymentMethodID,
		Status:           paymentRequestPending,
	}

	if req.OnlineCheckout {
		if !h.checkout.Enabled() {
			httperr.BadRequest(c, "online_payments_disabled", "El pago online no está disponible.")
			return
		}
		ref, url, err := h.checkout.CreatePreference(ctx, pack.Name, pack.Credits, pack.Price)
		if err != nil {
			httperr.Internal(c, "checkout_failed", "No se pudo generar el enlace de pago.")
			return
		}
		pr.ExternalReference = ref
		pr.CheckoutURL = url
	}

	if err := h.db.WithContext(ctx).Create(&pr).Error; err != nil {
		httperr.Internal(c, "create_failed", "No se pudo registrar la solicitud.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &userID,
		Action:   "payment_request_created",
		Entity:   "payment_request",
		EntityID: &pr.ID,
		Metadata: gin.H{"credits": pr.CreditsRequested, "package": pack.Name},
	})

	httpresp.Created(c, pr)
}

func (h *PaymentRequestHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var requests []models.PaymentRequest
	if err := h.db.WithContext(c.Request.Context()).
		Preload("PaymentMethod").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		httperr.Internal(c, "list_failed", "No se pudieron cargar las solicitudes.")
		return
	}

	httpresp.List(c, requests)
}

func (h *PaymentRequestHandler) AdminList(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Model(&models.PaymentRequest{}).
		Preload("User").
		Preload("PaymentMethod")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var requests []models.PaymentRequest
	if err := q.Order("created_at desc").Limit(500).Find(&requests).Error; err != nil {
		httperr.Internal(c, "list_failed", "No se pudieron cargar las solicitudes.")
		return
	}

	httpresp.List(c, requests)
}

type processPaymentRequestRequest struct {
	AdminNotes string `json:"admin_notes"`
}

// Approve grants the requested credits and marks the request processed,
// atomically: a crash between the two would otherwise mint or lose
// credits.
func (h *PaymentRequestHandler) Approve(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req processPaymentRequestRequest
	_ = c.ShouldBindJSON(&req)

	var pr models.PaymentRequest
	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pr, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("payment_request_not_found")
			}
			return err
		}
		if pr.Status != paymentRequestPending {
			return httperr.ErrBusiness("request_already_processed")
		}

		res := tx.Model(&models.Profile{}).
			Where("id = ?", pr.UserID).
			Update("credits", gorm.Expr("credits + ?", pr.CreditsRequested))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("profile_not_found")
		}

		now := time.Now()
		pr.Status = paymentRequestApproved
		pr.AdminNotes = req.AdminNotes
		pr.ProcessedBy = &adminID
		pr.ProcessedAt = &now
		return tx.Save(&pr).Error
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &adminID,
		Action:   "payment_request_approved",
		Entity:   "payment_request",
		EntityID: &pr.ID,
		Metadata: gin.H{"user_id": pr.UserID, "credits": pr.CreditsRequested},
	})

	httpresp.OK(c, pr)
}

func (h *PaymentRequestHandler) Reject(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req processPaymentRequestRequest
	_ = c.ShouldBindJSON(&req)

	var pr models.PaymentRequest
	if err := h.db.WithContext(c.Request.Context()).First(&pr, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "payment_request_not_found", "Solicitud no encontrada.")
			return
		}
		httperr.Internal(c, "lookup_failed", "No se pudo cargar la solicitud.")
		return
	}
	if pr.Status != paymentRequestPending {
		httperr.Conflict(c, "request_already_processed", "La solicitud ya fue procesada.")
		return
	}

	now := time.Now()
	pr.Status = paymentRequestRejected
	pr.AdminNotes = req.AdminNotes
	pr.ProcessedBy = &adminID
	pr.ProcessedAt = &now

	if err := h.db.WithContext(c.Request.Context()).Save(&pr).Error; err != nil {
		httperr.Internal(c, "update_failed", "No se pudo actualizar la solicitud.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &adminID,
		Action:   "payment_request_rejected",
		Entity:   "payment_request",
		EntityID: &pr.ID,
		Metadata: gin.H{"user_id": pr.UserID, "notes": fmt.Sprintf("%.120s", req.AdminNotes)},
	})

	httpresp.OK(c, pr)
}
