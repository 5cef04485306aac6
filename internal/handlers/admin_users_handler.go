package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/StudioFitServices/studio-booking-api/internal/audit"
	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/httpresp"
	"github.com/StudioFitServices/studio-booking-api/internal/middleware"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
)

// ======================================================
// USER MANAGEMENT (admin)
// ======================================================

type AdminUsersHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminUsersHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *AdminUsersHandler {
	return &AdminUsersHandler{db: db, audit: auditDispatcher}
}

func (h *AdminUsersHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.Profile{})

	if approval := c.Query("approval_status"); approval != "" {
		q = q.Where("approval_status = ?", approval)
	}
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var users []models.Profile
	if err := q.Order("created_at desc").Limit(500).Find(&users).Error; err != nil {
		httperr.Internal(c, "list_failed", "No se pudieron cargar los usuarios.")
		return
	}

	httpresp.List(c, users)
}

func (h *AdminUsersHandler) Get(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var user models.Profile
	if err := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
			return
		}
		httperr.Internal(c, "lookup_failed", "No se pudo cargar el usuario.")
		return
	}

	httpresp.OK(c, user)
}

// Approve opens the booking screens to a pending account.
func (h *AdminUsersHandler) Approve(c *gin.Context) {
	h.setApproval(c, "approved", "user_approved")
}

// Reject locks the account out: rejected users cannot even log in.
func (h *AdminUsersHandler) Reject(c *gin.Context) {
	h.setApproval(c, "rejected", "user_rejected")
}

func (h *AdminUsersHandler) setApproval(c *gin.Context, status, action string) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var user models.Profile
	if err := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
			return
		}
		httperr.Internal(c, "lookup_failed", "No se pudo cargar el usuario.")
		return
	}

	if user.Role == middleware.RoleAdmin {
		httperr.Forbidden(c, "cannot_modify_admin", "No se puede cambiar el estado de un administrador.")
		return
	}

	user.ApprovalStatus = status
	if err := h.db.WithContext(c.Request.Context()).Save(&user).Error; err != nil {
		httperr.Internal(c, "update_failed", "No se pudo actualizar el usuario.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &adminID,
		Action:   action,
		Entity:   "profile",
		EntityID: &user.ID,
	})

	httpresp.OK(c, user)
}

type adjustCreditsRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"max=255"`
}

// AdjustCredits adds or removes credits manually, e.g. for a cash
// payment or a goodwill correction. The balance never goes negative.
func (h *AdminUsersHandler) AdjustCredits(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req adjustCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Ajuste de créditos inválido.")
		return
	}

	var user models.Profile
	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("user_not_found")
			}
			return err
		}

		res := tx.Model(&models.Profile{}).
			Where("id = ? AND credits + ? >= 0", user.ID, req.Delta).
			Update("credits", gorm.Expr("credits + ?", req.Delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("insufficient_credits")
		}

		return tx.First(&user, userID).Error
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &adminID,
		Action:   "credits_adjusted",
		Entity:   "profile",
		EntityID: &user.ID,
		Metadata: gin.H{"delta": req.Delta, "reason": req.Reason, "balance": user.Credits},
	})

	httpresp.OK(c, user)
}

type updatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=none pending paid unpaid"`
}

func (h *AdminUsersHandler) UpdatePaymentStatus(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Estado de pago inválido.")
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Profile{}).
		Where("id = ?", userID).
		Update("payment_status", req.PaymentStatus)
	if res.Error != nil {
		httperr.Internal(c, "update_failed", "No se pudo actualizar el estado de pago.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
		return
	}

	httpresp.OK(c, gin.H{"payment_status": req.PaymentStatus})
}

type adminCreateUserRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"omitempty,oneof=client admin"`
	Credits  int    `json:"credits" binding:"min=0"`
}

// Create registers an account already approved: the front desk creates
// it for a client standing right there.
func (h *AdminUsersHandler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req adminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Datos del usuario inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.WithContext(c.Request.Context()).
		Model(&models.Profile{}).
		Where("email = ?", email).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "email_already_exists", "Ya existe una cuenta con este correo.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "create_failed", "No se pudo crear el usuario.")
		return
	}

	role := req.Role
	if role == "" {
		role = middleware.RoleClient
	}

	user := models.Profile{
		Email:          email,
		PasswordHash:   string(hashed),
		FullName:       req.FullName,
		Phone:          req.Phone,
		Role:           role,
		ApprovalStatus: "approved",
		PaymentStatus:  "none",
		Credits:        req.Credits,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		httperr.Internal(c, "create_failed", "No se pudo crear el usuario.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &adminID,
		Action:   "user_created_by_admin",
		Entity:   "profile",
		EntityID: &user.ID,
		Metadata: gin.H{"role": user.Role, "credits": user.Credits},
	})

	httpresp.Created(c, user)
}
