package models

import "time"

type PaymentRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint    `json:"user_id"`
	User   Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	CreditsRequested int `gorm:"not null" json:"credits_requested"`

	PaymentMethodID *uint          `json:"payment_method_id,omitempty"`
	PaymentMethod   *PaymentMethod `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"payment_method,omitempty"`

	Status     string `gorm:"size:20;default:'pending'" json:"status"`
	AdminNotes string `gorm:"size:500" json:"admin_notes"`

	ProcessedBy *uint      `json:"processed_by,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`

	// Set when an online checkout was generated for this request.
	ExternalReference string `gorm:"size:64;index" json:"external_reference,omitempty"`
	CheckoutURL       string `gorm:"size:500" json:"checkout_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
