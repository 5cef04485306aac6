package models

import "time"

type Profile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FullName     string `gorm:"size:100" json:"full_name"`
	Phone        string `gorm:"size:20" json:"phone"`

	Role           string `gorm:"size:20;default:'client'" json:"role"`
	ApprovalStatus string `gorm:"size:20;default:'pending'" json:"approval_status"`
	PaymentStatus  string `gorm:"size:20;default:'none'" json:"payment_status"`

	Credits int `gorm:"default:0" json:"credits"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
