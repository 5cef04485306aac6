package models

import "time"

type PaymentMethod struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:100;not null" json:"name"`
	Type string `gorm:"size:30;not null" json:"type"` // bank_transfer, cash, bizum, mercadopago...

	Instructions string `gorm:"size:500" json:"instructions"`
	BankAccount  string `gorm:"size:50" json:"bank_account"`
	ContactEmail string `gorm:"size:100" json:"contact_email"`
	ContactPhone string `gorm:"size:20" json:"contact_phone"`

	DisplayOrder int  `gorm:"default:0" json:"display_order"`
	IsActive     bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
