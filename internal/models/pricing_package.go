package models

import "time"

type PricingPackage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	PackageName string `gorm:"size:100" json:"package_name"`

	Credits int     `gorm:"not null" json:"credits"`
	Price   float64 `gorm:"not null" json:"price"`

	DisplayOrder int  `gorm:"default:0" json:"display_order"`
	IsActive     bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
