package models

import "time"

// AppSetting is a keyed JSON value, e.g. cancellation_policy =
// {"value": 24, "unit": "hours"}.
type AppSetting struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Key         string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value       string `gorm:"type:text;not null" json:"value"`
	Description string `gorm:"size:255" json:"description"`

	UpdatedBy *uint `json:"updated_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
