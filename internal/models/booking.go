package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint    `gorm:"index:idx_bookings_user_slot_date,priority:1" json:"user_id"`
	User   Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	TimeSlotID uint     `gorm:"index:idx_bookings_user_slot_date,priority:2" json:"time_slot_id"`
	TimeSlot   TimeSlot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"time_slot"`

	// ISO date (YYYY-MM-DD) in the studio's local time.
	BookingDate string `gorm:"size:10;index;index:idx_bookings_user_slot_date,priority:3" json:"booking_date"`

	Status string `gorm:"size:20;default:'confirmed'" json:"status"`

	// Admin user who booked on the client's behalf, when not self-booked.
	CreatedBy *uint `json:"created_by,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
