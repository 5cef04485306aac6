package models

import "time"

const (
	SlotTypeRecurring    = "recurring"
	SlotTypeSpecificDate = "specific_date"
)

// TimeSlot is a bookable window. Recurring slots repeat on DayOfWeek
// (0=Sunday..6=Saturday); specific-date slots happen exactly once on
// SpecificDate. DayOfWeek is nil for specific-date slots: the weekday is
// a function of the date and is derived on read instead of stored twice.
type TimeSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SlotType     string  `gorm:"size:20;not null;default:'recurring'" json:"slot_type"`
	DayOfWeek    *int    `json:"day_of_week,omitempty"`
	SpecificDate *string `gorm:"size:10;index" json:"specific_date,omitempty"`

	StartTime string `gorm:"size:8;not null" json:"start_time"` // HH:MM, studio-local
	EndTime   string `gorm:"size:8;not null" json:"end_time"`

	Capacity int  `gorm:"not null;default:1" json:"capacity"`
	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedBy *uint `json:"created_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Weekday reports the weekday the slot is offered on, deriving it from
// SpecificDate for one-off slots. ok is false when the slot carries
// neither a weekday nor a parseable date.
func (s *TimeSlot) Weekday() (int, bool) {
	if s.SlotType == SlotTypeRecurring {
		if s.DayOfWeek == nil {
			return 0, false
		}
		return *s.DayOfWeek, true
	}
	if s.SpecificDate == nil {
		return 0, false
	}
	d, err := time.Parse("2006-01-02", *s.SpecificDate)
	if err != nil {
		return 0, false
	}
	return int(d.Weekday()), true
}
