package models

import "time"

type WeightStat struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint    `gorm:"index" json:"user_id"`
	User   Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Weight float64 `gorm:"not null" json:"weight"`

	BMI                      *float64 `json:"bmi,omitempty"`
	BodyFatPercentage        *float64 `json:"body_fat_percentage,omitempty"`
	MuscleMass               *float64 `json:"muscle_mass,omitempty"`
	BoneMass                 *float64 `json:"bone_mass,omitempty"`
	TotalBodyWaterPercentage *float64 `json:"total_body_water_percentage,omitempty"`
	MetabolicAge             *int     `json:"metabolic_age,omitempty"`
	DailyCalorieIntake       *int     `json:"daily_calorie_intake,omitempty"`

	Notes string `gorm:"size:500" json:"notes"`

	RecordedAt time.Time `gorm:"index" json:"recorded_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
