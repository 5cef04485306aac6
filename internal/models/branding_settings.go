package models

import "time"

// BrandingSettings is a single-row table holding the public landing-page
// content. The API always reads/updates the first row.
type BrandingSettings struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessName string `gorm:"size:100;default:'Studio'" json:"business_name"`

	HeroTitle    string `gorm:"size:200" json:"hero_title"`
	HeroSubtitle string `gorm:"size:300" json:"hero_subtitle"`
	HeroCTAText  string `gorm:"size:100" json:"hero_cta_text"`

	ValuePropTitle    string `gorm:"size:200" json:"value_prop_title"`
	ValuePropSubtitle string `gorm:"size:300" json:"value_prop_subtitle"`

	AboutTrainerTitle string `gorm:"size:200" json:"about_trainer_title"`
	AboutTrainerText  string `gorm:"type:text" json:"about_trainer_text"`
	AboutTrainerQuote string `gorm:"size:300" json:"about_trainer_quote"`

	Phone     string `gorm:"size:20" json:"phone"`
	Email     string `gorm:"size:100" json:"email"`
	WhatsApp  string `gorm:"size:20" json:"whatsapp"`
	Instagram string `gorm:"size:100" json:"instagram"`

	Address       string  `gorm:"size:255" json:"address"`
	City          string  `gorm:"size:100" json:"city"`
	Region        string  `gorm:"size:100" json:"region"`
	Country       string  `gorm:"size:100" json:"country"`
	GoogleMapsURL string  `gorm:"size:500" json:"google_maps_url"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`

	ScheduleWeekdays string `gorm:"size:100" json:"schedule_weekdays"`
	ScheduleSaturday string `gorm:"size:100" json:"schedule_saturday"`
	ScheduleSunday   string `gorm:"size:100" json:"schedule_sunday"`

	LogoURL         string `gorm:"size:500" json:"logo_url"`
	HeroImageURL    string `gorm:"size:500" json:"hero_image_url"`
	TrainerImageURL string `gorm:"size:500" json:"trainer_image_url"`
	GroupImageURL   string `gorm:"size:500" json:"group_image_url"`

	ShowLogo         bool `gorm:"default:true" json:"show_logo"`
	ShowHeroImage    bool `gorm:"default:true" json:"show_hero_image"`
	ShowTrainerImage bool `gorm:"default:true" json:"show_trainer_image"`
	ShowGroupImage   bool `gorm:"default:true" json:"show_group_image"`
	ShowPhone        bool `gorm:"default:true" json:"show_phone"`
	ShowEmail        bool `gorm:"default:true" json:"show_email"`
	ShowWhatsApp     bool `gorm:"default:true" json:"show_whatsapp"`
	ShowInstagram    bool `gorm:"default:true" json:"show_instagram"`
	ShowLocation     bool `gorm:"default:true" json:"show_location"`
	ShowSchedule     bool `gorm:"default:true" json:"show_schedule"`

	// JSON array of {author, text} entries.
	Testimonials string `gorm:"type:text" json:"testimonials"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
