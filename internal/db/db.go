package db

import (
	"log"
	"time"

	"github.com/StudioFitServices/studio-booking-api/internal/config"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.TimeSlot{},
		&models.Booking{},
		&models.PaymentMethod{},
		&models.PaymentRequest{},
		&models.PricingPackage{},
		&models.WeightStat{},
		&models.BrandingSettings{},
		&models.AppSetting{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Backstop against double-submission: one confirmed booking per
	// user+slot+date. AutoMigrate cannot express partial indexes.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_confirmed_once
        ON bookings (user_id, time_slot_id, booking_date)
        WHERE status = 'confirmed'
    `)

	seed(db)

	return db
}

// seed guarantees the singleton/default rows the app reads on boot.
func seed(db *gorm.DB) {
	var brandingCount int64
	db.Model(&models.BrandingSettings{}).Count(&brandingCount)
	if brandingCount == 0 {
		db.Create(&models.BrandingSettings{BusinessName: "Studio"})
	}

	var policyCount int64
	db.Model(&models.AppSetting{}).Where("key = ?", "cancellation_policy").Count(&policyCount)
	if policyCount == 0 {
		db.Create(&models.AppSetting{
			Key:         "cancellation_policy",
			Value:       `{"value": 24, "unit": "hours"}`,
			Description: "Minimum advance to cancel with refund",
		})
	}
}
