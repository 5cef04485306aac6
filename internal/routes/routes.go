package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/StudioFitServices/studio-booking-api/internal/audit"
	"github.com/StudioFitServices/studio-booking-api/internal/cache"
	"github.com/StudioFitServices/studio-booking-api/internal/config"
	"github.com/StudioFitServices/studio-booking-api/internal/handlers"
	infraRepo "github.com/StudioFitServices/studio-booking-api/internal/infra/repository"
	"github.com/StudioFitServices/studio-booking-api/internal/middleware"
	"github.com/StudioFitServices/studio-booking-api/internal/payments"
	"github.com/StudioFitServices/studio-booking-api/internal/storage"
	ucBooking "github.com/StudioFitServices/studio-booking-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}
	availCache := cache.NewAvailabilityCache(rdb)

	storageClient, err := storage.New(storage.S3Config{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	checkout, err := payments.NewCheckout(cfg.MercadoPagoAccessToken, cfg.CheckoutBackURL)
	if err != nil {
		log.Fatalf("mercadopago init: %v", err)
	}

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		scheduleRepo,
		availCache,
		auditDispatcher,
		cfg.Timezone,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		scheduleRepo,
		availCache,
		auditDispatcher,
		cfg.Timezone,
	)

	completeBookingUC := ucBooking.NewCompleteBooking(
		scheduleRepo,
		auditDispatcher,
		cfg.Timezone,
	)

	listMyBookingsUC := ucBooking.NewListMyBookings(scheduleRepo, cfg.Timezone)

	calendarUC := ucBooking.NewCalendarView(scheduleRepo, availCache, cfg.Timezone)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		db,
		createBookingUC,
		cancelBookingUC,
		completeBookingUC,
		listMyBookingsUC,
	)

	calendarHandler := handlers.NewCalendarHandler(calendarUC)
	timeSlotHandler := handlers.NewTimeSlotHandler(db, availCache, auditDispatcher, cfg.Timezone)

	paymentRequestHandler := handlers.NewPaymentRequestHandler(db, checkout, auditDispatcher)
	paymentMethodHandler := handlers.NewPaymentMethodHandler(db)
	pricingHandler := handlers.NewPricingHandler(db)

	weightStatsHandler := handlers.NewWeightStatsHandler(db, cfg.Timezone)
	brandingHandler := handlers.NewBrandingHandler(db, storageClient)
	settingsHandler := handlers.NewSettingsHandler(db)

	adminUsersHandler := handlers.NewAdminUsersHandler(db, auditDispatcher)
	dashboardHandler := handlers.NewDashboardHandler(db, cfg.Timezone)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/branding", brandingHandler.Get)
		api.GET("/pricing", pricingHandler.ListActive)
		api.GET("/payment-methods", paymentMethodHandler.ListActive)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE (any authenticated account)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/settings/:key", settingsHandler.PublicGet)

			// ------------------------------
			// CLIENT (approved accounts only)
			// ------------------------------
			approved := secured.Group("/")
			approved.Use(middleware.RequireApproved())
			{
				approved.GET("/calendar/month", calendarHandler.Month)
				approved.GET("/calendar/week", calendarHandler.Week)
				approved.GET("/calendar/spots", calendarHandler.Spots)

				approved.POST("/bookings", bookingHandler.Create)
				approved.GET("/bookings", bookingHandler.ListMine)
				approved.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)

				approved.POST("/payment-requests", paymentRequestHandler.Create)
				approved.GET("/payment-requests", paymentRequestHandler.ListMine)

				approved.POST("/weight-stats", weightStatsHandler.Create)
				approved.GET("/weight-stats", weightStatsHandler.List)
				approved.GET("/weight-stats/summary", weightStatsHandler.Summary)
				approved.DELETE("/weight-stats/:id", weightStatsHandler.Delete)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/dashboard", dashboardHandler.Summary)

				admin.GET("/calendar/month", calendarHandler.AdminMonth)

				admin.GET("/users", adminUsersHandler.List)
				admin.POST("/users", adminUsersHandler.Create)
				admin.GET("/users/:id", adminUsersHandler.Get)
				admin.PATCH("/users/:id/approve", adminUsersHandler.Approve)
				admin.PATCH("/users/:id/reject", adminUsersHandler.Reject)
				admin.PATCH("/users/:id/credits", adminUsersHandler.AdjustCredits)
				admin.PATCH("/users/:id/payment-status", adminUsersHandler.UpdatePaymentStatus)

				admin.GET("/time-slots", timeSlotHandler.List)
				admin.POST("/time-slots/recurring", timeSlotHandler.CreateRecurring)
				admin.POST("/time-slots/specific", timeSlotHandler.CreateSpecific)
				admin.PATCH("/time-slots/:id", timeSlotHandler.Update)
				admin.DELETE("/time-slots/:id", timeSlotHandler.Delete)

				admin.POST("/bookings", bookingHandler.AdminCreate)
				admin.GET("/bookings", bookingHandler.AdminList)
				admin.PATCH("/bookings/:id/cancel", bookingHandler.AdminCancel)
				admin.PATCH("/bookings/:id/complete", bookingHandler.AdminComplete)

				admin.GET("/payment-requests", paymentRequestHandler.AdminList)
				admin.PATCH("/payment-requests/:id/approve", paymentRequestHandler.Approve)
				admin.PATCH("/payment-requests/:id/reject", paymentRequestHandler.Reject)

				admin.GET("/payment-methods", paymentMethodHandler.AdminList)
				admin.POST("/payment-methods", paymentMethodHandler.Create)
				admin.PATCH("/payment-methods/:id", paymentMethodHandler.Update)
				admin.DELETE("/payment-methods/:id", paymentMethodHandler.Delete)

				admin.GET("/pricing", pricingHandler.AdminList)
				admin.POST("/pricing", pricingHandler.Create)
				admin.PATCH("/pricing/:id", pricingHandler.Update)
				admin.DELETE("/pricing/:id", pricingHandler.Delete)

				admin.PATCH("/branding", brandingHandler.Update)
				admin.POST("/branding/images/:slot", brandingHandler.UploadImage)

				admin.GET("/settings", settingsHandler.List)
				admin.GET("/settings/:key", settingsHandler.Get)
				admin.PUT("/settings/:key", settingsHandler.Update)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
