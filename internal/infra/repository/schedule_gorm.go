package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/StudioFitServices/studio-booking-api/internal/domain/schedule"
	"github.com/StudioFitServices/studio-booking-api/internal/httperr"
	"github.com/StudioFitServices/studio-booking-api/internal/models"
)

const pgUniqueViolation = "23505"

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Time slots
// --------------------------------------------------

func (r *ScheduleGormRepository) GetTimeSlot(
	ctx context.Context,
	id uint,
) (*models.TimeSlot, error) {

	var slot models.TimeSlot
	if err := r.db.WithContext(ctx).First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *ScheduleGormRepository) ListActiveTimeSlots(
	ctx context.Context,
) ([]models.TimeSlot, error) {

	var slots []models.TimeSlot
	if err := r.db.WithContext(ctx).
		Where("is_active = true").
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *ScheduleGormRepository) ListTimeSlots(
	ctx context.Context,
) ([]models.TimeSlot, error) {

	var slots []models.TimeSlot
	if err := r.db.WithContext(ctx).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// --------------------------------------------------
// Profiles
// --------------------------------------------------

func (r *ScheduleGormRepository) GetProfile(
	ctx context.Context,
	id uint,
) (*models.Profile, error) {

	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// --------------------------------------------------
// Bookings (read)
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBookingForUser(
	ctx context.Context,
	bookingID uint,
	userID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("TimeSlot").
		Where("id = ? AND user_id = ?", bookingID, userID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *ScheduleGormRepository) GetBooking(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("TimeSlot").
		Preload("User").
		First(&b, bookingID).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *ScheduleGormRepository) ListBookingsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("TimeSlot").
		Where("user_id = ?", userID).
		Order("booking_date DESC, created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *ScheduleGormRepository) ListBookingsForRange(
	ctx context.Context,
	from string,
	to string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("TimeSlot").
		Where("booking_date >= ? AND booking_date <= ?", from, to).
		Order("booking_date ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Capacity (authoritative)
// --------------------------------------------------

func (r *ScheduleGormRepository) AvailableSpots(
	ctx context.Context,
	timeSlotID uint,
	date string,
) (domain.Availability, error) {

	var slot models.TimeSlot
	if err := r.db.WithContext(ctx).First(&slot, timeSlotID).Error; err != nil {
		return domain.Availability{}, err
	}

	var booked int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"time_slot_id = ? AND booking_date = ? AND status = ?",
			timeSlotID, date, string(domain.StatusConfirmed),
		).
		Count(&booked).Error; err != nil {
		return domain.Availability{}, err
	}

	return domain.Aggregate(slot.Capacity, int(booked)), nil
}

// CreateBookingLocked holds the capacity invariant: the slot row is
// locked for the duration of the transaction, so two concurrent
// confirmations serialize and the second one sees the first one's count.
// The partial unique index on (user_id, time_slot_id, booking_date)
// WHERE status='confirmed' is the backstop against double-submission.
func (r *ScheduleGormRepository) CreateBookingLocked(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var slot models.TimeSlot
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot, b.TimeSlotID).Error; err != nil {
			return httperr.ErrBusiness("slot_not_found")
		}

		if !slot.IsActive {
			return httperr.ErrBusiness("slot_inactive")
		}

		var booked int64
		if err := tx.
			Model(&models.Booking{}).
			Where(
				"time_slot_id = ? AND booking_date = ? AND status = ?",
				b.TimeSlotID, b.BookingDate, string(domain.StatusConfirmed),
			).
			Count(&booked).Error; err != nil {
			return err
		}

		if int(booked) >= slot.Capacity {
			return httperr.ErrBusiness("slot_full")
		}

		var dup int64
		if err := tx.
			Model(&models.Booking{}).
			Where(
				"user_id = ? AND time_slot_id = ? AND booking_date = ? AND status = ?",
				b.UserID, b.TimeSlotID, b.BookingDate, string(domain.StatusConfirmed),
			).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return httperr.ErrBusiness("duplicate_booking")
		}

		if err := tx.Create(b).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return httperr.ErrBusiness("duplicate_booking")
			}
			return err
		}

		// One credit per booking. The guard in the WHERE keeps the
		// balance from going negative under concurrent spends.
		res := tx.
			Model(&models.Profile{}).
			Where("id = ? AND credits > 0", b.UserID).
			UpdateColumn("credits", gorm.Expr("credits - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("insufficient_credits")
		}

		return nil
	})
}

// --------------------------------------------------
// Bookings (state change)
// --------------------------------------------------

func (r *ScheduleGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	// Bookings arrive with TimeSlot/User preloaded; never upsert those.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error
}

func (r *ScheduleGormRepository) CancelAndRefund(
	ctx context.Context,
	b *models.Booking,
	refund bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Omit(clause.Associations).Save(b).Error; err != nil {
			return err
		}

		if refund {
			if err := tx.
				Model(&models.Profile{}).
				Where("id = ?", b.UserID).
				UpdateColumn("credits", gorm.Expr("credits + 1")).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// --------------------------------------------------
// Settings
// --------------------------------------------------

func (r *ScheduleGormRepository) GetSettingValue(
	ctx context.Context,
	key string,
) (string, error) {

	var setting models.AppSetting
	if err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&setting).Error; err != nil {
		return "", err
	}
	return setting.Value, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
