package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"razzrel/internal/model"
)

const bookingViewColumns = "bookings.*, products.name AS package_name, products.price AS package_price, users.full_name AS user_name"

// BookingRepository defines booking persistence operations. Status changes
// only happen through Transition and CancelOldestPending.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id uint) (*model.Booking, error)
	ListAll(ctx context.Context) ([]model.BookingView, error)
	ListByUser(ctx context.Context, userID uint) ([]model.BookingView, error)
	Transition(ctx context.Context, id uint, to model.BookingStatus, at time.Time) (*model.Booking, error)
	CancelOldestPending(ctx context.Context, userID, packageID uint, at time.Time) (*model.Booking, error)
	ListPendingAlerts(ctx context.Context, limit int) ([]model.BookingAlert, error)
	CountUnseenPending(ctx context.Context) (int64, error)
	MarkPendingSeen(ctx context.Context) (int64, error)
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Select(bookingViewColumns).
		Joins("LEFT JOIN products ON products.id = bookings.package_id").
		Joins("LEFT JOIN users ON users.id = bookings.user_id").
		Order("bookings.event_date DESC").
		Order("bookings.id DESC")
}

func (r *bookingRepository) ListAll(ctx context.Context) ([]model.BookingView, error) {
	var views []model.BookingView
	if err := r.viewQuery(ctx).Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID uint) ([]model.BookingView, error) {
	var views []model.BookingView
	if err := r.viewQuery(ctx).Where("bookings.user_id = ?", userID).Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// Transition moves a Pending booking to a terminal status with a single
// conditional UPDATE. It returns gorm.ErrRecordNotFound when the booking does
// not exist and ErrNotPending when another transition already won.
func (r *bookingRepository) Transition(ctx context.Context, id uint, to model.BookingStatus, at time.Time) (*model.Booking, error) {
	if !model.BookingStatusPending.CanTransition(to) {
		return nil, ErrNotPending
	}

	var booking model.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Booking{}).
			Where("id = ? AND status = ?", id, model.BookingStatusPending).
			Updates(map[string]interface{}{
				"status":             to,
				to.TimestampColumn(): at,
			})
		if res.Error != nil {
			return res.Error
		}
		if err := tx.First(&booking, id).Error; err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelOldestPending cancels the earliest-created Pending booking of a user
// for a package. The candidate row is locked so concurrent cancels serialize.
func (r *bookingRepository) CancelOldestPending(ctx context.Context, userID, packageID uint, at time.Time) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND package_id = ? AND status = ?", userID, packageID, model.BookingStatusPending).
			Order("created_at ASC").
			Order("id ASC").
			Take(&booking).Error
		if err != nil {
			return err
		}

		res := tx.Model(&model.Booking{}).
			Where("id = ? AND status = ?", booking.ID, model.BookingStatusPending).
			Updates(map[string]interface{}{
				"status":      model.BookingStatusCancelled,
				"declined_at": at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}
		return tx.First(&booking, booking.ID).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotPending) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ListPendingAlerts(ctx context.Context, limit int) ([]model.BookingAlert, error) {
	var alerts []model.BookingAlert
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Select("bookings.id, bookings.event_type AS package_type, bookings.venue_name AS venue, bookings.created_at, users.full_name AS user_name").
		Joins("JOIN users ON users.id = bookings.user_id").
		Where("bookings.status = ?", model.BookingStatusPending).
		Order("bookings.created_at DESC").
		Limit(limit).
		Scan(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *bookingRepository) CountUnseenPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("status = ? AND is_read = ?", model.BookingStatusPending, false).
		Count(&count).Error
	return count, err
}

func (r *bookingRepository) MarkPendingSeen(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("status = ? AND is_read = ?", model.BookingStatusPending, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
