package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"musetix/internal/payments"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Core store operations
	Insert(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*Booking, error)

	// UpdatePaymentStatus patches the payment status of the booking that
	// references paymentID. Repeating a terminal status is a no-op write.
	UpdatePaymentStatus(ctx context.Context, paymentID string, status payments.Status) error

	// Reconciliation support
	ListPendingPaymentIDs(ctx context.Context) ([]string, error)

	// Admin operations
	ListBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, booking *Booking) error {
	err := r.db.WithContext(ctx).Create(booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrDuplicateID, booking.ID)
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("TicketLines").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByPaymentID(ctx context.Context, paymentID string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("TicketLines").
		Where("payment_id = ?", paymentID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, paymentID string, status payments.Status) error {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("payment_id = ?", paymentID).
		Updates(map[string]interface{}{
			"payment_status": status,
			"updated_at":     time.Now().UTC(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: no booking references payment %s", ErrNotFound, paymentID)
	}
	return nil
}

func (r *repository) ListPendingPaymentIDs(ctx context.Context) ([]string, error) {
	var paymentIDs []string
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("payment_status = ?", payments.StatusPending).
		Order("created_at ASC").
		Pluck("payment_id", &paymentIDs).Error
	return paymentIDs, err
}

func (r *repository) ListBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	// Set defaults
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.db.WithContext(ctx).Model(&Booking{})
	baseQuery = r.applyFilters(baseQuery, query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("TicketLines").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

// applyFilters applies query filters to the GORM query
func (r *repository) applyFilters(query *gorm.DB, filters BookingListQuery) *gorm.DB {
	if filters.Status != "" {
		query = query.Where("payment_status = ?", filters.Status)
	}

	if filters.Date != "" {
		if date, err := time.Parse("2006-01-02", filters.Date); err == nil {
			query = query.Where("visit_date = ?", date)
		}
	}

	return query
}

// CalculateTotalPages computes the page count for paginated listings
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
