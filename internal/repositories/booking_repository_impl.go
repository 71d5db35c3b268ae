package repositories

import (
	"context"
	"errors"
	"fmt"

	appErrors "github.com/mahadebmondal004/BrohealBackend/internal/errors"
	"github.com/mahadebmondal004/BrohealBackend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.New(appErrors.ErrNotFound, "booking not found")
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) FindPayable(ctx context.Context, id, payerID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, payerID).
		Where("payment_status IN ?", models.RetryablePaymentStatuses).
		Where("status IN ?", models.PayableStatuses).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrNotEligible
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) AttachOrder(ctx context.Context, id, orderID string) error {
	return r.update(ctx, id, map[string]interface{}{
		"payment_order_id": orderID,
		"payment_status":   models.PaymentStatusPending,
		"payment_mode":     models.PaymentModePaytm,
	})
}

func (r *bookingRepository) MarkPaid(ctx context.Context, id, orderID, gatewayTxnID string, commission decimal.Decimal) error {
	applied, err := r.updateForOrder(ctx, id, orderID, map[string]interface{}{
		"payment_status":         models.PaymentStatusSuccess,
		"status":                 models.BookingStatusCompleted,
		"payment_transaction_id": gatewayTxnID,
		"commission":             commission,
	})
	if err != nil {
		return err
	}
	if !applied {
		return appErrors.ErrOrderSuperseded
	}
	return nil
}

func (r *bookingRepository) RevertPayment(ctx context.Context, id, orderID string) (bool, error) {
	return r.updateForOrder(ctx, id, orderID, map[string]interface{}{
		"payment_status": models.PaymentStatusFailed,
		"status":         models.BookingStatusAwaitingPayment,
	})
}

// updateForOrder writes fields only while orderID is the booking's current,
// unpaid order.
func (r *bookingRepository) updateForOrder(ctx context.Context, id, orderID string, fields map[string]interface{}) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND payment_order_id = ? AND payment_status <> ?", id, orderID, models.PaymentStatusSuccess).
		Updates(fields)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update booking: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *bookingRepository) MarkAwaitingPayment(ctx context.Context, id, therapistID string) (*models.Booking, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND therapist_id = ? AND status IN ?", id, therapistID, models.CompletableStatuses).
		Updates(map[string]interface{}{
			"status":         models.BookingStatusAwaitingPayment,
			"payment_status": models.PaymentStatusPending,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, appErrors.New(appErrors.ErrNotFound, "booking not found")
	}
	return r.GetByID(ctx, id)
}

func (r *bookingRepository) update(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.New(appErrors.ErrNotFound, "booking not found")
	}
	return nil
}
